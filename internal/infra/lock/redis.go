package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const (
	defaultTTL           = 10 * time.Second
	defaultRetryInterval = 25 * time.Millisecond
	keyPrefix            = "bello:lock:"
)

// Снимаем блокировку, только если она всё ещё принадлежит нам
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RedisOptions настройки распределённой блокировки
type RedisOptions struct {
	TTL           time.Duration // Срок жизни ключа, защищает от упавших владельцев
	RetryInterval time.Duration // Пауза между попытками SET NX
}

// RedisLocker распределённая блокировка через SET NX PX с токеном владельца.
// Нужна, когда запущено несколько экземпляров сервиса
type RedisLocker struct {
	client *redis.Client
	opts   RedisOptions
	logger Logger
}

// NewRedisLocker создает распределённую блокировку
func NewRedisLocker(client *redis.Client, opts RedisOptions, logger Logger) *RedisLocker {
	if opts.TTL <= 0 {
		opts.TTL = defaultTTL
	}
	if opts.RetryInterval <= 0 {
		opts.RetryInterval = defaultRetryInterval
	}
	return &RedisLocker{client: client, opts: opts, logger: logger}
}

// Lock пытается занять ключ, пока не отменён контекст
func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	redisKey := keyPrefix + key
	token := uuid.NewString()

	ticker := time.NewTicker(l.opts.RetryInterval)
	defer ticker.Stop()

	for {
		ok, err := l.client.SetNX(ctx, redisKey, token, l.opts.TTL).Result()
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("%w: %s: %v", ErrNotAcquired, key, ctx.Err())
			}
			return nil, fmt.Errorf("%w: SETNX %s: %v", ErrBackend, redisKey, err)
		}
		if ok {
			return l.unlockFunc(redisKey, token), nil
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %s: %v", ErrNotAcquired, key, ctx.Err())
		case <-ticker.C:
		}
	}
}

func (l *RedisLocker) unlockFunc(redisKey, token string) func() {
	return func() {
		// Контекст запроса к этому моменту может быть уже отменён
		ctx, cancel := context.WithTimeout(context.Background(), l.opts.TTL)
		defer cancel()

		released, err := releaseScript.Run(ctx, l.client, []string{redisKey}, token).Int()
		if err != nil {
			l.logger.Error("RedisLocker: failed to release %s: %v", redisKey, err)
			return
		}
		if released == 0 {
			l.logger.Warn("RedisLocker: lock %s expired before release", redisKey)
		}
	}
}
