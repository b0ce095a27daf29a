package lock

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ddduartediego/BelloProject-sub000/pkg/logger"
)

type locker interface {
	Lock(ctx context.Context, key string) (func(), error)
}

func newRedisLocker(t *testing.T) (*RedisLocker, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisLocker(client, RedisOptions{TTL: time.Second, RetryInterval: 5 * time.Millisecond}, logger.NewNop()), mr
}

func assertMutualExclusion(t *testing.T, l locker) {
	t.Helper()

	var inside, maxInside int32
	var wg sync.WaitGroup

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := l.Lock(context.Background(), ProfessionalKey(1, 7))
			if !assert.NoError(t, err) {
				return
			}
			defer unlock()

			n := atomic.AddInt32(&inside, 1)
			for {
				current := atomic.LoadInt32(&maxInside)
				if n <= current || atomic.CompareAndSwapInt32(&maxInside, current, n) {
					break
				}
			}
			time.Sleep(2 * time.Millisecond)
			atomic.AddInt32(&inside, -1)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&maxInside))
}

func assertContextCancel(t *testing.T, l locker) {
	t.Helper()

	unlock, err := l.Lock(context.Background(), "busy")
	require.NoError(t, err)
	defer unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	_, err = l.Lock(ctx, "busy")
	assert.ErrorIs(t, err, ErrNotAcquired)

	// другой ключ не блокируется
	unlockOther, err := l.Lock(context.Background(), "free")
	require.NoError(t, err)
	unlockOther()
}

func TestKeyedMutex(t *testing.T) {
	m := NewKeyedMutex()

	assertMutualExclusion(t, m)
	assertContextCancel(t, m)

	assert.Equal(t, 0, m.size(), "entries are cleaned up")
}

func TestKeyedMutex_UnlockIsIdempotent(t *testing.T) {
	m := NewKeyedMutex()

	unlock, err := m.Lock(context.Background(), "k")
	require.NoError(t, err)
	unlock()
	unlock()

	unlock, err = m.Lock(context.Background(), "k")
	require.NoError(t, err)
	unlock()
}

func TestRedisLocker(t *testing.T) {
	l, _ := newRedisLocker(t)

	assertMutualExclusion(t, l)
	assertContextCancel(t, l)
}

func TestRedisLocker_ReleaseChecksOwner(t *testing.T) {
	l, mr := newRedisLocker(t)
	key := ProfessionalKey(1, 7)

	unlock, err := l.Lock(context.Background(), key)
	require.NoError(t, err)

	// блокировка истекла, ключ занял другой владелец
	mr.FastForward(2 * time.Second)
	require.NoError(t, mr.Set(keyPrefix+key, "someone-else"))

	unlock()

	value, err := mr.Get(keyPrefix + key)
	require.NoError(t, err)
	assert.Equal(t, "someone-else", value)
}

func TestRedisLocker_KeyHasTTL(t *testing.T) {
	l, mr := newRedisLocker(t)
	key := ProfessionalKey(1, 7)

	unlock, err := l.Lock(context.Background(), key)
	require.NoError(t, err)

	assert.True(t, mr.Exists(keyPrefix+key))
	assert.Equal(t, time.Second, mr.TTL(keyPrefix+key))

	unlock()
	assert.False(t, mr.Exists(keyPrefix+key))
}
