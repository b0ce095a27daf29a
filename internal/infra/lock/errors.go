package lock

import "errors"

var (
	// ErrNotAcquired возвращается, когда блокировку не удалось получить до отмены контекста
	ErrNotAcquired = errors.New("lock: not acquired")

	// ErrBackend возвращается при ошибке Redis
	ErrBackend = errors.New("lock: backend error")
)
