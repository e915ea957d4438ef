// Package cache определяет интерфейс для работы с key-value хранилищем.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrNotInitialized возвращается каждой операцией, когда кэш недоступен.
var ErrNotInitialized = errors.New("cache is not initialized")

// Cache определяет интерфейс для работы с кэшем.
// Нулевой ttl в Set означает хранение без истечения.
type Cache interface {
	Set(ctx context.Context, key string, value string, ttl time.Duration) error

	Get(ctx context.Context, key string) (string, bool, error)

	Delete(ctx context.Context, key string) (bool, error)

	Keys(ctx context.Context, pattern string) ([]string, error)

	Close() error
}
