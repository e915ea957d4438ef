package cache

import (
	"context"
	"time"

	"pitlane/internal/api/ports/cache"
)

// Unavailable - заглушка для работы сервиса без Redis. Каждая операция
// немедленно завершается cache.ErrNotInitialized вместо зависания.
type Unavailable struct{}

// NewUnavailable создает заглушку недоступного кэша.
func NewUnavailable() cache.Cache {
	return &Unavailable{}
}

// Set всегда возвращает cache.ErrNotInitialized.
func (*Unavailable) Set(_ context.Context, _ string, _ string, _ time.Duration) error {
	return cache.ErrNotInitialized
}

// Get всегда возвращает cache.ErrNotInitialized.
func (*Unavailable) Get(_ context.Context, _ string) (string, bool, error) {
	return "", false, cache.ErrNotInitialized
}

// Delete всегда возвращает cache.ErrNotInitialized.
func (*Unavailable) Delete(_ context.Context, _ string) (bool, error) {
	return false, cache.ErrNotInitialized
}

// Keys всегда возвращает cache.ErrNotInitialized.
func (*Unavailable) Keys(_ context.Context, _ string) ([]string, error) {
	return nil, cache.ErrNotInitialized
}

// Close не делает ничего.
func (*Unavailable) Close() error {
	return nil
}
