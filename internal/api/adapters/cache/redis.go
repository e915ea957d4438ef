// Package cache содержит реализацию key-value хранилища поверх Redis.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"pitlane/internal/api/config"
	"pitlane/internal/api/ports/cache"
	"pitlane/pkg/logger"
)

// Константы для логирования.
const (
	LogMethodSet    = "set"
	LogMethodGet    = "get"
	LogMethodDelete = "delete"
	LogMethodKeys   = "keys"

	ErrorFailedToSet    = "failed to set value in redis"
	ErrorFailedToGet    = "failed to get value from redis"
	ErrorFailedToDelete = "failed to delete value from redis"
	ErrorFailedToKeys   = "failed to list keys from redis"
	ErrorFailedToClose  = "failed to close redis connection"
)

// RedisCache реализует интерфейс cache.Cache с использованием Redis.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache создает новый экземпляр RedisCache и проверяет соединение.
func NewRedisCache(ctx context.Context, cfg *config.RedisConfig) (cache.Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:            cfg.GetAddressString(),
		Password:        cfg.Password,
		DB:              cfg.DB,
		DialTimeout:     cfg.ConnectTimeout,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		PoolSize:        cfg.PoolSize,
		MinIdleConns:    cfg.MinIdle,
		ConnMaxIdleTime: cfg.IdleTimeout,
		ConnMaxLifetime: cfg.MaxConnLifetime,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisCache{client: client}, nil
}

// Set устанавливает значение для ключа. Нулевой ttl означает хранение
// без истечения.
func (c *RedisCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	log := logger.Log(ctx).With(zap.String("method", LogMethodSet), zap.String("key", key))

	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		log.Error(ctx, ErrorFailedToSet, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToSet, err)
	}

	return nil
}

// Get получает значение по ключу. Отсутствие ключа не является ошибкой.
func (c *RedisCache) Get(ctx context.Context, key string) (string, bool, error) {
	log := logger.Log(ctx).With(zap.String("method", LogMethodGet), zap.String("key", key))

	value, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		log.Error(ctx, ErrorFailedToGet, zap.Error(err))
		return "", false, fmt.Errorf("%s: %w", ErrorFailedToGet, err)
	}

	return value, true, nil
}

// Delete удаляет значение по ключу и сообщает, был ли ключ удален.
func (c *RedisCache) Delete(ctx context.Context, key string) (bool, error) {
	log := logger.Log(ctx).With(zap.String("method", LogMethodDelete), zap.String("key", key))

	deleted, err := c.client.Del(ctx, key).Result()
	if err != nil {
		log.Error(ctx, ErrorFailedToDelete, zap.Error(err))
		return false, fmt.Errorf("%s: %w", ErrorFailedToDelete, err)
	}

	return deleted > 0, nil
}

// Keys возвращает ключи, подходящие под glob-шаблон.
func (c *RedisCache) Keys(ctx context.Context, pattern string) ([]string, error) {
	log := logger.Log(ctx).With(zap.String("method", LogMethodKeys), zap.String("pattern", pattern))

	keys, err := c.client.Keys(ctx, pattern).Result()
	if err != nil {
		log.Error(ctx, ErrorFailedToKeys, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrorFailedToKeys, err)
	}

	return keys, nil
}

// Close закрывает соединение с Redis.
func (c *RedisCache) Close() error {
	if err := c.client.Close(); err != nil {
		return fmt.Errorf("%s: %w", ErrorFailedToClose, err)
	}
	return nil
}
