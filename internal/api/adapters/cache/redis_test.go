package cache_test

import (
	"context"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pitlane/internal/api/adapters/cache"
	"pitlane/internal/api/config"
	cacheport "pitlane/internal/api/ports/cache"
	"pitlane/pkg/logger"
)

func setupRedis(t *testing.T) (cacheport.Cache, *miniredis.Miniredis, context.Context) {
	t.Helper()

	server := miniredis.RunT(t)

	host, portStr, err := net.SplitHostPort(server.Addr())
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	cfg := &config.RedisConfig{
		Host:           host,
		Port:           port,
		ConnectTimeout: time.Second,
		ReadTimeout:    time.Second,
		WriteTimeout:   time.Second,
		PoolSize:       2,
	}

	testLogger, err := logger.NewLogger(logger.Development, "debug")
	require.NoError(t, err)
	ctx := logger.NewContext(context.Background(), testLogger)

	client, err := cache.NewRedisCache(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, client.Close())
	})

	return client, server, ctx
}

func TestRedisCache_SetAndGet(t *testing.T) {
	client, server, ctx := setupRedis(t)

	t.Run("set without expiration persists the value", func(t *testing.T) {
		require.NoError(t, client.Set(ctx, "driver", "verstappen", 0))

		value, exists, err := client.Get(ctx, "driver")
		require.NoError(t, err)
		assert.True(t, exists)
		assert.Equal(t, "verstappen", value)
	})

	t.Run("set with ttl expires the key", func(t *testing.T) {
		require.NoError(t, client.Set(ctx, "session", "active", 10*time.Second))

		server.FastForward(11 * time.Second)

		_, exists, err := client.Get(ctx, "session")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("missing key is not an error", func(t *testing.T) {
		value, exists, err := client.Get(ctx, "no-such-key")
		require.NoError(t, err)
		assert.False(t, exists)
		assert.Empty(t, value)
	})
}

func TestRedisCache_Delete(t *testing.T) {
	client, _, ctx := setupRedis(t)

	require.NoError(t, client.Set(ctx, "victim", "data", 0))

	t.Run("existing key is deleted", func(t *testing.T) {
		deleted, err := client.Delete(ctx, "victim")
		require.NoError(t, err)
		assert.True(t, deleted)
	})

	t.Run("repeated delete reports absence", func(t *testing.T) {
		deleted, err := client.Delete(ctx, "victim")
		require.NoError(t, err)
		assert.False(t, deleted)
	})
}

func TestRedisCache_Keys(t *testing.T) {
	client, _, ctx := setupRedis(t)

	require.NoError(t, client.Set(ctx, "race:1", "bahrain", 0))
	require.NoError(t, client.Set(ctx, "race:2", "jeddah", 0))
	require.NoError(t, client.Set(ctx, "driver:1", "verstappen", 0))

	t.Run("glob pattern narrows the result", func(t *testing.T) {
		keys, err := client.Keys(ctx, "race:*")
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"race:1", "race:2"}, keys)
	})

	t.Run("star pattern returns everything", func(t *testing.T) {
		keys, err := client.Keys(ctx, "*")
		require.NoError(t, err)
		assert.Len(t, keys, 3)
	})

	t.Run("non-matching pattern gives empty result", func(t *testing.T) {
		keys, err := client.Keys(ctx, "team:*")
		require.NoError(t, err)
		assert.Empty(t, keys)
	})
}

func TestUnavailableCache(t *testing.T) {
	client := cache.NewUnavailable()
	ctx := context.Background()

	t.Run("every operation fails fast", func(t *testing.T) {
		err := client.Set(ctx, "key", "value", 0)
		assert.ErrorIs(t, err, cacheport.ErrNotInitialized)

		_, _, err = client.Get(ctx, "key")
		assert.ErrorIs(t, err, cacheport.ErrNotInitialized)

		_, err = client.Delete(ctx, "key")
		assert.ErrorIs(t, err, cacheport.ErrNotInitialized)

		_, err = client.Keys(ctx, "*")
		assert.ErrorIs(t, err, cacheport.ErrNotInitialized)
	})

	t.Run("close is a no-op", func(t *testing.T) {
		assert.NoError(t, client.Close())
	})
}
