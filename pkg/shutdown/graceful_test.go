package shutdown_test

import (
	"context"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"pitlane/pkg/logger"
	"pitlane/pkg/shutdown"
)

func testContext(t *testing.T) context.Context {
	t.Helper()
	testLogger, err := logger.NewLogger(logger.Development, "debug")
	require.NoError(t, err)
	return logger.NewContext(context.Background(), testLogger)
}

func sendTermAfter(delay time.Duration) {
	go func() {
		time.Sleep(delay)
		_ = syscall.Kill(syscall.Getpid(), syscall.SIGTERM)
	}()
}

func TestWait(t *testing.T) {
	t.Run("Success - hooks run sequentially in passed order", func(t *testing.T) {
		ctx := testContext(t)

		var mu sync.Mutex
		order := make([]string, 0, 3)
		record := func(name string) func(context.Context) error {
			return func(context.Context) error {
				mu.Lock()
				defer mu.Unlock()
				order = append(order, name)
				return nil
			}
		}

		sendTermAfter(50 * time.Millisecond)
		shutdown.Wait(ctx, time.Second, record("server"), record("cache"), record("database"))

		mu.Lock()
		defer mu.Unlock()
		require.Equal(t, []string{"server", "cache", "database"}, order)
	})

	t.Run("Success - returns when a hook outlives the timeout", func(t *testing.T) {
		ctx := testContext(t)

		sendTermAfter(50 * time.Millisecond)
		start := time.Now()
		shutdown.Wait(ctx, 100*time.Millisecond, func(hookCtx context.Context) error {
			<-hookCtx.Done()
			return hookCtx.Err()
		})

		require.Less(t, time.Since(start), 2*time.Second)
	})
}
