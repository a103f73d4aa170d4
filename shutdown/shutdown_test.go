package shutdown_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"syscall"
	"testing"
	"time"

	"github.com/bindery/go-bindery/shutdown"
	"github.com/stretchr/testify/require"
)

func quiet() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunAll(t *testing.T) {
	t.Run("all disposers run", func(t *testing.T) {
		c := shutdown.New(shutdown.WithLogger(quiet()))
		var ran atomic.Int32
		for i := 0; i < 5; i++ {
			c.Register(func(ctx context.Context) error {
				ran.Add(1)
				return nil
			})
		}
		require.NoError(t, c.RunAll(context.Background()))
		require.Equal(t, int32(5), ran.Load())
	})

	t.Run("failures are aggregated, all disposers still run", func(t *testing.T) {
		c := shutdown.New(shutdown.WithLogger(quiet()))
		boom := errors.New("boom")
		var ran atomic.Int32
		c.Register(func(ctx context.Context) error { ran.Add(1); return boom })
		c.Register(func(ctx context.Context) error { ran.Add(1); return nil })
		c.Register(func(ctx context.Context) error { ran.Add(1); return errors.New("bang") })

		err := c.RunAll(context.Background())
		require.Error(t, err)
		require.ErrorIs(t, err, boom)
		require.Equal(t, int32(3), ran.Load())
	})

	t.Run("registry drains once", func(t *testing.T) {
		c := shutdown.New(shutdown.WithLogger(quiet()))
		var ran atomic.Int32
		c.Register(func(ctx context.Context) error { ran.Add(1); return nil })
		require.NoError(t, c.RunAll(context.Background()))
		require.NoError(t, c.RunAll(context.Background()))
		require.Equal(t, int32(1), ran.Load())
	})
}

func TestListen(t *testing.T) {
	t.Run("signal drains disposers and exits zero", func(t *testing.T) {
		exit := make(chan int, 1)
		c := shutdown.New(
			shutdown.WithLogger(quiet()),
			shutdown.WithSignals(syscall.SIGUSR1),
			shutdown.WithExitFunc(func(code int) { exit <- code }),
		)
		var ran atomic.Int32
		c.Register(func(ctx context.Context) error { ran.Add(1); return nil })
		c.Listen()
		c.Listen() // installing twice has no additional effect

		require.NoError(t, syscall.Kill(syscall.Getpid(), syscall.SIGUSR1))
		select {
		case code := <-exit:
			require.Equal(t, 0, code)
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for shutdown")
		}
		require.Equal(t, int32(1), ran.Load())
	})

	t.Run("failed disposer exits nonzero", func(t *testing.T) {
		exit := make(chan int, 1)
		c := shutdown.New(
			shutdown.WithLogger(quiet()),
			shutdown.WithSignals(syscall.SIGUSR2),
			shutdown.WithExitFunc(func(code int) { exit <- code }),
		)
		c.Register(func(ctx context.Context) error { return errors.New("boom") })
		c.Listen()

		require.NoError(t, syscall.Kill(syscall.Getpid(), syscall.SIGUSR2))
		select {
		case code := <-exit:
			require.Equal(t, 1, code)
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for shutdown")
		}
	})
}
