// Package shutdown coordinates graceful process termination. A
// Coordinator owns an append-only registry of cleanup callbacks and a
// single termination-signal listener that drains them.
package shutdown

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

// Disposer is a registered cleanup callback invoked during graceful
// shutdown.
type Disposer func(ctx context.Context) error

// Option is an option configuring a Coordinator.
type Option func(cfg *config)

type config struct {
	signals []os.Signal
	log     *slog.Logger
	exit    func(code int)
	timeout time.Duration
}

// WithSignals configures the termination signals the coordinator listens
// for. Defaults to SIGINT and SIGTERM.
func WithSignals(signals ...os.Signal) Option {
	return func(cfg *config) {
		cfg.signals = signals
	}
}

// WithLogger configures the logger disposer failures are reported to.
func WithLogger(log *slog.Logger) Option {
	return func(cfg *config) {
		cfg.log = log
	}
}

// WithExitFunc configures the function called with the process exit code
// once all disposers have settled. Defaults to os.Exit.
func WithExitFunc(exit func(code int)) Option {
	return func(cfg *config) {
		cfg.exit = exit
	}
}

// WithTimeout configures how long disposers get to finish after a
// termination signal.
func WithTimeout(d time.Duration) Option {
	return func(cfg *config) {
		cfg.timeout = d
	}
}

// Coordinator runs registered disposers on process termination. The
// registry is append-only during normal operation and drained once.
type Coordinator struct {
	mu        sync.Mutex
	disposers []Disposer
	listen    sync.Once

	signals []os.Signal
	log     *slog.Logger
	exit    func(code int)
	timeout time.Duration
}

// New constructs a Coordinator. The process entry point owns the value
// and passes it by reference to whichever component needs to register
// cleanup.
func New(options ...Option) *Coordinator {
	cfg := config{}
	for _, opt := range options {
		opt(&cfg)
	}
	if len(cfg.signals) == 0 {
		cfg.signals = []os.Signal{syscall.SIGINT, syscall.SIGTERM}
	}
	if cfg.log == nil {
		cfg.log = slog.Default()
	}
	if cfg.exit == nil {
		cfg.exit = os.Exit
	}
	if cfg.timeout == 0 {
		cfg.timeout = 30 * time.Second
	}
	return &Coordinator{
		signals: cfg.signals,
		log:     cfg.log,
		exit:    cfg.exit,
		timeout: cfg.timeout,
	}
}

// Register appends a disposer to the registry.
func (c *Coordinator) Register(d Disposer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.disposers = append(c.disposers, d)
}

// Listen installs the termination-signal listener. Installing twice has
// no additional effect. On receipt of a signal all registered disposers
// run concurrently; once they settle the process exits with code 0 when
// every disposer succeeded and 1 otherwise.
func (c *Coordinator) Listen() {
	c.listen.Do(func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, c.signals...)
		go func() {
			sig := <-ch
			c.log.Info("termination signal received", "signal", sig.String())
			ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
			defer cancel()
			if err := c.RunAll(ctx); err != nil {
				c.log.Error("shutdown finished with failures", "error", err)
				c.exit(1)
				return
			}
			c.exit(0)
		}()
	})
}

// RunAll drains the registry, runs every disposer concurrently and waits
// for all of them to settle. All disposers run regardless of individual
// failure; failures are joined into the returned error.
func (c *Coordinator) RunAll(ctx context.Context) error {
	c.mu.Lock()
	disposers := c.disposers
	c.disposers = nil
	c.mu.Unlock()

	errs := make([]error, len(disposers))
	var wg sync.WaitGroup
	for i, d := range disposers {
		wg.Add(1)
		go func(i int, d Disposer) {
			defer wg.Done()
			errs[i] = d(ctx)
		}(i, d)
	}
	wg.Wait()

	return errors.Join(errs...)
}
