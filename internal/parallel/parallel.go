// Package parallel provides bounded fan-out helpers.
//
// Optimizer instances share no state, so comparing variants side by side is
// embarrassingly parallel: one task per trajectory. Surface sampling splits
// the same way, one task per grid row.
package parallel

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled      bool // Whether parallel execution is enabled.
	NumWorkers   int  // Maximum concurrent tasks; <= 0 means unlimited.
	MinChunkSize int  // Below this many tasks For runs sequentially.
}

// DefaultConfig returns defaults based on CPU count.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinChunkSize: 2,
	}
}

// Sequential returns a Config that runs every task on the calling goroutine.
func Sequential() Config {
	return Config{}
}

// Do runs f(ctx, i) for i in [0, n) and returns the first error.
//
// With parallelism enabled, tasks run on at most cfg.NumWorkers goroutines
// and the context passed to f is cancelled once any task fails. Otherwise
// tasks run in order and Do stops at the first error. Tasks not yet started
// when ctx is done are skipped and ctx.Err() is returned.
func Do(ctx context.Context, n int, f func(ctx context.Context, i int) error, cfg Config) error {
	if !cfg.Enabled || n < cfg.MinChunkSize {
		for i := 0; i < n; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := f(ctx, i); err != nil {
				return err
			}
		}
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	if cfg.NumWorkers > 0 {
		g.SetLimit(cfg.NumWorkers)
	}
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return f(gctx, i)
		})
	}
	return g.Wait()
}

// For executes f(i) for i in [0, n) with optional parallelism.
// Falls back to sequential execution if parallelism is disabled or n is too small.
func For(n int, f func(i int), cfg Config) {
	_ = Do(context.Background(), n, func(_ context.Context, i int) error {
		f(i)
		return nil
	}, cfg)
}
