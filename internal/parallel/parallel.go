// Package parallel runs independent units of work on a bounded set of
// goroutines.
package parallel

import (
	"runtime"
	"sync"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled    bool // Whether parallel execution is enabled.
	NumWorkers int  // Number of worker goroutines to use.
}

// DefaultConfig uses one worker per CPU.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:    n > 1,
		NumWorkers: n,
	}
}

// WithWorkers returns a config with n workers; n <= 1 runs sequentially.
func WithWorkers(n int) Config {
	return Config{Enabled: n > 1, NumWorkers: n}
}

// For executes f(i) for every i in [0, n) and returns once all calls are done.
//
// Workers pull indices one at a time, so units of uneven cost still spread
// across all workers. f must be safe to call concurrently for distinct i.
// Falls back to a plain loop when parallelism is disabled or n < 2.
func For(n int, f func(i int), cfg Config) {
	if !cfg.Enabled || cfg.NumWorkers <= 1 || n < 2 {
		for i := 0; i < n; i++ {
			f(i)
		}
		return
	}

	workers := min(cfg.NumWorkers, n)
	next := make(chan int)

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range next {
				f(i)
			}
		}()
	}

	for i := 0; i < n; i++ {
		next <- i
	}
	close(next)
	wg.Wait()
}
