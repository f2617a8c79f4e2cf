// Package parallel provides a minimal parallel-for abstraction used by the
// Neighborhood and Model packages for their optional loop-level parallelism
// over disjoint index ranges (template refresh/screening, bulk constraint
// evaluation). It intentionally does not expose goroutine pools, work
// stealing, or dynamic scaling: every call site here is a single data-parallel
// sweep over [0,N) that starts and finishes within one outer iteration, so a
// pool with a lifetime longer than one call buys nothing.
package parallel

import (
	"runtime"
	"sync"
)

// For runs fn(i) for every i in [0,n) using up to workers goroutines with
// static (contiguous block) partitioning, then waits for all of them to
// finish. workers <= 0 means runtime.GOMAXPROCS(0), and the count is capped
// at n; if the resulting count is 1, it runs fn sequentially in the calling
// goroutine instead of paying goroutine setup cost.
//
// fn must not mutate any shared structure other than through disjoint,
// index-addressed slots: the contract assumed throughout this module is that
// distinct indices never touch the same memory.
func For(n int, workers int, fn func(i int)) {
	if n <= 0 {
		return
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}

	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * chunk
		if start >= n {
			break
		}
		end := start + chunk
		if end > n {
			end = n
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				fn(i)
			}
		}(start, end)
	}
	wg.Wait()
}

// Config controls whether a caller's loop should actually run in parallel and
// with how many workers. It is the shared knob threaded from
// pkg/config.Options into Neighborhood and Model so that every data-parallel
// loop in the module is gated by the same two fields.
type Config struct {
	// Enabled turns loop-level parallelism on. When false, For always runs
	// sequentially regardless of Workers.
	Enabled bool

	// Workers caps the number of goroutines used by For. Zero means
	// runtime.GOMAXPROCS(0).
	Workers int
}

// For runs fn(i) for i in [0,n) honoring c's Enabled/Workers settings. A nil
// Config runs sequentially.
func (c *Config) For(n int, fn func(i int)) {
	if c == nil || !c.Enabled {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}
	For(n, c.Workers, fn)
}
