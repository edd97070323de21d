// Package parallel runs data-parallel loops over index ranges.
package parallel

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Workers returns the number of workers For will use for n items when asked
// for numWorkers. numWorkers below 1 means runtime.GOMAXPROCS(0).
func Workers(numWorkers, n int) int {
	if numWorkers < 1 {
		numWorkers = runtime.GOMAXPROCS(0)
	}
	// Don't use more workers than items
	return max(min(numWorkers, n), 1)
}

// For calls fn over contiguous, disjoint chunks that together cover [0, n),
// one chunk per worker, and blocks until every call has returned.
//
// fn receives (start, end) and should process [start, end). With a single
// worker, fn(0, n) runs on the calling goroutine.
func For(numWorkers, n int, fn func(start, end int)) {
	if n <= 0 {
		return
	}

	workers := Workers(numWorkers, n)
	if workers == 1 {
		fn(0, n)
		return
	}

	// Ensure all items are covered
	chunkSize := (n + workers - 1) / workers

	var g errgroup.Group
	g.SetLimit(workers)
	for start := 0; start < n; start += chunkSize {
		start := start // per-iteration copy; go 1.21 loop vars are shared
		end := min(start+chunkSize, n)
		g.Go(func() error {
			fn(start, end)
			return nil
		})
	}
	// fn can't fail, so neither can Wait
	_ = g.Wait()
}
