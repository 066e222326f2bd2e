package physics

import (
	"runtime"
	"sync"
)

const minRowsPerWorker = 8

// parallelRows splits the row range [i0, i1) across workers and waits for
// all of them. fn must be safe to call concurrently on disjoint ranges.
func parallelRows(i0, i1 int, fn func(start, end int)) {
	n := i1 - i0
	workers := runtime.NumCPU()
	if n/minRowsPerWorker < workers {
		workers = n / minRowsPerWorker
	}
	if workers <= 1 {
		fn(i0, i1)
		return
	}

	chunk := (n + workers - 1) / workers

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		start := i0 + w*chunk
		end := start + chunk
		if end > i1 {
			end = i1
		}
		go func(s, e int) {
			defer wg.Done()
			if s < e {
				fn(s, e)
			}
		}(start, end)
	}
	wg.Wait()
}
