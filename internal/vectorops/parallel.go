package vectorops

import (
	"runtime"
	"sync"
)

// Parallelize splits [0, nbIterations) into roughly nbTasks contiguous
// chunks and runs work on each chunk in its own goroutine, waiting for all
// of them to finish before returning. Grounded on gnark's
// internal/utils.Parallelize, used the same way in backend/fflonk/bn254/prove.go
// for per-row/per-index work with disjoint output slices.
func Parallelize(nbIterations int, work func(start, end int), nbTasks ...int) {
	n := runtime.NumCPU()
	if len(nbTasks) > 0 && nbTasks[0] > 0 {
		n = nbTasks[0]
	}
	if n > nbIterations {
		n = nbIterations
	}
	if n <= 1 {
		work(0, nbIterations)
		return
	}

	var wg sync.WaitGroup
	chunk := (nbIterations + n - 1) / n
	for start := 0; start < nbIterations; start += chunk {
		end := start + chunk
		if end > nbIterations {
			end = nbIterations
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			work(start, end)
		}(start, end)
	}
	wg.Wait()
}
