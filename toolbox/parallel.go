package toolbox

import (
	"runtime"
	"sync"
)

// ParallelConfig controls whether neurons within a layer are evaluated on
// multiple goroutines.  Layers smaller than MinNeurons are always evaluated
// on the calling goroutine.
type ParallelConfig struct {
	Enabled    bool
	NumWorkers int
	MinNeurons int
}

func DefaultParallelConfig() ParallelConfig {
	n := runtime.NumCPU()
	return ParallelConfig{
		Enabled:    n > 1,
		NumWorkers: n,
		MinNeurons: 64,
	}
}

func (cfg ParallelConfig) active(n int) bool {
	return cfg.Enabled && cfg.NumWorkers > 1 && n >= cfg.MinNeurons && n > 1
}

// parallelFor calls f(i) for every i in [0, n), splitting the range into one
// contiguous chunk per worker.
func parallelFor(n int, f func(i int), cfg ParallelConfig) {
	if !cfg.active(n) {
		for i := 0; i < n; i++ {
			f(i)
		}
		return
	}

	chunkSize := max((n+cfg.NumWorkers-1)/cfg.NumWorkers, 1)

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			for i := s; i < e; i++ {
				f(i)
			}
		}(start, end)
	}
	wg.Wait()
}
