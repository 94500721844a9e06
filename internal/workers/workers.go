package workers

import (
	"os"
	"runtime"
	"strconv"
	"sync"
)

// EnvOverride is the environment variable that overrides worker counts.
const EnvOverride = "PICKER_WORKERS"

// Count returns the number of workers for a task type. The multiplier scales
// GOMAXPROCS (1.0 CPU-bound, 2.0 I/O-bound) and limit caps the result; 0
// means no cap.
func Count(multiplier float64, limit int) int {
	if override := os.Getenv(EnvOverride); override != "" {
		if count, err := strconv.Atoi(override); err == nil && count > 0 {
			if limit > 0 && count > limit {
				return limit
			}
			return count
		}
	}

	available := runtime.GOMAXPROCS(0)

	workers := int(float64(available) * multiplier)

	if workers < 1 {
		workers = 1
	}
	if limit > 0 && workers > limit {
		workers = limit
	}

	return workers
}

// ForCPU returns worker count for CPU-bound tasks (1 per CPU).
func ForCPU(limit int) int {
	return Count(1.0, limit)
}

// ForIO returns worker count for I/O-bound tasks (2 per CPU).
func ForIO(limit int) int {
	return Count(2.0, limit)
}

// Each runs fn(i) for every i in [0, n) with at most limit calls in flight,
// and returns once all calls have returned. A limit below 1 runs the calls
// one at a time.
func Each(n, limit int, fn func(i int)) {
	if n <= 0 {
		return
	}
	if limit < 1 {
		limit = 1
	}

	sem := make(chan struct{}, limit)
	var wg sync.WaitGroup

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			fn(idx)
		}(i)
	}

	wg.Wait()
}
