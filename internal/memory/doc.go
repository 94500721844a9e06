// Package memory keeps the picker inside its container memory budget.
//
// Decoding a batch of camera-sized photos allocates several full-resolution
// bitmaps at once, and libvips, ffmpeg and ffprobe allocate outside the Go
// heap. The Go runtime does not read the cgroup memory limit, so
// [ConfigureFromEnv] sets GOMEMLIMIT from the environment:
//
//   - GOMEMLIMIT: standard Go variable. When set it is left untouched.
//   - MEMORY_LIMIT: container limit in bytes, typically from the Kubernetes
//     Downward API (resourceFieldRef limits.memory).
//   - MEMORY_RATIO: share of MEMORY_LIMIT given to the heap, in (0, 1].
//     Default 0.80.
//
// # Backpressure
//
// [Monitor] samples heap usage and pauses new decodes once usage crosses
// PauseMark, forcing a GC, until usage falls below ResumeMark. The pipeline
// calls [Monitor.Wait] before every compress and describe task:
//
//	monitor := memory.NewMonitor(memory.DefaultConfig())
//	monitor.Start()
//	defer monitor.Stop()
//
//	if err := monitor.Wait(ctx); err != nil {
//	    return err
//	}
//
// Without a memory limit the monitor never pauses.
package memory
