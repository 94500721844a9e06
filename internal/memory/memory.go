package memory

import (
	"context"
	"runtime"
	"runtime/debug"
	"sync"
	"time"

	"image-picker/internal/logging"
	"image-picker/internal/metrics"
)

// Config holds the monitor thresholds, as fractions of the memory limit.
type Config struct {
	// LimitBytes overrides the runtime soft limit; 0 reads it from the runtime.
	LimitBytes int64
	// ResumeMark is the usage below which paused work resumes.
	ResumeMark float64
	// PauseMark is the usage at or above which new decodes wait.
	PauseMark float64
	// CheckInterval is the sampling period.
	CheckInterval time.Duration
}

// DefaultConfig returns the thresholds used by the server.
func DefaultConfig() Config {
	return Config{
		ResumeMark:    0.7,
		PauseMark:     0.9,
		CheckInterval: 2 * time.Second,
	}
}

// Monitor samples heap usage and holds back image decodes while the process
// is close to its memory limit. Without a limit it never pauses.
type Monitor struct {
	config Config
	limit  int64
	read   func() uint64

	mu      sync.RWMutex
	current uint64
	paused  bool
	resume  chan struct{}

	stopOnce sync.Once
	stop     chan struct{}
}

// NewMonitor returns a stopped Monitor.
func NewMonitor(config Config) *Monitor {
	limit := config.LimitBytes
	if limit == 0 {
		if l := debug.SetMemoryLimit(-1); l > 0 && l < 1<<62 {
			limit = l
		}
	}

	return &Monitor{
		config: config,
		limit:  limit,
		read:   heapAlloc,
		resume: make(chan struct{}),
		stop:   make(chan struct{}),
	}
}

func heapAlloc() uint64 {
	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)
	return stats.Alloc
}

// Enabled reports whether a memory limit is known.
func (m *Monitor) Enabled() bool {
	return m.limit > 0
}

// Start samples memory in the background until Stop.
func (m *Monitor) Start() {
	if !m.Enabled() {
		logging.Debug("Memory monitor disabled: no memory limit configured")
		return
	}
	logging.Info("Memory monitor started (limit %s, pause at %.0f%%)", FormatBytes(m.limit), m.config.PauseMark*100)

	go func() {
		ticker := time.NewTicker(m.config.CheckInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				m.check()
			case <-m.stop:
				return
			}
		}
	}()
}

// Stop ends sampling and releases every waiter.
func (m *Monitor) Stop() {
	m.stopOnce.Do(func() { close(m.stop) })
}

func (m *Monitor) check() {
	alloc := m.read()
	usage := float64(alloc) / float64(m.limit)
	metrics.MemoryUsageRatio.Set(usage)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = alloc

	switch {
	case usage >= m.config.PauseMark && !m.paused:
		logging.Warn("Memory at %.1f%% of limit, pausing image decoding", usage*100)
		m.paused = true
		metrics.MemoryPaused.Set(1)
		metrics.MemoryGCPauses.Inc()
		go runtime.GC()
	case usage < m.config.ResumeMark && m.paused:
		logging.Info("Memory back to %.1f%% of limit, resuming image decoding", usage*100)
		m.paused = false
		metrics.MemoryPaused.Set(0)
		close(m.resume)
		m.resume = make(chan struct{})
	}
}

// Wait blocks while decoding is paused. It returns ctx.Err() if the context
// ends first and nil once it is safe to proceed or the monitor is stopped.
func (m *Monitor) Wait(ctx context.Context) error {
	m.mu.RLock()
	if !m.paused {
		m.mu.RUnlock()
		return nil
	}
	resume := m.resume
	m.mu.RUnlock()

	select {
	case <-resume:
		return nil
	case <-m.stop:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Paused reports whether decodes are currently held back.
func (m *Monitor) Paused() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.paused
}

// Stats returns the last sampled allocation, the limit and their ratio.
func (m *Monitor) Stats() (current uint64, limit int64, usage float64) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.limit > 0 {
		usage = float64(m.current) / float64(m.limit)
	}
	return m.current, m.limit, usage
}
