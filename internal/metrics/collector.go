package metrics

import (
	"time"

	"image-picker/internal/logging"
)

// UsageProvider reports how much disk space the picker cache holds.
type UsageProvider interface {
	Usage() (bytes int64, files int, err error)
}

// Collector periodically samples cache usage into the cache gauges.
type Collector struct {
	provider UsageProvider
	interval time.Duration
	stopChan chan struct{}
}

// NewCollector creates a new cache usage collector
func NewCollector(provider UsageProvider, interval time.Duration) *Collector {
	return &Collector{
		provider: provider,
		interval: interval,
		stopChan: make(chan struct{}),
	}
}

// Start begins the collection loop
func (c *Collector) Start() {
	go c.collectLoop()
}

// Stop stops the collection loop
func (c *Collector) Stop() {
	close(c.stopChan)
}

func (c *Collector) collectLoop() {
	c.collect()

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.collect()
		case <-c.stopChan:
			return
		}
	}
}

func (c *Collector) collect() {
	if c.provider == nil {
		return
	}

	bytes, files, err := c.provider.Usage()
	if err != nil {
		logging.Warn("Cache usage collection failed: %v", err)
		return
	}

	CacheSizeBytes.Set(float64(bytes))
	CacheFiles.Set(float64(files))

	logging.Debug("Metrics collected: cache_bytes=%d, cache_files=%d", bytes, files)
}
