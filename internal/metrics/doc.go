// Package metrics provides Prometheus instrumentation for the image picker.
//
// All metrics are prefixed with "image_picker_" and registered through
// promauto, so they are exported by the default registry served on /metrics.
//
// # Metric Categories
//
// ## HTTP Metrics
//
//   - HTTPRequestsTotal: Counter of requests by method, path, and status
//   - HTTPRequestDuration: Histogram of request duration by method and path
//   - HTTPRequestsInFlight: Gauge of currently processing requests
//
// ## Pipeline Metrics
//
//   - PipelineItemsTotal: Counter of per-item outcomes by stage and status
//   - PipelineStageDuration: Histogram of one stage over one batch
//   - PipelineBatchDuration: Histogram of end-to-end result assembly
//   - PipelineBatchesTotal: Counter of batches by outcome
//
// ## Session and Cache Metrics
//
//   - SessionItems: Gauge of items in the selection session
//   - CacheSizeBytes, CacheFiles: Gauges sampled by Collector
//   - CacheClearsTotal: Counter of cache directory removals
//
// ## Memory Metrics
//
//   - MemoryUsageRatio, MemoryPaused: Gauges set by the memory monitor
//   - MemoryGCPauses: Counter of pauses under memory pressure
//
// ## Filesystem Metrics
//
// Recorded through filesystem.Observer (see NewFilesystemObserver), which keeps
// the filesystem package free of a Prometheus import:
//   - FilesystemRetryAttempts, FilesystemRetrySuccess, FilesystemRetryFailures
//   - FilesystemRetryDuration, FilesystemStaleErrors
//
// # Usage
//
//	metrics.InitializeMetrics()
//	filesystem.SetObserver(metrics.NewFilesystemObserver())
//	collector := metrics.NewCollector(store, time.Minute)
//	collector.Start()
//	defer collector.Stop()
package metrics
