package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "image_picker_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "image_picker_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "image_picker_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)
)

// Pipeline metrics
var (
	PipelineItemsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "image_picker_pipeline_items_total",
			Help: "Total number of items processed by a pipeline stage",
		},
		[]string{"stage", "status"}, // stage: copy, compress, describe; status: ok, skipped, error
	)

	PipelineStageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "image_picker_pipeline_stage_duration_seconds",
			Help:    "Duration of a single pipeline stage over one batch",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"stage"},
	)

	PipelineBatchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "image_picker_pipeline_batch_duration_seconds",
			Help:    "End-to-end duration of assembling one picker result",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
	)

	PipelineBatchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "image_picker_pipeline_batches_total",
			Help: "Total number of assembled batches by outcome",
		},
		[]string{"status"}, // ok, empty, error
	)
)

// Session and cache metrics
var (
	SessionItems = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "image_picker_session_items",
			Help: "Number of media items currently held in the selection session",
		},
	)

	CacheSizeBytes = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "image_picker_cache_size_bytes",
			Help: "Total size of the picker cache directory in bytes",
		},
	)

	CacheFiles = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "image_picker_cache_files",
			Help: "Number of files in the picker cache directory",
		},
	)

	CacheClearsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "image_picker_cache_clears_total",
			Help: "Total number of cache directory removals",
		},
	)
)

// Host integration metrics
var (
	PickerInvocationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "image_picker_invocations_total",
			Help: "Total number of host picker and camera invocations",
		},
		[]string{"source", "status"}, // source: gallery, camera, video; status: ok, canceled, error
	)
)

// Filesystem metrics
var (
	FilesystemRetryAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "image_picker_filesystem_retry_attempts_total",
			Help: "Total number of filesystem retry attempts after stale handle errors",
		},
		[]string{"operation", "volume"},
	)

	FilesystemRetrySuccess = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "image_picker_filesystem_retry_success_total",
			Help: "Total number of filesystem operations that succeeded after retrying",
		},
		[]string{"operation", "volume"},
	)

	FilesystemRetryFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "image_picker_filesystem_retry_failures_total",
			Help: "Total number of filesystem operations that exhausted their retries",
		},
		[]string{"operation", "volume"},
	)

	FilesystemRetryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "image_picker_filesystem_retry_duration_seconds",
			Help:    "Time spent in retried filesystem operations",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"operation", "volume"},
	)

	FilesystemStaleErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "image_picker_filesystem_stale_errors_total",
			Help: "Total number of stale file handle errors",
		},
		[]string{"operation", "volume"},
	)
)

// Memory metrics
var (
	MemoryUsageRatio = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "image_picker_memory_usage_ratio",
			Help: "Heap allocation as a fraction of the configured memory limit",
		},
	)

	MemoryPaused = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "image_picker_memory_paused",
			Help: "1 while decoding is paused for memory pressure",
		},
	)

	MemoryGCPauses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "image_picker_memory_gc_pauses_total",
			Help: "Times decoding was paused and a GC forced",
		},
	)
)

// Application info metric
var (
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "image_picker_app_info",
			Help: "Application information",
		},
		[]string{"version", "commit", "go_version"},
	)
)

// SetAppInfo sets the application info metric
func SetAppInfo(version, commit, goVersion string) {
	AppInfo.WithLabelValues(version, commit, goVersion).Set(1)
}

// InitializeMetrics pre-populates the expected label combinations so every
// series is exported from the first scrape.
func InitializeMetrics() {
	for _, stage := range []string{"copy", "compress", "describe"} {
		for _, status := range []string{"ok", "skipped", "error"} {
			PipelineItemsTotal.WithLabelValues(stage, status)
		}
		PipelineStageDuration.WithLabelValues(stage)
	}

	for _, status := range []string{"ok", "empty", "error"} {
		PipelineBatchesTotal.WithLabelValues(status)
	}

	for _, source := range []string{"gallery", "camera", "video"} {
		for _, status := range []string{"ok", "canceled", "error"} {
			PickerInvocationsTotal.WithLabelValues(source, status)
		}
	}

	for _, op := range []string{"stat", "open"} {
		for _, vol := range []string{"source", "cache", "unknown"} {
			FilesystemRetryAttempts.WithLabelValues(op, vol)
			FilesystemRetrySuccess.WithLabelValues(op, vol)
			FilesystemRetryFailures.WithLabelValues(op, vol)
			FilesystemStaleErrors.WithLabelValues(op, vol)
			FilesystemRetryDuration.WithLabelValues(op, vol)
		}
	}
}
