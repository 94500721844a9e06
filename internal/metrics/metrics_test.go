package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// gaugeOrCounterValue reads the current value of a single series.
func gaugeOrCounterValue(t *testing.T, m prometheus.Metric) float64 {
	t.Helper()
	var out dto.Metric
	if err := m.Write(&out); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	switch {
	case out.Gauge != nil:
		return out.Gauge.GetValue()
	case out.Counter != nil:
		return out.Counter.GetValue()
	}
	t.Fatalf("metric is neither gauge nor counter")
	return 0
}

func TestPipelineMetricsExist(t *testing.T) {
	tests := []struct {
		name   string
		metric interface{}
	}{
		{"PipelineItemsTotal", PipelineItemsTotal},
		{"PipelineStageDuration", PipelineStageDuration},
		{"PipelineBatchDuration", PipelineBatchDuration},
		{"PipelineBatchesTotal", PipelineBatchesTotal},
		{"SessionItems", SessionItems},
		{"CacheSizeBytes", CacheSizeBytes},
		{"CacheFiles", CacheFiles},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.metric == nil {
				t.Errorf("%s metric is nil", tt.name)
			}
		})
	}
}

func TestSetAppInfo(t *testing.T) {
	SetAppInfo("1.2.3", "abc123", "go1.25")

	if got := gaugeOrCounterValue(t, AppInfo.WithLabelValues("1.2.3", "abc123", "go1.25")); got != 1 {
		t.Errorf("AppInfo = %v, want 1", got)
	}
}

func TestFilesystemObserver(t *testing.T) {
	obs := NewFilesystemObserver()

	before := gaugeOrCounterValue(t, FilesystemRetryAttempts.WithLabelValues("stat", "cache"))
	obs.ObserveRetryAttempt("stat", "cache")
	obs.ObserveRetryAttempt("stat", "cache")
	after := gaugeOrCounterValue(t, FilesystemRetryAttempts.WithLabelValues("stat", "cache"))

	if after-before != 2 {
		t.Errorf("retry attempts delta = %v, want 2", after-before)
	}

	staleBefore := gaugeOrCounterValue(t, FilesystemStaleErrors.WithLabelValues("open", "source"))
	obs.ObserveStaleError("open", "source")
	if got := gaugeOrCounterValue(t, FilesystemStaleErrors.WithLabelValues("open", "source")) - staleBefore; got != 1 {
		t.Errorf("stale errors delta = %v, want 1", got)
	}
}

func TestInitializeMetrics(t *testing.T) {
	InitializeMetrics()

	ch := make(chan prometheus.Metric, 64)
	PipelineItemsTotal.Collect(ch)
	close(ch)

	n := 0
	for range ch {
		n++
	}
	if n < 9 {
		t.Errorf("PipelineItemsTotal series = %d, want at least 9", n)
	}
}

type fakeUsage struct {
	bytes int64
	files int
	err   error
}

func (f fakeUsage) Usage() (int64, int, error) {
	return f.bytes, f.files, f.err
}

func TestCollectorCollect(t *testing.T) {
	c := NewCollector(fakeUsage{bytes: 4096, files: 3}, time.Hour)
	c.collect()

	if got := gaugeOrCounterValue(t, CacheSizeBytes); got != 4096 {
		t.Errorf("CacheSizeBytes = %v, want 4096", got)
	}
	if got := gaugeOrCounterValue(t, CacheFiles); got != 3 {
		t.Errorf("CacheFiles = %v, want 3", got)
	}
}

func TestCollectorKeepsLastValueOnError(t *testing.T) {
	NewCollector(fakeUsage{bytes: 100, files: 1}, time.Hour).collect()
	NewCollector(fakeUsage{err: errors.New("boom")}, time.Hour).collect()

	if got := gaugeOrCounterValue(t, CacheSizeBytes); got != 100 {
		t.Errorf("CacheSizeBytes = %v, want 100 after failed sample", got)
	}
}

func TestCollectorNilProvider(t *testing.T) {
	c := NewCollector(nil, time.Hour)
	c.collect()
}

func TestCollectorStartStop(t *testing.T) {
	c := NewCollector(fakeUsage{bytes: 1, files: 1}, 10*time.Millisecond)
	c.Start()
	time.Sleep(25 * time.Millisecond)
	c.Stop()
}
