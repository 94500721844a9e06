package filesystem

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"syscall"
	"testing"
	"time"
)

type recordingObserver struct {
	mu       sync.Mutex
	attempts int
	success  int
	failures int
	stale    int
	volumes  []string
}

func (o *recordingObserver) ObserveRetryAttempt(_, volume string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.attempts++
	o.volumes = append(o.volumes, volume)
}

func (o *recordingObserver) ObserveRetrySuccess(string, string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.success++
}

func (o *recordingObserver) ObserveRetryFailure(string, string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.failures++
}

func (o *recordingObserver) ObserveRetryDuration(string, string, float64) {}

func (o *recordingObserver) ObserveStaleError(string, string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.stale++
}

func fastRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:     3,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     2 * time.Millisecond,
	}
}

func TestDefaultRetryConfig(t *testing.T) {
	config := DefaultRetryConfig()

	if config.MaxRetries != 3 {
		t.Errorf("MaxRetries = %d, want 3", config.MaxRetries)
	}
	if config.InitialBackoff != 50*time.Millisecond {
		t.Errorf("InitialBackoff = %v, want 50ms", config.InitialBackoff)
	}
	if config.MaxBackoff != 500*time.Millisecond {
		t.Errorf("MaxBackoff = %v, want 500ms", config.MaxBackoff)
	}
	if config.VolumeResolver != nil {
		t.Error("VolumeResolver should be nil by default")
	}
}

func TestIsStaleError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil error", nil, false},
		{"ESTALE error", syscall.ESTALE, true},
		{"wrapped ESTALE", &os.PathError{Op: "open", Path: "/x", Err: syscall.ESTALE}, true},
		{"ENOENT error", syscall.ENOENT, false},
		{"generic error", os.ErrNotExist, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isStaleError(tt.err); got != tt.want {
				t.Errorf("isStaleError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestVolumeResolver_Resolve(t *testing.T) {
	vr := NewVolumeResolver(map[string]string{
		"cache":       "/data/cache",
		"cache-large": "/data/cache/large",
	})

	tests := []struct {
		path string
		want string
	}{
		{"/data/cache/pick_cache_1.jpg", "cache"},
		{"/data/cache", "cache"},
		{"/data/cache/large/x.mp4", "cache-large"},
		{"/data/cachefoo/x.jpg", "source"},
		{"/storage/DCIM/1.jpg", "source"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := vr.Resolve(tt.path); got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestVolumeResolver_Resolve_NilResolver(t *testing.T) {
	var vr *VolumeResolver
	if got := vr.Resolve("/anything"); got != "unknown" {
		t.Errorf("nil resolver Resolve = %q, want unknown", got)
	}
}

func TestStatWithRetry_Success(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.jpg")
	if err := os.WriteFile(path, []byte("hello"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	info, err := StatWithRetry(path, fastRetryConfig())
	if err != nil {
		t.Fatalf("StatWithRetry: %v", err)
	}
	if info.Size() != 5 {
		t.Errorf("Size = %d, want 5", info.Size())
	}
}

func TestOpenWithRetry_NotExist(t *testing.T) {
	obs := &recordingObserver{}
	SetObserver(obs)
	defer SetObserver(nil)

	_, err := OpenWithRetry(filepath.Join(t.TempDir(), "missing.jpg"), fastRetryConfig())
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Expected not-exist error, got %v", err)
	}
	if obs.attempts != 0 {
		t.Errorf("Non-stale errors must not be retried, got %d attempts", obs.attempts)
	}
}

func TestWithRetry_RecoversFromStaleHandle(t *testing.T) {
	obs := &recordingObserver{}
	SetObserver(obs)
	defer SetObserver(nil)

	calls := 0
	got, err := withRetry("open", "/src/a.jpg", fastRetryConfig(), func() (string, error) {
		calls++
		if calls < 3 {
			return "", syscall.ESTALE
		}
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("withRetry: %v", err)
	}
	if got != "ok" {
		t.Errorf("result = %q, want ok", got)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
	if obs.attempts != 2 || obs.stale != 2 || obs.success != 1 {
		t.Errorf("observer = attempts %d stale %d success %d, want 2/2/1", obs.attempts, obs.stale, obs.success)
	}
}

func TestWithRetry_ExhaustsRetries(t *testing.T) {
	obs := &recordingObserver{}
	SetObserver(obs)
	defer SetObserver(nil)

	config := fastRetryConfig()
	calls := 0
	_, err := withRetry("stat", "/src/a.jpg", config, func() (int, error) {
		calls++
		return 0, syscall.ESTALE
	})
	if !errors.Is(err, syscall.ESTALE) {
		t.Fatalf("Expected ESTALE, got %v", err)
	}
	if calls != config.MaxRetries+1 {
		t.Errorf("calls = %d, want %d", calls, config.MaxRetries+1)
	}
	if obs.failures != 1 {
		t.Errorf("failures = %d, want 1", obs.failures)
	}
}

func TestCloseLogged_NilFile(_ *testing.T) {
	CloseLogged(nil, "source file")
}
