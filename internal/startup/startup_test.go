package startup

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"image-picker/internal/pipeline"

	"github.com/gorilla/mux"
)

func TestGetBuildInfo(t *testing.T) {
	info := GetBuildInfo()

	if info.Version == "" {
		t.Error("Expected Version to be set")
	}
	if info.OS == "" || info.Arch == "" {
		t.Error("Expected OS and Arch to be set")
	}
	if info.GoVersion != GoVersion {
		t.Errorf("Expected GoVersion=%s, got %s", GoVersion, info.GoVersion)
	}
}

func TestGetEnv(t *testing.T) {
	tests := []struct {
		name     string
		envValue string
		setEnv   bool
		want     string
	}{
		{"Returns default when env var not set", "", false, "default"},
		{"Returns env value when set", "custom", true, "custom"},
		{"Returns default when env var is empty", "", true, "default"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			const key = "PICKER_TEST_GET_ENV"
			if tt.setEnv {
				t.Setenv(key, tt.envValue)
			} else {
				os.Unsetenv(key)
			}

			if got := getEnv(key, "default"); got != tt.want {
				t.Errorf("getEnv() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		value        string
		defaultValue bool
		want         bool
	}{
		{"", true, true},
		{"", false, false},
		{"true", false, true},
		{"false", true, false},
		{"1", false, true},
		{"0", true, false},
		{"T", false, true},
		{"yes", true, true},
		{"yes", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("PICKER_TEST_BOOL", tt.value)
			if got := getEnvBool("PICKER_TEST_BOOL", tt.defaultValue); got != tt.want {
				t.Errorf("getEnvBool(%q, %v) = %v, want %v", tt.value, tt.defaultValue, got, tt.want)
			}
		})
	}
}

func setPickerEnv(t *testing.T, cacheDir string) {
	t.Helper()
	t.Setenv("CACHE_DIR", cacheDir)
	t.Setenv("PORT", "")
	t.Setenv("METRICS_ENABLED", "")
	t.Setenv("PICKER_POLICY", "")
	t.Setenv("PICKER_USE_VIPS", "")
	t.Setenv("PICKER_DIALOGS", "")
	t.Setenv("CAMERA_DEVICE", "")
}

func TestLoadConfigDefaults(t *testing.T) {
	cacheDir := filepath.Join(t.TempDir(), "nested", "cache")
	setPickerEnv(t, cacheDir)

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}

	if config.CacheDir != cacheDir {
		t.Errorf("CacheDir = %s, want %s", config.CacheDir, cacheDir)
	}
	if info, err := os.Stat(cacheDir); err != nil || !info.IsDir() {
		t.Errorf("cache directory was not created: %v", err)
	}
	if config.Port != "8080" {
		t.Errorf("Port = %s, want 8080", config.Port)
	}
	if !config.MetricsEnabled || !config.Dialogs || config.UseVips {
		t.Errorf("unexpected flags: %+v", config)
	}
	if config.Policy != pipeline.DefaultPolicy() {
		t.Errorf("Policy = %v, want default", config.Policy)
	}
	if config.CameraEnabled {
		t.Error("camera must be disabled without CAMERA_DEVICE")
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	cacheDir := t.TempDir()
	setPickerEnv(t, cacheDir)
	t.Setenv("PORT", "9999")
	t.Setenv("PICKER_POLICY", "fail-fast")
	t.Setenv("PICKER_DIALOGS", "false")
	t.Setenv("METRICS_ENABLED", "false")

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if config.Port != "9999" || config.Dialogs || config.MetricsEnabled {
		t.Errorf("overrides not applied: %+v", config)
	}
	if config.Policy != pipeline.FailFastPolicy() {
		t.Errorf("Policy = %v, want fail-fast", config.Policy)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	t.Run("unknown policy", func(t *testing.T) {
		setPickerEnv(t, t.TempDir())
		t.Setenv("PICKER_POLICY", "yolo")
		if _, err := LoadConfig(); err == nil || !strings.Contains(err.Error(), "PICKER_POLICY") {
			t.Errorf("LoadConfig() error = %v, want PICKER_POLICY error", err)
		}
	})

	t.Run("cache path is a file", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "file")
		if err := os.WriteFile(file, nil, 0o644); err != nil {
			t.Fatal(err)
		}
		setPickerEnv(t, file)
		if _, err := LoadConfig(); err == nil {
			t.Error("LoadConfig() should fail when CACHE_DIR is a file")
		}
	})
}

func TestGetRouteGroup(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/api/picker/show", "api/picker"},
		{"/api/selection/{index}", "api/selection"},
		{"/api", "api"},
		{"/health", "health"},
		{"/", ""},
	}
	for _, tt := range tests {
		if got := getRouteGroup(tt.path); got != tt.want {
			t.Errorf("getRouteGroup(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestGetRoutes(t *testing.T) {
	noop := func(http.ResponseWriter, *http.Request) {}
	router := mux.NewRouter()
	router.HandleFunc("/api/selection", noop).Methods("GET", "DELETE").Name("selection")
	router.HandleFunc("/health", noop)

	routes, err := GetRoutes(router)
	if err != nil {
		t.Fatalf("GetRoutes() error: %v", err)
	}
	if len(routes) != 3 {
		t.Fatalf("len(routes) = %d, want 3: %+v", len(routes), routes)
	}
	if routes[0].Method != "GET" || routes[0].Name != "selection" {
		t.Errorf("routes[0] = %+v", routes[0])
	}
	if routes[2].Method != "*" || routes[2].Path != "/health" {
		t.Errorf("routes[2] = %+v", routes[2])
	}
}

func TestValueOr(t *testing.T) {
	if got := valueOr("", "(none)"); got != "(none)" {
		t.Errorf("valueOr empty = %q", got)
	}
	if got := valueOr("/dev/video0", "(none)"); got != "/dev/video0" {
		t.Errorf("valueOr set = %q", got)
	}
}
