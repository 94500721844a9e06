// Package startup handles application initialization, configuration loading,
// and startup/shutdown logging.
//
// # Configuration
//
// All configuration is loaded from environment variables via [LoadConfig]:
//
//   - CACHE_DIR: Directory for copied, compressed and captured files
//     (default: $TMPDIR/image-picker). Must be writable.
//   - PORT: HTTP server port; metrics are served on the same port (default: 8080)
//   - METRICS_ENABLED: Serve /metrics (default: true)
//   - LOG_LEVEL: debug, info, warn, error (default: info)
//   - LOG_HEALTH_CHECKS: Log health check requests (default: true)
//   - PICKER_WORKERS: Concurrent tasks per pipeline stage (default: 2 per CPU)
//   - PICKER_USE_VIPS: Decode and encode with libvips (default: false)
//   - PICKER_POLICY: default, best-effort or fail-fast
//   - PICKER_DIALOGS: Open native file dialogs; false reads paths from the
//     request body (default: true)
//   - CAMERA_DEVICE: ffmpeg capture device; empty disables the camera
//   - MEMORY_LIMIT, MEMORY_RATIO, GOMEMLIMIT: see package memory
//
// # Build Information
//
// Build-time variables are injected via ldflags and exposed via [GetBuildInfo]:
//
//	go build -ldflags "-X image-picker/internal/startup.Version=1.2.0"
//
// # Lifecycle Logging
//
// Each phase logs a section header followed by indented detail lines:
//   - [LogMemoryConfig]: Runtime memory limit
//   - [LogCodecInit]: Image codec in use
//   - [LogHTTPRoutes]: Registered HTTP routes (debug level)
//   - [LogServerStarted]: Server endpoints and startup duration
//   - [LogShutdownInitiated], [LogShutdownComplete]: Graceful shutdown
package startup
