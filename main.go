package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"image-picker/internal/cache"
	"image-picker/internal/filesystem"
	"image-picker/internal/handlers"
	"image-picker/internal/logging"
	"image-picker/internal/media"
	"image-picker/internal/memory"
	"image-picker/internal/metrics"
	"image-picker/internal/middleware"
	"image-picker/internal/picker"
	"image-picker/internal/pipeline"
	"image-picker/internal/startup"

	"github.com/gorilla/mux"
)

// cacheSampleInterval is how often cache usage gauges are refreshed.
const cacheSampleInterval = 30 * time.Second

func main() {
	startTime := time.Now()

	// Set GOMEMLIMIT before anything is decoded
	memoryResult := memory.ConfigureFromEnv()

	config, err := startup.LoadConfig()
	if err != nil {
		startup.LogFatal("Configuration error: %v", err)
	}
	startup.LogMemoryConfig(memoryResult)

	metrics.InitializeMetrics()
	metrics.SetAppInfo(startup.Version, startup.Commit, startup.GoVersion)
	filesystem.SetObserver(metrics.NewFilesystemObserver())
	filesystem.SetDefaultVolumeResolver(filesystem.NewVolumeResolver(map[string]string{
		"cache": config.CacheDir,
	}))

	// Image codec
	var codec media.Codec = media.StdCodec{}
	var vipsErr error
	if config.UseVips {
		if vipsErr = media.InitVips(); vipsErr == nil {
			codec = media.VipsCodec{}
		}
	}
	startup.LogCodecInit(config.UseVips, vipsErr)

	store := cache.New(config.CacheDir)

	monitor := memory.NewMonitor(memory.DefaultConfig())
	monitor.Start()

	assembler := pipeline.NewAssembler(pipeline.Config{
		Copier:     store,
		Compressor: media.NewCompressor(codec, store),
		Describer:  media.NewDescriber(codec, media.FFprobe{}),
		Policy:     config.Policy,
		Gate:       monitor,
	})

	var photos picker.PhotoPicker = picker.RequestPicker{}
	if config.Dialogs {
		photos = picker.DesktopPicker{}
	}

	var camera picker.CameraService
	if config.CameraEnabled {
		camera = picker.FFmpegCamera{
			Device: config.CameraDevice,
			NewPath: func() (string, error) {
				return store.NewPath(cache.CameraPrefix, "jpg")
			},
		}
	}

	facade := picker.New(picker.Config{
		Photos:    photos,
		Camera:    camera,
		Assembler: assembler,
		Cache:     store,
	})

	collector := metrics.NewCollector(store, cacheSampleInterval)
	collector.Start()

	h := handlers.New(facade, config)
	router := setupRouter(h, config.MetricsEnabled)
	startup.LogHTTPRoutes(router, config.LogHealthChecks)

	loggingConfig := middleware.DefaultLoggingConfig()
	loggingConfig.LogHealthChecks = config.LogHealthChecks
	handler := middleware.Logger(loggingConfig)(
		middleware.Compression(middleware.DefaultCompressionConfig())(router),
	)

	srv := &http.Server{
		Addr:              ":" + config.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		// Picks block on the user's dialog, so there is no write timeout.
		WriteTimeout: 0,
		IdleTimeout:  60 * time.Second,
	}

	go handleShutdown(srv, collector, monitor, config.UseVips && vipsErr == nil)

	startup.LogServerStarted(startup.ServerConfig{
		Port:            config.Port,
		MetricsEnabled:  config.MetricsEnabled,
		StartupDuration: time.Since(startTime),
	})
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		startup.LogFatal("Server error: %v", err)
	}
}

func setupRouter(h *handlers.Handlers, metricsEnabled bool) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.Metrics(middleware.DefaultMetricsConfig()))

	r.HandleFunc("/health", h.HealthCheck).Methods("GET")
	r.HandleFunc("/livez", h.LivenessCheck).Methods("GET", "HEAD")
	r.HandleFunc("/version", h.GetVersion).Methods("GET")
	if metricsEnabled {
		r.Handle("/metrics", h.MetricsHandler()).Methods("GET")
	}

	api := r.PathPrefix("/api").Subrouter()

	// Picker operations
	api.HandleFunc("/picker/show", h.ShowPicker).Methods("POST")
	api.HandleFunc("/picker/pick", h.PickAsync).Methods("POST")
	api.HandleFunc("/video/open", h.OpenVideoPicker).Methods("POST")
	api.HandleFunc("/camera/open", h.OpenCamera).Methods("POST")
	api.HandleFunc("/camera/open-async", h.OpenCameraAsync).Methods("POST")

	// Cache and selection session
	api.HandleFunc("/cache", h.DeleteCache).Methods("DELETE")
	api.HandleFunc("/selection", h.GetSelection).Methods("GET")
	api.HandleFunc("/selection", h.ClearSelection).Methods("DELETE")
	api.HandleFunc("/selection/{index}", h.RemoveSelection).Methods("DELETE")

	return r
}

func handleShutdown(srv *http.Server, collector *metrics.Collector, monitor *memory.Monitor, vips bool) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan

	startup.LogShutdownInitiated(sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	startup.LogShutdownStep("Shutting down HTTP server")
	if err := srv.Shutdown(ctx); err != nil {
		logging.Warn("Server shutdown error: %v", err)
	} else {
		startup.LogShutdownStepComplete("HTTP server stopped")
	}

	startup.LogShutdownStep("Stopping background samplers")
	collector.Stop()
	monitor.Stop()
	startup.LogShutdownStepComplete("Background samplers stopped")

	if vips {
		startup.LogShutdownStep("Shutting down libvips")
		media.ShutdownVips()
		startup.LogShutdownStepComplete("libvips shut down")
	}

	startup.LogShutdownComplete()
}
