package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rafaykhanzada/ffmpeg-minimal-api/internal/handlers"
	"github.com/rafaykhanzada/ffmpeg-minimal-api/internal/logging"
	"github.com/rafaykhanzada/ffmpeg-minimal-api/internal/mediatypes"
	"github.com/rafaykhanzada/ffmpeg-minimal-api/internal/memory"
	"github.com/rafaykhanzada/ffmpeg-minimal-api/internal/metrics"
	"github.com/rafaykhanzada/ffmpeg-minimal-api/internal/middleware"
	"github.com/rafaykhanzada/ffmpeg-minimal-api/internal/startup"
	"github.com/rafaykhanzada/ffmpeg-minimal-api/internal/transcode"

	"github.com/gorilla/mux"
)

func main() {
	startTime := time.Now()

	// Cap the Go heap below the container limit; the headroom belongs to
	// the ffmpeg children
	memory.ConfigureFromEnv()

	// Load configuration
	config, err := startup.LoadConfig()
	if err != nil {
		startup.LogFatal("Configuration error: %v", err)
	}

	// Register playlist and segment MIME types before the static file
	// server answers anything
	if err := mediatypes.RegisterStreamingTypes(); err != nil {
		startup.LogFatal("Failed to register media types: %v", err)
	}

	// Probe the encoder; a missing binary is reported per job, not fatal
	startup.LogEncoderInit(config.FFmpegPath)

	// Initialize metrics
	metrics.SetAppInfo(startup.Version, startup.Commit, startup.GoVersion)
	metrics.InitializeMetrics()

	// Initialize the transcode service
	svc := transcode.New(transcode.Config{
		FFmpegPath:     config.FFmpegPath,
		SegmentSeconds: config.SegmentSeconds,
		Root:           config.WebRoot,
		MaxConcurrent:  config.MaxConcurrent,
		Observer:       metrics.NewTranscodeObserver(),
	})

	// Periodically gauge what the encoder has written so far
	collector := metrics.NewCollector(svc, config.StatsInterval)
	collector.Start()

	// Initialize handlers
	h := handlers.New(svc, config)

	// Setup router
	router := setupRouter(h, config.WebRoot)

	// Log routes dynamically
	startup.LogHTTPRoutes(router, config.LogStaticFiles, config.LogHealthChecks)

	// Apply CORS middleware
	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowedOrigins = config.CORSAllowedOrigins
	handler := middleware.CORS(corsConfig)(router)

	// Apply metrics middleware
	handler = middleware.Metrics(middleware.DefaultMetricsConfig())(handler)

	// Apply logging middleware
	loggingConfig := middleware.DefaultLoggingConfig()
	loggingConfig.LogStaticFiles = config.LogStaticFiles
	loggingConfig.LogHealthChecks = config.LogHealthChecks
	handler = middleware.Logger(loggingConfig)(handler)

	// Apply compression middleware
	handler = middleware.Compression(middleware.DefaultCompressionConfig())(handler)

	// Create server. WriteTimeout stays 0 because responses block on
	// encoder runs of unbounded duration.
	srv := &http.Server{
		Addr:         ":" + config.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0,
		IdleTimeout:  60 * time.Second,
	}

	// Metrics get their own listener so scrapes bypass the middleware chain
	var metricsSrv *http.Server
	if config.MetricsEnabled {
		metricsSrv = startMetricsServer(h, config.MetricsPort)
	}

	// Start graceful shutdown handler
	go handleShutdown(srv, metricsSrv, collector)

	// Start server
	startup.LogServerStarted(startup.ServerConfig{
		Port:            config.Port,
		MetricsPort:     config.MetricsPort,
		MetricsEnabled:  config.MetricsEnabled,
		StartupDuration: time.Since(startTime),
	})
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		startup.LogFatal("Server error: %v", err)
	}
}

func setupRouter(h *handlers.Handlers, webRoot string) *mux.Router {
	r := mux.NewRouter()

	// Health check and version routes
	r.HandleFunc("/health", h.HealthCheck).Methods("GET")
	r.HandleFunc("/healthz", h.HealthCheck).Methods("GET")
	r.HandleFunc("/livez", h.LivenessCheck).Methods("GET", "HEAD")
	r.HandleFunc("/readyz", h.ReadinessCheck).Methods("GET")
	r.HandleFunc("/version", h.GetVersion).Methods("GET")

	// Capability listing on the exact root path only
	r.HandleFunc("/", h.Home).Methods("GET")

	// Transcode operations, also reachable under /video
	r.HandleFunc("/download", h.DownloadVideo).Methods("POST")
	r.HandleFunc("/upload", h.UploadVideo).Methods("POST")
	r.HandleFunc("/fetch", h.FetchVideo).Methods("POST")

	video := r.PathPrefix("/video").Subrouter()
	video.HandleFunc("/download", h.DownloadVideo).Methods("POST")
	video.HandleFunc("/upload", h.UploadVideo).Methods("POST")
	video.HandleFunc("/fetch", h.FetchVideo).Methods("POST")

	// Image upload
	r.HandleFunc("/image/upload", h.UploadImage).Methods("POST")

	// Static files: everything the encoder writes is served from the web root
	r.PathPrefix("/").Handler(http.FileServer(http.Dir(webRoot)))

	return r
}

func startMetricsServer(h *handlers.Handlers, port string) *http.Server {
	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", h.MetricsHandler())

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      metricsMux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Error("Metrics server error: %v", err)
		}
	}()

	return srv
}

func handleShutdown(srv, metricsSrv *http.Server, collector *metrics.Collector) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan

	startup.LogShutdownInitiated(sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	startup.LogShutdownStep("Stopping stats collector")
	collector.Stop()
	startup.LogShutdownStepComplete("Stats collector stopped")

	if metricsSrv != nil {
		startup.LogShutdownStep("Shutting down metrics server")
		if err := metricsSrv.Shutdown(ctx); err != nil {
			logging.Warn("Metrics server shutdown error: %v", err)
		} else {
			startup.LogShutdownStepComplete("Metrics server stopped")
		}
	}

	startup.LogShutdownStep("Shutting down HTTP server")
	if err := srv.Shutdown(ctx); err != nil {
		logging.Warn("Server shutdown error: %v", err)
	} else {
		startup.LogShutdownStepComplete("HTTP server stopped")
	}

	// Encoder processes already launched are not terminated; they keep
	// writing under the web root until they exit on their own.
	startup.LogShutdownComplete()
}
