// Package startup handles application initialization, configuration loading,
// and startup/shutdown logging.
//
// This package centralizes all application configuration and provides consistent
// logging throughout the application lifecycle.
//
// # Configuration
//
// All configuration is loaded from environment variables via [LoadConfig].
// The following environment variables are supported:
//
//   - WEB_ROOT: Encoder output and static serving root (default: wwwroot)
//   - PORT: HTTP server port (default: 8080)
//   - METRICS_PORT: Prometheus metrics server port (default: 9090)
//   - METRICS_ENABLED: Enable or disable metrics server (default: true)
//   - FFMPEG_PATH: Encoder executable name or path (default: ffmpeg)
//   - HLS_SEGMENT_SECONDS: HLS segment duration for stream modes (default: 6)
//   - MAX_CONCURRENT_TRANSCODES: Cap on simultaneous encoder runs;
//     0 = unlimited, "auto" sizes the cap from the visible CPUs (default: 0)
//   - STATS_INTERVAL: Serving-root metrics refresh interval as Go duration (default: 1m)
//   - LOG_LEVEL: Logging level - debug, info, warn, error (default: info)
//   - LOG_STATIC_FILES: Log static file requests (default: false)
//   - LOG_HEALTH_CHECKS: Log health check requests (default: true)
//   - IMAGE_THUMBNAILS: Generate thumbnails for uploaded images (default: true)
//   - CORS_ALLOWED_ORIGINS: Access-Control-Allow-Origin value (default: *)
//
// # Directory Setup
//
// The web root is required: it is created if missing and must be writable,
// since every encoder run and image upload lands there. Startup fails
// otherwise.
//
// # Build Information
//
// Build-time variables are injected via ldflags and exposed via [GetBuildInfo]:
//   - Version: Application version
//   - Commit: Git commit hash
//   - BuildTime: Build timestamp
//   - GoVersion: Go compiler version
//
// # Lifecycle Logging
//
// The package provides structured logging functions for consistent output:
//   - [LogEncoderInit]: FFmpeg availability probe
//   - [LogHTTPRoutes]: Registered HTTP routes (debug level)
//   - [LogServerStarted]: Server endpoints and startup duration
//   - [LogShutdownInitiated]: Graceful shutdown start
//   - [LogShutdownComplete]: Shutdown completion
//
// # Example Usage
//
//	config, err := startup.LoadConfig()
//	if err != nil {
//	    startup.LogFatal("Configuration error: %v", err)
//	}
//
//	startup.LogEncoderInit(config.FFmpegPath)
//
//	// Start server...
//	startup.LogServerStarted(startup.ServerConfig{
//	    Port:            config.Port,
//	    MetricsPort:     config.MetricsPort,
//	    MetricsEnabled:  config.MetricsEnabled,
//	    StartupDuration: time.Since(startTime),
//	})
//
//	// On shutdown...
//	startup.LogShutdownInitiated("SIGTERM")
//	// ... cleanup ...
//	startup.LogShutdownComplete()
package startup
