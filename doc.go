// Package main provides the entry point for the FFmpeg API service.
//
// FFmpeg API is a small self-hosted web service that turns remote media
// URLs into locally hosted files: a direct mp4 download, a re-encoded
// HLS stream, or a stream-copied HLS repackage. Finished outputs land
// under a single web root and are immediately served back as static
// files by the same process.
//
// # Application Lifecycle
//
// The application follows a structured initialization sequence:
//
//  1. Memory Limits: Sets GOMEMLIMIT from the container memory limit,
//     reserving headroom for ffmpeg child processes
//  2. Configuration Loading: Reads environment variables and validates
//     the web root directory
//  3. MIME Registration: Adds playlist (.m3u8) and segment (.ts) types
//     to the process-wide MIME table
//  4. Encoder Probe: Locates the ffmpeg binary and logs its version
//     (missing binaries are reported per job, not fatal)
//  5. Metrics Initialization: Registers Prometheus collectors and
//     pre-populates label combinations
//  6. Service Construction: Builds the transcode service, stats
//     collector and HTTP handlers
//  7. HTTP Server Setup: Configures routes, middleware, and starts the
//     application and metrics servers
//  8. Graceful Shutdown: Handles SIGINT/SIGTERM and stops all
//     components cleanly
//
// # HTTP Server
//
// The application runs two HTTP servers:
//
//  1. Main Server (default port 8080):
//     - Transcode operations (/download, /upload, /fetch, /video/...)
//     - Image uploads (/image/upload)
//     - Static serving of everything under the web root
//     - Health, readiness, liveness and version endpoints
//
//  2. Metrics Server (default port 9090, optional):
//     - Prometheus metrics endpoint (/metrics)
//
// The main server deliberately has no write timeout: a transcode
// response is only sent once the encoder process exits, which takes as
// long as the media requires.
//
// # Environment Variables
//
// Configuration is primarily through environment variables:
//
//   - WEB_ROOT: Output and static serving directory (default: wwwroot)
//   - PORT: Main HTTP server port (default: 8080)
//   - METRICS_PORT: Metrics server port (default: 9090)
//   - METRICS_ENABLED: Enable metrics server (default: true)
//   - FFMPEG_PATH: Encoder executable name or path (default: ffmpeg)
//   - HLS_SEGMENT_SECONDS: Segment duration for stream modes (default: 6)
//   - MAX_CONCURRENT_TRANSCODES: Encoder admission cap, 0 for
//     unlimited, "auto" for one per CPU (default: 0)
//   - TRANSCODE_WORKERS: Manual worker override consulted by "auto"
//   - STATS_INTERVAL: Output stats collection interval (default: 1m)
//   - LOG_STATIC_FILES: Access-log static file requests (default: false)
//   - LOG_HEALTH_CHECKS: Access-log health probes (default: true)
//   - IMAGE_THUMBNAILS: Generate thumbnails for image uploads
//     (default: true)
//   - CORS_ALLOWED_ORIGINS: CORS allow-list (default: *)
//   - LOG_LEVEL: Logging level (debug/info/warn/error)
//   - MEMORY_LIMIT: Container memory limit in bytes, used to derive
//     GOMEMLIMIT when GOMEMLIMIT itself is unset
//   - MEMORY_RATIO: Share of MEMORY_LIMIT given to the Go heap
//     (default: 0.85)
//
// # Graceful Shutdown
//
// The application handles SIGINT and SIGTERM signals gracefully:
//
//  1. Stop the output stats collector
//  2. Shutdown the metrics server (if running)
//  3. Shutdown the main HTTP server (30s timeout)
//
// Encoder processes that are already running are left alone; they
// finish writing their outputs independently of the HTTP lifecycle.
//
// # Related Packages
//
//   - [github.com/rafaykhanzada/ffmpeg-minimal-api/internal/transcode]: path resolution, command construction and process supervision
//   - [github.com/rafaykhanzada/ffmpeg-minimal-api/internal/handlers]: HTTP request handlers
//   - [github.com/rafaykhanzada/ffmpeg-minimal-api/internal/middleware]: HTTP middleware (logging, metrics, gzip, CORS)
//   - [github.com/rafaykhanzada/ffmpeg-minimal-api/internal/startup]: configuration and initialization
package main
