// Package metrics provides Prometheus instrumentation for the transcode
// service.
//
// All metrics are prefixed with "ffmpeg_api_" to avoid naming collisions
// with other applications, and register themselves with the default
// Prometheus registry through promauto.
//
// # Metric Categories
//
// ## HTTP Metrics
//
// Track request performance and error rates:
//   - HTTPRequestsTotal: Counter of total requests by method, path, and status
//   - HTTPRequestDuration: Histogram of request duration by method and path
//   - HTTPRequestsInFlight: Gauge of currently processing requests
//
// ## Transcode Job Metrics
//
// Track encoder runs across the three operation modes:
//   - TranscodeJobsTotal: Counter of jobs by mode and outcome
//   - TranscodeJobDuration: Histogram of job duration by mode
//   - TranscodeJobsInProgress: Gauge of encoder runs currently active
//   - TranscodeJobsWaiting: Gauge of jobs queued for an admission slot
//
// ## Image Upload Metrics
//
// Track the image sidecar endpoint:
//   - ImageUploadsTotal: Counter of uploads by outcome
//   - ThumbnailGenerationsTotal: Counter of upload thumbnail generations
//   - ThumbnailGenerationDuration: Histogram of thumbnail generation time
//
// ## Serving Root Metrics
//
// Report what the service has accumulated on disk, refreshed by the
// periodic [Collector]:
//   - OutputFilesTotal: Gauge of files under the serving root by type
//   - OutputBytesTotal: Gauge of total bytes under the serving root
//
// ## Application Info
//
// Expose build information:
//   - AppInfo: Gauge with version, commit, and Go version labels
//
// # Usage
//
// To expose the metrics, mount promhttp.Handler() on the metrics
// endpoint:
//
//	import "github.com/prometheus/client_golang/prometheus/promhttp"
//
//	mux.Handle("/metrics", promhttp.Handler())
//
// To record metrics from other packages, use the exported variables:
//
//	metrics.HTTPRequestsTotal.WithLabelValues("POST", "/fetch", "200").Inc()
//	metrics.HTTPRequestDuration.WithLabelValues("POST", "/fetch").Observe(0.123)
//
// The transcode service itself reports through the observer returned by
// [NewTranscodeObserver], which keeps the job counters in step with what
// the encoder actually did.
//
// # Prometheus Queries
//
// Request rate by endpoint:
//
//	sum(rate(ffmpeg_api_http_requests_total[5m])) by (path)
//
// P95 job duration for re-encodes:
//
//	histogram_quantile(0.95, sum(rate(ffmpeg_api_transcode_job_duration_seconds_bucket{mode="convert"}[15m])) by (le))
//
// Encoder failure rate:
//
//	sum(rate(ffmpeg_api_transcode_jobs_total{status="error"}[15m])) /
//	sum(rate(ffmpeg_api_transcode_jobs_total[15m]))
//
// Disk growth of the serving root:
//
//	delta(ffmpeg_api_output_bytes[1h])
package metrics
