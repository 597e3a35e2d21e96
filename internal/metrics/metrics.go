package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ffmpeg_api_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ffmpeg_api_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ffmpeg_api_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)
)

// Transcode job metrics
var (
	TranscodeJobsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ffmpeg_api_transcode_jobs_total",
			Help: "Total number of transcode jobs by mode and outcome",
		},
		[]string{"mode", "status"},
	)

	TranscodeJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ffmpeg_api_transcode_job_duration_seconds",
			Help:    "Transcode job duration in seconds",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300, 600},
		},
		[]string{"mode"},
	)

	TranscodeJobsInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ffmpeg_api_transcode_jobs_in_progress",
			Help: "Number of encoder runs currently in progress",
		},
	)

	TranscodeJobsWaiting = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ffmpeg_api_transcode_jobs_waiting",
			Help: "Number of jobs queued for an admission slot",
		},
	)
)

// Image upload metrics
var (
	ImageUploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ffmpeg_api_image_uploads_total",
			Help: "Total number of image uploads by outcome",
		},
		[]string{"status"},
	)

	ThumbnailGenerationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ffmpeg_api_thumbnail_generations_total",
			Help: "Total number of upload thumbnail generations",
		},
		[]string{"status"},
	)

	ThumbnailGenerationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ffmpeg_api_thumbnail_generation_duration_seconds",
			Help:    "Upload thumbnail generation duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)
)

// Serving root metrics, updated by the periodic collector
var (
	OutputFilesTotal = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "ffmpeg_api_output_files",
			Help: "Number of files under the serving root by type",
		},
		[]string{"type"},
	)

	OutputBytesTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ffmpeg_api_output_bytes",
			Help: "Total bytes stored under the serving root",
		},
	)
)

// Application info metric
var (
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "ffmpeg_api_app_info",
			Help: "Application information",
		},
		[]string{"version", "commit", "go_version"},
	)
)

// SetAppInfo sets the application info metric
func SetAppInfo(version, commit, goVersion string) {
	AppInfo.WithLabelValues(version, commit, goVersion).Set(1)
}
