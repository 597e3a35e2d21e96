package metrics

// InitializeMetrics pre-populates all expected label combinations so that
// every metric is exported from the first Prometheus scrape.
// Call this once at startup after metric registration.
func InitializeMetrics() {
	// --- Transcode jobs (per mode × outcome) ---
	modes := []string{"download", "convert", "fetch"}
	statuses := []string{"success", "error"}

	for _, mode := range modes {
		for _, status := range statuses {
			TranscodeJobsTotal.WithLabelValues(mode, status)
		}
		TranscodeJobDuration.WithLabelValues(mode)
	}

	// --- Image uploads and their thumbnails ---
	for _, status := range statuses {
		ImageUploadsTotal.WithLabelValues(status)
		ThumbnailGenerationsTotal.WithLabelValues(status)
	}

	// --- Serving root contents by type ---
	for _, t := range []string{"video", "playlist", "segment", "image"} {
		OutputFilesTotal.WithLabelValues(t)
	}
}
