package metrics

import "github.com/rafaykhanzada/ffmpeg-minimal-api/internal/transcode"

// transcodeObserver implements transcode.Observer using the Prometheus
// metrics declared in this package.
type transcodeObserver struct{}

// NewTranscodeObserver creates an observer that records job lifecycle
// events into the Prometheus counters and histograms declared in
// metrics.go.
func NewTranscodeObserver() transcode.Observer {
	return &transcodeObserver{}
}

func (o *transcodeObserver) JobStarted(string) {
	TranscodeJobsInProgress.Inc()
}

func (o *transcodeObserver) JobCompleted(mode string, success bool, durationSeconds float64) {
	TranscodeJobsInProgress.Dec()

	status := "success"
	if !success {
		status = "error"
	}
	TranscodeJobsTotal.WithLabelValues(mode, status).Inc()
	TranscodeJobDuration.WithLabelValues(mode).Observe(durationSeconds)
}

func (o *transcodeObserver) GateWait(delta int) {
	TranscodeJobsWaiting.Add(float64(delta))
}
