package handlers

import (
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"

	"github.com/rafaykhanzada/ffmpeg-minimal-api/internal/logging"
	"github.com/rafaykhanzada/ffmpeg-minimal-api/internal/startup"
)

const (
	statusHealthy  = "healthy"
	statusDegraded = "degraded"
)

// HealthResponse contains the health check response
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`

	// Transcoding state
	EncoderPath      string `json:"encoderPath"`
	EncoderAvailable bool   `json:"encoderAvailable"`
	WebRoot          string `json:"webRoot"`
	WebRootWritable  bool   `json:"webRootWritable"`
	JobsRunning      int    `json:"jobsRunning"`

	// System info
	GoVersion    string `json:"goVersion"`
	NumCPU       int    `json:"numCpu"`
	NumGoroutine int    `json:"numGoroutine"`
}

// HealthCheck reports whether the service can currently accept and
// store transcode work. A missing encoder or unwritable web root marks
// the service degraded; the endpoint itself still answers 200, leaving
// traffic gating to ReadinessCheck.
func (h *Handlers) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	encoderAvailable := h.encoderAvailable()
	writable := h.webRootWritable()

	response := HealthResponse{
		Status:           statusHealthy,
		Version:          startup.Version,
		Uptime:           time.Since(h.started).Round(time.Second).String(),
		EncoderPath:      h.ffmpegPath,
		EncoderAvailable: encoderAvailable,
		WebRoot:          h.webRoot,
		WebRootWritable:  writable,
		JobsRunning:      h.svc.Running(),
		GoVersion:        runtime.Version(),
		NumCPU:           runtime.NumCPU(),
		NumGoroutine:     runtime.NumGoroutine(),
	}

	if !encoderAvailable || !writable {
		response.Status = statusDegraded
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, response)
}

// LivenessCheck is a simple liveness probe (always returns 200 if server is running)
func (h *Handlers) LivenessCheck(w http.ResponseWriter, r *http.Request) {
	// For HEAD requests, only send headers (no body)
	if r.Method == http.MethodHead {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		return
	}
	writeJSONStatus(w, "alive")
}

// ReadinessCheck returns 200 only when the service can store output
func (h *Handlers) ReadinessCheck(w http.ResponseWriter, _ *http.Request) {
	if !h.webRootWritable() {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		writeJSON(w, map[string]string{
			"status": "not_ready",
		})
		return
	}
	writeJSONStatus(w, "ready")
}

// encoderAvailable reports whether the configured encoder binary can be
// found right now.
func (h *Handlers) encoderAvailable() bool {
	_, err := exec.LookPath(h.ffmpegPath)
	return err == nil
}

// webRootWritable probes the serving root with a throwaway file.
func (h *Handlers) webRootWritable() bool {
	probe := filepath.Join(h.webRoot, ".health-probe")
	if err := os.WriteFile(probe, []byte("ok"), 0644); err != nil {
		return false
	}
	if err := os.Remove(probe); err != nil {
		logging.Warn("failed to remove health probe %s: %v", probe, err)
	}
	return true
}
