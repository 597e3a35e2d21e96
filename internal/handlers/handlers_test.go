package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/rafaykhanzada/ffmpeg-minimal-api/internal/startup"
	"github.com/rafaykhanzada/ffmpeg-minimal-api/internal/transcode"
)

// =============================================================================
// Test Fixtures
// =============================================================================

// requireShell skips tests that need a POSIX shell to fake the encoder.
func requireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

// writeFakeEncoder drops a shell script that stands in for ffmpeg. The
// default body creates the output file (the last argument) and exits 0.
func writeFakeEncoder(t *testing.T, body string) string {
	t.Helper()
	requireShell(t)

	if body == "" {
		body = "for arg in \"$@\"; do out=\"$arg\"; done\n: > \"$out\""
	}
	p := filepath.Join(t.TempDir(), "fake-ffmpeg")
	script := "#!/bin/sh\n" + body + "\n"
	if err := os.WriteFile(p, []byte(script), 0755); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return p
}

// newTestHandlers builds a Handlers instance wired to a fake encoder and
// a temporary web root, returning the root for filesystem assertions.
func newTestHandlers(t *testing.T) (*Handlers, string) {
	t.Helper()

	cfg := &startup.Config{
		WebRoot:         t.TempDir(),
		FFmpegPath:      writeFakeEncoder(t, ""),
		SegmentSeconds:  6,
		ImageThumbnails: true,
	}
	svc := transcode.New(transcode.Config{
		FFmpegPath:     cfg.FFmpegPath,
		SegmentSeconds: cfg.SegmentSeconds,
		Root:           cfg.WebRoot,
	})
	return New(svc, cfg), cfg.WebRoot
}

// envelope mirrors the wire shape of successful operation responses.
type envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    map[string]string `json:"data"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var e envelope
	if err := json.NewDecoder(rec.Body).Decode(&e); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	return e
}

// =============================================================================
// Handlers Structure Tests
// =============================================================================

func TestNew(t *testing.T) {
	h, root := newTestHandlers(t)

	if h.svc == nil {
		t.Error("Expected service to be set")
	}
	if h.webRoot != root {
		t.Errorf("Expected webRoot=%s, got %s", root, h.webRoot)
	}
	if h.ffmpegPath == "" {
		t.Error("Expected ffmpegPath to be set")
	}
	if !h.imageThumbnails {
		t.Error("Expected imageThumbnails=true")
	}
	if h.started.IsZero() {
		t.Error("Expected started timestamp to be set")
	}
}

// =============================================================================
// Home Tests
// =============================================================================

func TestHome(t *testing.T) {
	h, _ := newTestHandlers(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.Home(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected Content-Type application/json, got %s", ct)
	}

	var response HomeResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if response.Service != "ffmpeg-minimal-api" {
		t.Errorf("Expected service=ffmpeg-minimal-api, got %s", response.Service)
	}
	if len(response.Endpoints) == 0 {
		t.Fatal("Expected endpoint listing to be populated")
	}

	found := false
	for _, e := range response.Endpoints {
		if e.Method == http.MethodPost && e.Path == "/download" {
			found = true
		}
	}
	if !found {
		t.Error("Expected POST /download in endpoint listing")
	}
}
