package transcode

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rafaykhanzada/ffmpeg-minimal-api/internal/logging"
)

// Mode identifies one of the three encoder invocation shapes.
type Mode string

const (
	// ModeDownload remuxes the source into a single mp4 file.
	ModeDownload Mode = "download"
	// ModeConvert re-encodes the source into an HLS playlist.
	ModeConvert Mode = "convert"
	// ModeFetch repackages the source into an HLS playlist without
	// re-encoding.
	ModeFetch Mode = "fetch"
)

// Request carries the caller-supplied parameters for one operation.
// PublicScheme and PublicHost are used to build absolute URLs in the
// stream-mode responses and are taken from the incoming HTTP request.
type Request struct {
	SourceURL    string
	Filename     string
	OutputDir    string
	PublicScheme string
	PublicHost   string
}

// Result is the uniform envelope every operation returns. Success jobs
// carry mode-specific Data and no Message; failed jobs carry a Message
// and no Data.
type Result struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// Config holds the fixed settings for a Service.
type Config struct {
	// FFmpegPath is the encoder executable name or path.
	FFmpegPath string
	// SegmentSeconds is the HLS segment duration for the stream modes.
	SegmentSeconds int
	// Root is the directory all outputs are written under. It is also
	// the static serving root, which is what makes results reachable
	// over HTTP the moment the encoder finishes.
	Root string
	// MaxConcurrent caps simultaneous encoder runs. Zero means no cap.
	MaxConcurrent int
	// Observer receives job lifecycle events; nil disables reporting.
	Observer Observer
}

// Service runs encoder jobs against a fixed configuration. All methods
// are safe for concurrent use.
type Service struct {
	ffmpegPath     string
	segmentSeconds int
	root           string
	observer       Observer
	gate           chan struct{}
	running        atomic.Int64
}

// New builds a Service from cfg, applying defaults for unset fields.
func New(cfg Config) *Service {
	s := &Service{
		ffmpegPath:     cfg.FFmpegPath,
		segmentSeconds: cfg.SegmentSeconds,
		root:           cfg.Root,
		observer:       cfg.Observer,
	}
	if s.ffmpegPath == "" {
		s.ffmpegPath = "ffmpeg"
	}
	if s.segmentSeconds <= 0 {
		s.segmentSeconds = 6
	}
	if s.root == "" {
		s.root = "wwwroot"
	}
	if s.observer == nil {
		s.observer = nopObserver{}
	}
	if cfg.MaxConcurrent > 0 {
		s.gate = make(chan struct{}, cfg.MaxConcurrent)
	}
	return s
}

// Root returns the output and serving root directory.
func (s *Service) Root() string {
	return s.root
}

// Running reports how many encoder processes are executing right now.
func (s *Service) Running() int {
	return int(s.running.Load())
}

// Download remuxes the source URL into an mp4 in the serving root.
//
// The returned error is non-nil only when the request fails validation
// before any work begins; every later failure is reported inside the
// Result instead.
func (s *Service) Download(req Request) (Result, error) {
	if err := validate(req); err != nil {
		return Result{}, err
	}
	out, err := s.resolveOutput(ModeDownload, req.Filename, "")
	if err != nil {
		return s.failure(ModeDownload, err), nil
	}
	if err := s.execute(ModeDownload, req.SourceURL, out); err != nil {
		return s.failure(ModeDownload, err), nil
	}
	logging.Info("Downloaded %s to %s", req.SourceURL, out.outputPath)
	return Result{
		Success: true,
		Data:    map[string]string{"url": "/videos/" + out.fileName},
	}, nil
}

// ConvertToStream re-encodes the source URL into an HLS playlist under
// the requested directory. Error semantics match Download.
func (s *Service) ConvertToStream(req Request) (Result, error) {
	if err := validate(req); err != nil {
		return Result{}, err
	}
	out, err := s.resolveOutput(ModeConvert, req.Filename, req.OutputDir)
	if err != nil {
		return s.failure(ModeConvert, err), nil
	}
	if err := s.execute(ModeConvert, req.SourceURL, out); err != nil {
		return s.failure(ModeConvert, err), nil
	}
	logging.Info("Converted %s to %s", req.SourceURL, out.outputPath)
	return Result{
		Success: true,
		Data: map[string]string{
			"path":   publicURL(req, out),
			"folder": out.dir,
		},
	}, nil
}

// FetchAsStream repackages the already-encoded source URL into an HLS
// playlist under the requested directory. Error semantics match Download.
func (s *Service) FetchAsStream(req Request) (Result, error) {
	if err := validate(req); err != nil {
		return Result{}, err
	}
	out, err := s.resolveOutput(ModeFetch, req.Filename, req.OutputDir)
	if err != nil {
		return s.failure(ModeFetch, err), nil
	}
	if err := s.execute(ModeFetch, req.SourceURL, out); err != nil {
		return s.failure(ModeFetch, err), nil
	}
	logging.Info("Fetched %s to %s", req.SourceURL, out.outputPath)
	return Result{
		Success: true,
		Data: map[string]string{
			"playlist": out.fileName,
			"folder":   out.dir,
			"url":      publicURL(req, out),
		},
	}, nil
}

// execute runs the encoder for one resolved operation, holding an
// admission slot for the duration when a cap is configured. Partial
// outputs from failed runs are left on disk; a retry with the same
// filename overwrites them.
func (s *Service) execute(mode Mode, sourceURL string, out resolvedOutput) error {
	if s.gate != nil {
		s.observer.GateWait(1)
		s.gate <- struct{}{}
		s.observer.GateWait(-1)
		defer func() { <-s.gate }()
	}

	inv := s.buildInvocation(mode, sourceURL, out)
	s.observer.JobStarted(string(mode))
	s.running.Add(1)
	start := time.Now()

	outcome, err := runInvocation(inv)
	s.running.Add(-1)

	success := err == nil && outcome.ExitCode == 0
	s.observer.JobCompleted(string(mode), success, time.Since(start).Seconds())

	if err != nil {
		return err
	}
	if outcome.ExitCode != 0 {
		logging.Error("ffmpeg exited with code %d for %s: %s", outcome.ExitCode, sourceURL, strings.TrimSpace(outcome.Stderr))
		return errEncoder(outcome.ExitCode)
	}
	if outcome.Stderr != "" {
		logging.Debug("ffmpeg stderr for %s: %s", sourceURL, strings.TrimSpace(outcome.Stderr))
	}
	return nil
}

// validate rejects requests that cannot identify a source.
func validate(req Request) error {
	if strings.TrimSpace(req.SourceURL) == "" {
		return errValidation("url is required")
	}
	return nil
}

// failure logs err and wraps it into the failure envelope for mode.
func (s *Service) failure(mode Mode, err error) Result {
	msg := modePrefix(mode) + err.Error()
	logging.Error("%s", msg)
	return Result{Success: false, Message: msg}
}

func modePrefix(mode Mode) string {
	switch mode {
	case ModeDownload:
		return "Download failed: "
	case ModeConvert:
		return "Conversion failed: "
	case ModeFetch:
		return "Fetch failed: "
	default:
		return "Operation failed: "
	}
}

// publicURL builds the absolute address of a finished output from the
// scheme and host the request arrived on.
func publicURL(req Request, out resolvedOutput) string {
	return fmt.Sprintf("%s://%s%s", req.PublicScheme, req.PublicHost, out.publicPath)
}
