package transcode

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

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

type recordingObserver struct {
	mu        sync.Mutex
	started   []string
	completed []string
	successes []bool
}

func (r *recordingObserver) JobStarted(mode string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.started = append(r.started, mode)
}

func (r *recordingObserver) JobCompleted(mode string, success bool, _ float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.completed = append(r.completed, mode)
	r.successes = append(r.successes, success)
}

func (r *recordingObserver) GateWait(int) {}

// ===== Validation Tests =====

func TestOperationsRejectBlankURL(t *testing.T) {
	t.Parallel()

	svc := New(Config{Root: t.TempDir()})
	ops := map[string]func(Request) (Result, error){
		"download": svc.Download,
		"convert":  svc.ConvertToStream,
		"fetch":    svc.FetchAsStream,
	}

	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			for _, url := range []string{"", "   "} {
				result, err := op(Request{SourceURL: url})
				if err == nil {
					t.Fatalf("%s(%q) expected error, got nil", name, url)
				}
				if !IsValidation(err) {
					t.Errorf("%s(%q) error kind = %v, want validation", name, url, KindOf(err))
				}
				if result.Success {
					t.Errorf("%s(%q) returned success result", name, url)
				}
			}
		})
	}
}

// ===== Success Path Tests =====

func TestDownloadSuccess(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	svc := New(Config{FFmpegPath: writeFakeEncoder(t, ""), Root: root})

	result, err := svc.Download(Request{
		SourceURL: "https://example.com/v.mp4",
		Filename:  "clip.avi",
	})
	if err != nil {
		t.Fatalf("Download() error = %v", err)
	}
	if !result.Success {
		t.Fatalf("Download() failed: %s", result.Message)
	}
	data, ok := result.Data.(map[string]string)
	if !ok {
		t.Fatalf("Data type = %T, want map[string]string", result.Data)
	}
	if data["url"] != "/videos/clip.mp4" {
		t.Errorf("url = %q, want %q", data["url"], "/videos/clip.mp4")
	}
	if _, err := os.Stat(filepath.Join(root, "clip.mp4")); err != nil {
		t.Errorf("output file missing: %v", err)
	}
}

func TestConvertToStreamSuccess(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	svc := New(Config{FFmpegPath: writeFakeEncoder(t, ""), Root: root})

	result, err := svc.ConvertToStream(Request{
		SourceURL:    "https://example.com/v.mp4",
		Filename:     "movie",
		OutputDir:    "films",
		PublicScheme: "https",
		PublicHost:   "media.example.com",
	})
	if err != nil {
		t.Fatalf("ConvertToStream() error = %v", err)
	}
	if !result.Success {
		t.Fatalf("ConvertToStream() failed: %s", result.Message)
	}
	data := result.Data.(map[string]string)
	if data["path"] != "https://media.example.com/films/movie.m3u8" {
		t.Errorf("path = %q, want full playlist URL", data["path"])
	}
	if data["folder"] != filepath.Join(root, "films") {
		t.Errorf("folder = %q, want %q", data["folder"], filepath.Join(root, "films"))
	}
	if _, err := os.Stat(filepath.Join(root, "films", "movie.m3u8")); err != nil {
		t.Errorf("playlist missing: %v", err)
	}
}

func TestFetchAsStreamSuccess(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	svc := New(Config{FFmpegPath: writeFakeEncoder(t, ""), Root: root})

	result, err := svc.FetchAsStream(Request{
		SourceURL:    "https://example.com/stream.m3u8",
		Filename:     "clip",
		PublicScheme: "http",
		PublicHost:   "localhost:8080",
	})
	if err != nil {
		t.Fatalf("FetchAsStream() error = %v", err)
	}
	if !result.Success {
		t.Fatalf("FetchAsStream() failed: %s", result.Message)
	}
	data := result.Data.(map[string]string)
	if data["playlist"] != "clip.m3u8" {
		t.Errorf("playlist = %q, want %q", data["playlist"], "clip.m3u8")
	}
	if data["folder"] != root {
		t.Errorf("folder = %q, want root %q", data["folder"], root)
	}
	if data["url"] != "http://localhost:8080/clip.m3u8" {
		t.Errorf("url = %q, want %q", data["url"], "http://localhost:8080/clip.m3u8")
	}
}

// ===== Failure Path Tests =====

func TestEncoderFailureBecomesResult(t *testing.T) {
	t.Parallel()

	svc := New(Config{
		FFmpegPath: writeFakeEncoder(t, "echo moov atom not found >&2; exit 3"),
		Root:       t.TempDir(),
	})

	result, err := svc.ConvertToStream(Request{SourceURL: "https://example.com/broken"})
	if err != nil {
		t.Fatalf("ConvertToStream() error = %v, want failure inside Result", err)
	}
	if result.Success {
		t.Fatal("ConvertToStream() reported success for failing encoder")
	}
	if !strings.HasPrefix(result.Message, "Conversion failed: ") {
		t.Errorf("Message = %q, want conversion prefix", result.Message)
	}
	if !strings.Contains(result.Message, "exit code 3") {
		t.Errorf("Message = %q, want exit code", result.Message)
	}
	if strings.Contains(result.Message, "moov atom") {
		t.Errorf("Message = %q leaked encoder stderr", result.Message)
	}
}

func TestLaunchFailureBecomesResult(t *testing.T) {
	t.Parallel()

	svc := New(Config{
		FFmpegPath: filepath.Join(t.TempDir(), "missing-encoder"),
		Root:       t.TempDir(),
	})

	result, err := svc.Download(Request{SourceURL: "https://example.com/v"})
	if err != nil {
		t.Fatalf("Download() error = %v, want failure inside Result", err)
	}
	if result.Success {
		t.Fatal("Download() reported success for missing encoder")
	}
	if !strings.HasPrefix(result.Message, "Download failed: ") {
		t.Errorf("Message = %q, want download prefix", result.Message)
	}
}

func TestFailedRunLeavesPartialOutput(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	svc := New(Config{
		FFmpegPath: writeFakeEncoder(t, "for arg in \"$@\"; do out=\"$arg\"; done\n: > \"$out\"\nexit 1"),
		Root:       root,
	})

	result, err := svc.FetchAsStream(Request{SourceURL: "u", Filename: "partial"})
	if err != nil || result.Success {
		t.Fatalf("FetchAsStream() = (%v, %v), want in-result failure", result, err)
	}
	if _, err := os.Stat(filepath.Join(root, "partial.m3u8")); err != nil {
		t.Errorf("partial output should be left in place: %v", err)
	}
}

// ===== Concurrency and Observer Tests =====

func TestConcurrentRunsWithGate(t *testing.T) {
	t.Parallel()

	svc := New(Config{
		FFmpegPath:    writeFakeEncoder(t, ""),
		Root:          t.TempDir(),
		MaxConcurrent: 1,
	})

	var wg sync.WaitGroup
	results := make([]Result, 4)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = svc.Download(Request{SourceURL: "u", Filename: ""})
		}(i)
	}
	wg.Wait()

	for i, result := range results {
		if !result.Success {
			t.Errorf("run %d failed: %s", i, result.Message)
		}
	}
	if n := svc.Running(); n != 0 {
		t.Errorf("Running() = %d after all jobs finished, want 0", n)
	}
}

func TestObserverSeesLifecycle(t *testing.T) {
	t.Parallel()

	obs := &recordingObserver{}
	svc := New(Config{
		FFmpegPath: writeFakeEncoder(t, ""),
		Root:       t.TempDir(),
		Observer:   obs,
	})

	if _, err := svc.FetchAsStream(Request{SourceURL: "u", Filename: "x"}); err != nil {
		t.Fatalf("FetchAsStream() error = %v", err)
	}

	obs.mu.Lock()
	defer obs.mu.Unlock()
	if len(obs.started) != 1 || obs.started[0] != string(ModeFetch) {
		t.Errorf("started = %v, want one fetch", obs.started)
	}
	if len(obs.completed) != 1 || !obs.successes[0] {
		t.Errorf("completed = %v successes = %v, want one success", obs.completed, obs.successes)
	}
}
