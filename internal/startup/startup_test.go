package startup

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gorilla/mux"
)

func TestGetBuildInfo(t *testing.T) {
	info := GetBuildInfo()

	// Check that all fields are populated
	if info.Version == "" {
		t.Error("Expected Version to be set")
	}
	if info.GoVersion == "" {
		t.Error("Expected GoVersion to be set")
	}
	if info.OS == "" {
		t.Error("Expected OS to be set")
	}
	if info.Arch == "" {
		t.Error("Expected Arch to be set")
	}

	// Verify that runtime values are correct
	if info.GoVersion != GoVersion {
		t.Errorf("Expected GoVersion=%s, got %s", GoVersion, info.GoVersion)
	}
}

func TestGetEnv(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		defaultValue string
		envValue     string
		want         string
		setEnv       bool
	}{
		{
			name:         "Returns default when env var not set",
			key:          "TEST_UNSET_VAR",
			defaultValue: "default",
			want:         "default",
			setEnv:       false,
		},
		{
			name:         "Returns env value when set",
			key:          "TEST_SET_VAR",
			defaultValue: "default",
			envValue:     "custom",
			want:         "custom",
			setEnv:       true,
		},
		{
			name:         "Returns default when env var is empty",
			key:          "TEST_EMPTY_VAR",
			defaultValue: "default",
			envValue:     "",
			want:         "default",
			setEnv:       true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setEnv {
				t.Setenv(tt.key, tt.envValue)
			} else {
				// Ensure the variable is not set
				os.Unsetenv(tt.key)
				t.Cleanup(func() {
					os.Unsetenv(tt.key)
				})
			}

			got := getEnv(tt.key, tt.defaultValue)
			if got != tt.want {
				t.Errorf("getEnv(%q, %q) = %q, want %q", tt.key, tt.defaultValue, got, tt.want)
			}
		})
	}
}

// clearConfigEnv blanks every variable LoadConfig reads so tests see
// defaults regardless of the hosting environment.
func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"WEB_ROOT", "PORT", "METRICS_PORT", "METRICS_ENABLED",
		"FFMPEG_PATH", "HLS_SEGMENT_SECONDS", "MAX_CONCURRENT_TRANSCODES",
		"STATS_INTERVAL", "LOG_STATIC_FILES", "LOG_HEALTH_CHECKS",
		"IMAGE_THUMBNAILS", "CORS_ALLOWED_ORIGINS", "TRANSCODE_WORKERS",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("WEB_ROOT", filepath.Join(t.TempDir(), "wwwroot"))

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.MetricsPort != "9090" {
		t.Errorf("MetricsPort = %q, want 9090", cfg.MetricsPort)
	}
	if !cfg.MetricsEnabled {
		t.Error("MetricsEnabled = false, want true")
	}
	if cfg.FFmpegPath != "ffmpeg" {
		t.Errorf("FFmpegPath = %q, want ffmpeg", cfg.FFmpegPath)
	}
	if cfg.SegmentSeconds != 6 {
		t.Errorf("SegmentSeconds = %d, want 6", cfg.SegmentSeconds)
	}
	if cfg.MaxConcurrent != 0 {
		t.Errorf("MaxConcurrent = %d, want 0", cfg.MaxConcurrent)
	}
	if cfg.StatsInterval != time.Minute {
		t.Errorf("StatsInterval = %v, want 1m", cfg.StatsInterval)
	}
	if cfg.LogStaticFiles {
		t.Error("LogStaticFiles = true, want false")
	}
	if !cfg.LogHealthChecks {
		t.Error("LogHealthChecks = false, want true")
	}
	if !cfg.ImageThumbnails {
		t.Error("ImageThumbnails = false, want true")
	}
	if cfg.CORSAllowedOrigins != "*" {
		t.Errorf("CORSAllowedOrigins = %q, want *", cfg.CORSAllowedOrigins)
	}
	if !filepath.IsAbs(cfg.WebRoot) {
		t.Errorf("WebRoot = %q, want absolute path", cfg.WebRoot)
	}
	if info, err := os.Stat(cfg.WebRoot); err != nil || !info.IsDir() {
		t.Errorf("WebRoot was not created: %v", err)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("WEB_ROOT", t.TempDir())
	t.Setenv("PORT", "9999")
	t.Setenv("METRICS_ENABLED", "false")
	t.Setenv("FFMPEG_PATH", "/opt/ffmpeg/bin/ffmpeg")
	t.Setenv("HLS_SEGMENT_SECONDS", "4")
	t.Setenv("MAX_CONCURRENT_TRANSCODES", "3")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.example.com")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Port != "9999" {
		t.Errorf("Port = %q, want 9999", cfg.Port)
	}
	if cfg.MetricsEnabled {
		t.Error("MetricsEnabled = true, want false")
	}
	if cfg.FFmpegPath != "/opt/ffmpeg/bin/ffmpeg" {
		t.Errorf("FFmpegPath = %q", cfg.FFmpegPath)
	}
	if cfg.SegmentSeconds != 4 {
		t.Errorf("SegmentSeconds = %d, want 4", cfg.SegmentSeconds)
	}
	if cfg.MaxConcurrent != 3 {
		t.Errorf("MaxConcurrent = %d, want 3", cfg.MaxConcurrent)
	}
	if cfg.CORSAllowedOrigins != "https://app.example.com" {
		t.Errorf("CORSAllowedOrigins = %q", cfg.CORSAllowedOrigins)
	}
}

func TestLoadConfigRejectsUnusableWebRoot(t *testing.T) {
	clearConfigEnv(t)

	// A plain file where the web root should be is a hard error.
	occupied := filepath.Join(t.TempDir(), "occupied")
	if err := os.WriteFile(occupied, []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	t.Setenv("WEB_ROOT", occupied)

	if _, err := LoadConfig(); err == nil {
		t.Fatal("LoadConfig() expected error for non-directory web root")
	}
}

func TestLoadConfigInvalidSegmentSeconds(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("WEB_ROOT", t.TempDir())
	t.Setenv("HLS_SEGMENT_SECONDS", "0")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.SegmentSeconds != 6 {
		t.Errorf("SegmentSeconds = %d, want fallback 6", cfg.SegmentSeconds)
	}
}

func TestRouteInfo(t *testing.T) {
	route := RouteInfo{
		Method: "POST",
		Path:   "/video/fetch",
		Name:   "FetchVideo",
	}

	if route.Method != "POST" {
		t.Errorf("Expected Method=POST, got %s", route.Method)
	}
	if route.Path != "/video/fetch" {
		t.Errorf("Expected Path=/video/fetch, got %s", route.Path)
	}
	if route.Name != "FetchVideo" {
		t.Errorf("Expected Name=FetchVideo, got %s", route.Name)
	}
}

func TestGetRoutes(t *testing.T) {
	router := mux.NewRouter()
	noop := func(http.ResponseWriter, *http.Request) {}
	router.HandleFunc("/download", noop).Methods("POST")
	router.HandleFunc("/health", noop).Methods("GET", "HEAD")
	router.PathPrefix("/").Handler(http.NotFoundHandler())

	routes, err := GetRoutes(router)
	if err != nil {
		t.Fatalf("GetRoutes() error = %v", err)
	}

	want := map[string]bool{
		"POST /download": false,
		"GET /health":    false,
		"HEAD /health":   false,
		"* /":            false,
	}
	for _, route := range routes {
		key := route.Method + " " + route.Path
		if _, ok := want[key]; ok {
			want[key] = true
		}
	}
	for key, seen := range want {
		if !seen {
			t.Errorf("route %q not reported", key)
		}
	}
}

func TestGetRouteGroup(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/video/download", "video"},
		{"/image/upload", "image"},
		{"/health", "health"},
		{"/", ""},
	}

	for _, tt := range tests {
		if got := getRouteGroup(tt.path); got != tt.want {
			t.Errorf("getRouteGroup(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
