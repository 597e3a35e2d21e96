package startup

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rafaykhanzada/ffmpeg-minimal-api/internal/logging"
	"github.com/rafaykhanzada/ffmpeg-minimal-api/internal/workers"

	"github.com/gorilla/mux"
)

// Build-time variables (injected via -ldflags)
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
	GoVersion = runtime.Version()
)

// BuildInfo contains version and build information
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"buildTime"`
	GoVersion string `json:"goVersion"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
}

// GetBuildInfo returns the current build information
func GetBuildInfo() BuildInfo {
	return BuildInfo{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
		GoVersion: GoVersion,
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}

// RouteInfo contains information about a registered route
type RouteInfo struct {
	Method string
	Path   string
	Name   string
}

// autoConcurrencyLimit caps MAX_CONCURRENT_TRANSCODES=auto; encoder runs
// are heavy enough that one per core is already generous.
const autoConcurrencyLimit = 8

// Config holds all application configuration
type Config struct {
	WebRoot        string
	Port           string
	MetricsPort    string
	MetricsEnabled bool

	FFmpegPath     string
	SegmentSeconds int
	MaxConcurrent  int

	StatsInterval      time.Duration
	LogStaticFiles     bool
	LogHealthChecks    bool
	ImageThumbnails    bool
	CORSAllowedOrigins string
}

// LoadConfig loads and validates configuration from environment variables
func LoadConfig() (*Config, error) {
	printBanner()
	logSystemInfo()

	logging.Info("------------------------------------------------------------")
	logging.Info("CONFIGURATION")
	logging.Info("------------------------------------------------------------")

	webRoot := getEnv("WEB_ROOT", "wwwroot")
	port := getEnv("PORT", "8080")
	metricsPort := getEnv("METRICS_PORT", "9090")
	metricsEnabled := getEnvBool("METRICS_ENABLED", true)
	ffmpegPath := getEnv("FFMPEG_PATH", "ffmpeg")
	segmentSeconds := getEnvInt("HLS_SEGMENT_SECONDS", 6)
	maxConcurrentStr := getEnv("MAX_CONCURRENT_TRANSCODES", "0")
	statsIntervalStr := getEnv("STATS_INTERVAL", "1m")
	logStaticFiles := getEnvBool("LOG_STATIC_FILES", false)
	logHealthChecks := getEnvBool("LOG_HEALTH_CHECKS", true)
	imageThumbnails := getEnvBool("IMAGE_THUMBNAILS", true)
	corsOrigins := getEnv("CORS_ALLOWED_ORIGINS", "*")

	logging.Info("  WEB_ROOT:                  %s", webRoot)
	logging.Info("  PORT:                      %s", port)
	logging.Info("  METRICS_PORT:              %s", metricsPort)
	logging.Info("  METRICS_ENABLED:           %v", metricsEnabled)
	logging.Info("  FFMPEG_PATH:               %s", ffmpegPath)
	logging.Info("  HLS_SEGMENT_SECONDS:       %d", segmentSeconds)
	logging.Info("  MAX_CONCURRENT_TRANSCODES: %s", maxConcurrentStr)
	logging.Info("  STATS_INTERVAL:            %s", statsIntervalStr)
	logging.Info("  LOG_STATIC_FILES:          %v", logStaticFiles)
	logging.Info("  LOG_HEALTH_CHECKS:         %v", logHealthChecks)
	logging.Info("  IMAGE_THUMBNAILS:          %v", imageThumbnails)
	logging.Info("  CORS_ALLOWED_ORIGINS:      %s", corsOrigins)
	logging.Info("  LOG_LEVEL:                 %s", logging.GetLevel())

	if segmentSeconds <= 0 {
		logging.Warn("  Invalid HLS_SEGMENT_SECONDS, using default: 6")
		segmentSeconds = 6
	}

	maxConcurrent := parseMaxConcurrent(maxConcurrentStr)

	statsInterval, err := time.ParseDuration(statsIntervalStr)
	if err != nil {
		logging.Warn("  Invalid STATS_INTERVAL, using default: 1m")
		statsInterval = time.Minute
	}

	// Resolve paths
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("DIRECTORY SETUP")
	logging.Info("------------------------------------------------------------")

	webRoot, err = filepath.Abs(webRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve web root path: %w", err)
	}
	logging.Info("  Web root (absolute): %s", webRoot)

	// The web root doubles as encoder output target and static serving
	// root, so it must exist and be writable.
	if err := ensureDirectory(webRoot, "web root"); err != nil {
		return nil, fmt.Errorf("web root error: %w", err)
	}

	logging.Debug("  Testing web root write access...")
	if err := testWriteAccess(webRoot); err != nil {
		return nil, fmt.Errorf("web root is not writable (required for encoder output): %w", err)
	}
	logging.Info("  [OK] Web root is writable")

	config := &Config{
		WebRoot:            webRoot,
		Port:               port,
		MetricsPort:        metricsPort,
		MetricsEnabled:     metricsEnabled,
		FFmpegPath:         ffmpegPath,
		SegmentSeconds:     segmentSeconds,
		MaxConcurrent:      maxConcurrent,
		StatsInterval:      statsInterval,
		LogStaticFiles:     logStaticFiles,
		LogHealthChecks:    logHealthChecks,
		ImageThumbnails:    imageThumbnails,
		CORSAllowedOrigins: corsOrigins,
	}

	// Summary
	logging.Info("")
	logging.Info("  Feature availability:")
	logging.Info("    Static serving:   ENABLED (required)")
	logging.Info("    Image thumbnails: %s", enabledString(config.ImageThumbnails))
	logging.Info("    Metrics:          %s", enabledString(config.MetricsEnabled))
	if config.MaxConcurrent > 0 {
		logging.Info("    Admission gate:   %d concurrent jobs", config.MaxConcurrent)
	} else {
		logging.Info("    Admission gate:   unlimited")
	}

	return config, nil
}

// parseMaxConcurrent interprets MAX_CONCURRENT_TRANSCODES: a number, or
// "auto" to size the cap from the visible CPUs. Zero disables the cap.
func parseMaxConcurrent(value string) int {
	if strings.EqualFold(value, "auto") {
		n := workers.ForCPU(autoConcurrencyLimit)
		logging.Info("  Concurrency cap resolved: auto -> %d", n)
		return n
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		logging.Warn("  Invalid MAX_CONCURRENT_TRANSCODES %q, using default: 0 (unlimited)", value)
		return 0
	}
	return n
}

func enabledString(enabled bool) string {
	if enabled {
		return "ENABLED"
	}
	return "DISABLED"
}

// LogEncoderInit logs encoder initialization and probes the ffmpeg binary
func LogEncoderInit(ffmpegPath string) {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("ENCODER INITIALIZATION")
	logging.Info("------------------------------------------------------------")

	if err := checkFFmpeg(ffmpegPath); err != nil {
		logging.Warn("  FFmpeg check failed: %v", err)
		logging.Warn("  Transcode requests will fail until ffmpeg is available")
	} else {
		logging.Info("  [OK] FFmpeg is available")
	}
}

// GetRoutes extracts all registered routes from a mux.Router
func GetRoutes(router *mux.Router) ([]RouteInfo, error) {
	var routes []RouteInfo

	err := router.Walk(func(route *mux.Route, _ *mux.Router, _ []*mux.Route) error {
		pathTemplate, err := route.GetPathTemplate()
		if err != nil {
			return err
		}

		methods, err := route.GetMethods()
		if err != nil {
			// Route might not have methods specified (e.g., static file server)
			methods = []string{"*"}
		}

		name := route.GetName()

		for _, method := range methods {
			routes = append(routes, RouteInfo{
				Method: method,
				Path:   pathTemplate,
				Name:   name,
			})
		}

		return nil
	})

	return routes, err
}

// LogHTTPRoutes logs all registered HTTP routes dynamically
func LogHTTPRoutes(router *mux.Router, logStaticFiles, logHealthChecks bool) {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("HTTP SERVER SETUP")
	logging.Info("------------------------------------------------------------")

	if logging.IsDebugEnabled() {
		routes, err := GetRoutes(router)
		if err != nil {
			logging.Warn("error walking routes: %v", err)
		}

		logging.Debug("  Registered routes (%d total):", len(routes))
		logging.Debug("")

		// Group routes by prefix for cleaner output
		groups := make(map[string][]RouteInfo)
		for _, route := range routes {
			prefix := getRouteGroup(route.Path)
			groups[prefix] = append(groups[prefix], route)
		}

		// Sort group keys
		groupKeys := make([]string, 0, len(groups))
		for k := range groups {
			groupKeys = append(groupKeys, k)
		}
		sort.Strings(groupKeys)

		// Print routes by group
		for _, group := range groupKeys {
			groupRoutes := groups[group]
			if group != "" {
				logging.Debug("  [%s]", group)
			} else {
				logging.Debug("  [root]")
			}

			for _, route := range groupRoutes {
				methodPadded := fmt.Sprintf("%-6s", route.Method)
				logging.Debug("    %s %s", methodPadded, route.Path)
			}
			logging.Debug("")
		}
	}

	logging.Info("  HTTP logging enabled")
	if logStaticFiles {
		logging.Info("    Static file logging: ON")
	} else {
		logging.Info("    Static file logging: OFF (set LOG_STATIC_FILES=true to enable)")
	}
	if logHealthChecks {
		logging.Info("    Health check logging: ON")
	} else {
		logging.Info("    Health check logging: OFF (set LOG_HEALTH_CHECKS=true to enable)")
	}
}

// getRouteGroup extracts a group name from a route path
func getRouteGroup(path string) string {
	path = strings.TrimPrefix(path, "/")
	parts := strings.SplitN(path, "/", 2)
	if len(parts) == 0 {
		return ""
	}
	return parts[0]
}

// ServerConfig holds configuration for the server startup log
type ServerConfig struct {
	Port            string
	MetricsPort     string
	MetricsEnabled  bool
	StartupDuration time.Duration
}

// LogServerStarted logs successful server start with all endpoint information
func LogServerStarted(config ServerConfig) {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("SERVER STARTED")
	logging.Info("------------------------------------------------------------")
	logging.Info("  Startup time:    %v", config.StartupDuration)
	logging.Info("")
	logging.Info("  Endpoints:")
	logging.Info("    Application:   http://0.0.0.0:%s", config.Port)
	if config.MetricsEnabled {
		logging.Info("    Metrics:       http://0.0.0.0:%s/metrics", config.MetricsPort)
	} else {
		logging.Info("    Metrics:       DISABLED")
	}
	logging.Info("")
	logging.Info("  Local access:")
	logging.Info("    Application:   http://localhost:%s", config.Port)
	if config.MetricsEnabled {
		logging.Info("    Metrics:       http://localhost:%s/metrics", config.MetricsPort)
	}
	logging.Info("")
	logging.Info("  Press Ctrl+C to stop the server")
	logging.Info("------------------------------------------------------------")
	logging.Info("")
}

// LogShutdownInitiated logs shutdown start
func LogShutdownInitiated(signal string) {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("SHUTDOWN INITIATED (received %s)", signal)
	logging.Info("------------------------------------------------------------")
}

// LogShutdownStep logs a shutdown step
func LogShutdownStep(step string) {
	logging.Debug("  %s...", step)
}

// LogShutdownStepComplete logs a completed shutdown step
func LogShutdownStepComplete(step string) {
	logging.Info("  [OK] %s", step)
}

// LogShutdownComplete logs shutdown completion
func LogShutdownComplete() {
	logging.Info("  [OK] Shutdown complete")
}

// LogFatal logs a fatal error and exits
func LogFatal(format string, args ...interface{}) {
	logging.Fatal(format, args...)
}

// Helper functions

func printBanner() {
	banner := `
------------------------------------------------------------
    ____________                            ___    ____  ____
   / ____/ ____/___ ___  ____  ___  ____ _ /   |  / __ \/  _/
  / /_  / /_  / __ '__ \/ __ \/ _ \/ __ '// /| | / /_/ // /
 / __/ / __/ / / / / / / /_/ /  __/ /_/ // ___ |/ ____// /
/_/   /_/   /_/ /_/ /_/ .___/\___/\__, //_/  |_/_/   /___/
                     /_/         /____/
------------------------------------------------------------`
	fmt.Println(banner)
	logging.Info("  Version:    %s", Version)
	logging.Info("  Commit:     %s", Commit)
	logging.Info("  Build Time: %s", BuildTime)
	logging.Info("  Started:    %s", time.Now().Format(time.RFC1123))
	logging.Info("")
}

func logSystemInfo() {
	logging.Info("------------------------------------------------------------")
	logging.Info("SYSTEM INFORMATION")
	logging.Info("------------------------------------------------------------")
	logging.Info("  Go version:      %s", runtime.Version())
	logging.Info("  OS/Arch:         %s/%s", runtime.GOOS, runtime.GOARCH)
	logging.Info("  CPUs available:  %d", runtime.NumCPU())
	logging.Info("  GOMAXPROCS:      %d", runtime.GOMAXPROCS(0))

	if runtime.GOMAXPROCS(0) < runtime.NumCPU() {
		logging.Info("  (Container CPU limit detected)")
	}

	if logging.IsDebugEnabled() {
		logging.Debug("  Goroutines:      %d", runtime.NumGoroutine())

		if wd, err := os.Getwd(); err == nil {
			logging.Debug("  Working dir:     %s", wd)
		}

		if hostname, err := os.Hostname(); err == nil {
			logging.Debug("  Hostname:        %s", hostname)
		}
	}

	logging.Info("")
}

func ensureDirectory(path, name string) error {
	logging.Debug("  Checking %s directory: %s", name, path)

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		logging.Debug("    Directory does not exist, creating...")
		if err := os.MkdirAll(path, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
		logging.Debug("    [OK] Created directory: %s", path)
		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to stat directory: %w", err)
	}

	if !info.IsDir() {
		return fmt.Errorf("path exists but is not a directory")
	}

	logging.Debug("    [OK] Directory exists")
	return nil
}

func testWriteAccess(dir string) error {
	testFile := filepath.Join(dir, ".write-test")
	if err := os.WriteFile(testFile, []byte("test"), 0o644); err != nil {
		return err
	}
	if err := os.Remove(testFile); err != nil {
		logging.Warn("failed to remove write test file %s: %v", testFile, err)
		// Don't return error since write access was confirmed
	}
	return nil
}

func checkFFmpeg(ffmpegPath string) error {
	path, err := exec.LookPath(ffmpegPath)
	if err != nil {
		return fmt.Errorf("%s not found in PATH", ffmpegPath)
	}
	logging.Debug("  FFmpeg path: %s", path)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, path, "-version")
	output, err := cmd.Output()
	if err != nil {
		return fmt.Errorf("failed to get ffmpeg version: %w", err)
	}

	lines := strings.Split(string(output), "\n")
	if len(lines) > 0 {
		logging.Debug("  FFmpeg version: %s", strings.TrimSpace(lines[0]))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		logging.Warn("Invalid boolean value for %s: %q, using default: %v", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		logging.Warn("Invalid integer value for %s: %q, using default: %d", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}
