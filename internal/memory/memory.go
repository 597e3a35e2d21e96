// Package memory configures the Go runtime's soft memory limit from
// container environment variables.
//
// Most of the real memory this service consumes lives in ffmpeg child
// processes, which the Go runtime knows nothing about. Capping the Go
// heap at a slice of the container limit keeps garbage kept alive by
// in-flight requests from crowding out the encoders.
package memory

import (
	"math"
	"os"
	"runtime/debug"
	"strconv"

	"github.com/rafaykhanzada/ffmpeg-minimal-api/internal/logging"
)

// DefaultHeapRatio is the share of the container memory limit given to
// the Go heap. The remainder is headroom for the ffmpeg children the
// service forks.
const DefaultHeapRatio = 0.85

// Result reports what ConfigureFromEnv decided.
type Result struct {
	// Configured is true when a soft memory limit is in effect.
	Configured bool

	// Source names where the limit came from: "GOMEMLIMIT",
	// "MEMORY_LIMIT" or "none".
	Source string

	// ContainerLimit is the container memory limit in bytes, if known.
	ContainerLimit int64

	// HeapLimit is the effective GOMEMLIMIT in bytes, if configured.
	HeapLimit int64

	// Ratio is the heap ratio applied to ContainerLimit.
	Ratio float64
}

// ConfigureFromEnv sets GOMEMLIMIT from the container memory limit.
// Call it early in main, before significant allocations.
//
// GOMEMLIMIT itself takes precedence when set; the runtime has already
// parsed it by the time we run. Otherwise MEMORY_LIMIT (bytes, usually
// injected from the orchestrator's resource limit) scaled by
// MEMORY_RATIO decides the heap limit.
func ConfigureFromEnv() Result {
	if env := os.Getenv("GOMEMLIMIT"); env != "" {
		result := Result{Source: "GOMEMLIMIT"}
		if limit := debug.SetMemoryLimit(-1); limit > 0 && limit < math.MaxInt64 {
			result.Configured = true
			result.HeapLimit = limit
		}
		logging.Info("GOMEMLIMIT set via environment: %s", env)
		return result
	}

	limitStr := os.Getenv("MEMORY_LIMIT")
	if limitStr == "" {
		logging.Debug("MEMORY_LIMIT not set, leaving GOMEMLIMIT unconfigured")
		return Result{Source: "none"}
	}

	containerLimit, err := strconv.ParseInt(limitStr, 10, 64)
	if err != nil {
		logging.Warn("Failed to parse MEMORY_LIMIT %q: %v", limitStr, err)
		return Result{Source: "none"}
	}
	if containerLimit <= 0 {
		logging.Warn("Ignoring non-positive MEMORY_LIMIT %d", containerLimit)
		return Result{Source: "none"}
	}

	ratio := heapRatioFromEnv()
	heapLimit := int64(float64(containerLimit) * ratio)
	debug.SetMemoryLimit(heapLimit)

	logging.Info("Configured GOMEMLIMIT: %s (%.0f%% of %s container limit)",
		formatBytes(heapLimit), ratio*100, formatBytes(containerLimit))

	return Result{
		Configured:     true,
		Source:         "MEMORY_LIMIT",
		ContainerLimit: containerLimit,
		HeapLimit:      heapLimit,
		Ratio:          ratio,
	}
}

func heapRatioFromEnv() float64 {
	env := os.Getenv("MEMORY_RATIO")
	if env == "" {
		return DefaultHeapRatio
	}
	ratio, err := strconv.ParseFloat(env, 64)
	if err != nil {
		logging.Warn("Failed to parse MEMORY_RATIO %q: %v, using default %.2f", env, err, DefaultHeapRatio)
		return DefaultHeapRatio
	}
	if ratio <= 0 || ratio > 1.0 {
		logging.Warn("MEMORY_RATIO %q out of range (0.0-1.0], using default %.2f", env, DefaultHeapRatio)
		return DefaultHeapRatio
	}
	return ratio
}

// formatBytes renders a byte count in binary units for log lines.
func formatBytes(b int64) string {
	const unit = 1024
	if b < unit {
		return strconv.FormatInt(b, 10) + " B"
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return strconv.FormatFloat(float64(b)/float64(div), 'f', 1, 64) + " " + string("KMGTPE"[exp]) + "iB"
}
