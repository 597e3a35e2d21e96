package transcode

// Observer receives job lifecycle events from the service. Implementations
// must be safe for concurrent use; the metrics package provides one backed
// by Prometheus collectors.
type Observer interface {
	// JobStarted fires when an encoder run begins.
	JobStarted(mode string)

	// JobCompleted fires when an encoder run ends, successfully or not.
	JobCompleted(mode string, success bool, durationSeconds float64)

	// GateWait fires with +1 when an operation starts waiting for an
	// admission slot and -1 when it acquires one.
	GateWait(delta int)
}

// nopObserver is used when no observer is configured.
type nopObserver struct{}

func (nopObserver) JobStarted(string)                  {}
func (nopObserver) JobCompleted(string, bool, float64) {}
func (nopObserver) GateWait(int)                       {}
