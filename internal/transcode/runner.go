package transcode

import (
	"bytes"
	"errors"
	"os/exec"

	"github.com/rafaykhanzada/ffmpeg-minimal-api/internal/logging"
)

// Invocation is a fully-built encoder command line.
type Invocation struct {
	Path string
	Args []string
}

// Outcome reports how an encoder run ended. ExitCode is zero only when
// the process ran to successful completion.
type Outcome struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// runInvocation launches the encoder and blocks until it exits. Both
// output streams are captured into memory so a chatty encoder can never
// stall on a full pipe. The child is deliberately not tied to any request
// context: once started, a run finishes on its own terms even if the
// caller goes away.
//
// A non-zero exit is a normal Outcome, not an error; the returned error
// is reserved for failures to start the process at all.
func runInvocation(inv Invocation) (Outcome, error) {
	logging.Debug("Running %s %v", inv.Path, inv.Args)

	cmd := exec.Command(inv.Path, inv.Args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	outcome := Outcome{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			outcome.ExitCode = exitErr.ExitCode()
			return outcome, nil
		}
		return outcome, errProcessLaunch(err)
	}
	return outcome, nil
}
