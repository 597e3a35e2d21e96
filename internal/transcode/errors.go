package transcode

import (
	"errors"
	"fmt"
)

// Kind classifies a pipeline failure.
type Kind int

const (
	// KindUnknown is an unclassified failure.
	KindUnknown Kind = iota
	// KindValidation is a missing or blank required parameter, detected
	// before any filesystem or process work begins.
	KindValidation
	// KindFilesystem is a failure preparing the output directory.
	KindFilesystem
	// KindProcessLaunch is a failure to even start the encoder
	// (executable missing, spawn error).
	KindProcessLaunch
	// KindEncoder is an encoder run that started but exited non-zero.
	KindEncoder
)

// String returns the string representation of a failure kind.
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindFilesystem:
		return "filesystem"
	case KindProcessLaunch:
		return "process_launch"
	case KindEncoder:
		return "encoder"
	default:
		return "unknown"
	}
}

// Error is a classified pipeline failure. The message is what operations
// surface to callers; the wrapped error keeps the underlying cause for
// logs and errors.Is/As inspection.
type Error struct {
	Kind Kind
	msg  string
	err  error
}

func (e *Error) Error() string {
	if e.msg != "" && e.err != nil {
		return e.msg + ": " + e.err.Error()
	}
	if e.msg != "" {
		return e.msg
	}
	if e.err != nil {
		return e.err.Error()
	}
	return e.Kind.String() + " error"
}

func (e *Error) Unwrap() error {
	return e.err
}

func errValidation(msg string) *Error {
	return &Error{Kind: KindValidation, msg: msg}
}

func errFilesystem(err error) *Error {
	return &Error{Kind: KindFilesystem, msg: "failed to create output directory", err: err}
}

func errProcessLaunch(err error) *Error {
	return &Error{Kind: KindProcessLaunch, msg: "failed to start ffmpeg", err: err}
}

func errEncoder(exitCode int) *Error {
	return &Error{Kind: KindEncoder, msg: fmt.Sprintf("ffmpeg failed with exit code %d", exitCode)}
}

// KindOf returns the classification of err, or KindUnknown for errors
// that did not originate in this package.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsValidation reports whether err is a request validation failure.
func IsValidation(err error) bool {
	return KindOf(err) == KindValidation
}
