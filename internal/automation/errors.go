package automation

import (
	"errors"
	"fmt"
)

// Kind classifies a failure for propagation and retry decisions.
type Kind string

const (
	// KindNotFound means a window or reference image could not be located.
	KindNotFound Kind = "not_found"
	// KindInjection means the OS input call was rejected or errored.
	KindInjection Kind = "injection"
	// KindCapture means a screenshot failed.
	KindCapture Kind = "capture"
	// KindValidation means the request was malformed; resolved at the
	// protocol boundary, never produced by this package.
	KindValidation Kind = "validation"
	// KindTimeout means a retry budget was exhausted.
	KindTimeout Kind = "timeout"
)

// Failure is the typed error returned by every automation operation.
// Screenshot, when set, points at a diagnostic capture taken after the
// final attempt; the target application has no introspectable state, so
// the capture is the only post-hoc debugging artifact.
type Failure struct {
	Kind       Kind
	Message    string
	Screenshot string
	Cause      error
}

func (f *Failure) Error() string {
	if f.Screenshot != "" {
		return fmt.Sprintf("%s: %s (screenshot: %s)", f.Kind, f.Message, f.Screenshot)
	}
	return fmt.Sprintf("%s: %s", f.Kind, f.Message)
}

func (f *Failure) Unwrap() error {
	return f.Cause
}

// NotFound builds a KindNotFound failure.
func NotFound(format string, args ...any) *Failure {
	return &Failure{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Injection wraps an OS input error.
func Injection(cause error, format string, args ...any) *Failure {
	return &Failure{Kind: KindInjection, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Capture wraps a screenshot error.
func Capture(cause error, format string, args ...any) *Failure {
	return &Failure{Kind: KindCapture, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Validation builds a KindValidation failure.
func Validation(format string, args ...any) *Failure {
	return &Failure{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// Timeout builds a KindTimeout failure wrapping the last attempt's error.
func Timeout(cause error, format string, args ...any) *Failure {
	return &Failure{Kind: KindTimeout, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// KindOf extracts the failure kind from err, or "" for untyped errors.
func KindOf(err error) Kind {
	var f *Failure
	if errors.As(err, &f) {
		return f.Kind
	}
	return ""
}

// Retryable reports whether err may be retried. Injection failures are
// never retryable: re-issuing physical input that may have partially landed
// risks duplicate side effects (e.g. double-confirming a dialog).
func Retryable(err error) bool {
	switch KindOf(err) {
	case KindNotFound, KindCapture:
		return true
	default:
		return false
	}
}

// AttachScreenshot records a diagnostic screenshot path on err if it is a
// Failure and has none yet. Returns err unchanged otherwise.
func AttachScreenshot(err error, path string) error {
	var f *Failure
	if errors.As(err, &f) && f.Screenshot == "" {
		f.Screenshot = path
	}
	return err
}
