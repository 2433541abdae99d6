package vm

import (
	"errors"
	"fmt"
)

// Kind classifies runtime failures.
type Kind string

const (
	// KindModuleLoad means the runtime asset could not be fetched or
	// instantiated.
	KindModuleLoad Kind = "module_load"
	// KindInitialization means the module loaded but its setup call failed.
	KindInitialization Kind = "initialization"
	// KindRuntime means one execution request failed after a successful load.
	KindRuntime Kind = "runtime"
)

// Error is returned by every Loader operation that fails.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Msg
	}
	return fmt.Sprintf("%s: %v", e.Msg, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// IsKind reports whether err wraps an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}
