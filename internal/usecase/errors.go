package usecase

import (
	"errors"
	"fmt"
)

type ErrorCode string

const (
	// ErrorInvalidInput is a local precondition failure, rejected before any
	// network call.
	ErrorInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrorBusy means an operation of the same kind is still outstanding.
	ErrorBusy ErrorCode = "BUSY"
	// ErrorTransport is a connectivity or malformed-response failure.
	ErrorTransport ErrorCode = "TRANSPORT_ERROR"
	// ErrorBackend is a well-formed response explicitly signaling failure.
	ErrorBackend ErrorCode = "BACKEND_ERROR"
)

// backendReporter is implemented by client errors that carry a
// backend-supplied failure message (e.g. ragapi.BackendError).
type backendReporter interface {
	BackendMessage() string
}

type Error struct {
	Code   ErrorCode
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return fmt.Sprintf("usecase: %s (%s)", e.Code, e.Reason)
	}
	return fmt.Sprintf("usecase: %s (%s): %v", e.Code, e.Reason, e.Err)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func newError(code ErrorCode, reason string, err error) *Error {
	return &Error{Code: code, Reason: reason, Err: err}
}

// remoteError classifies a client failure: a backend-reported failure keeps
// its verbatim message reachable through BackendMessage, anything else is
// transport.
func remoteError(reason string, err error) *Error {
	var reporter backendReporter
	if errors.As(err, &reporter) {
		return newError(ErrorBackend, reason, err)
	}
	return newError(ErrorTransport, reason, err)
}

// BackendMessage extracts the backend-supplied failure text from an error
// chain, if any. Callers use it to surface backend failures verbatim.
func BackendMessage(err error) (string, bool) {
	var reporter backendReporter
	if errors.As(err, &reporter) {
		return reporter.BackendMessage(), true
	}
	return "", false
}
