package client

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// FetchKind classifies a failed status fetch. The Termination Policy keys
// off the kind: NotFound and Unauthorized end the session immediately,
// Transient feeds the bounded-retry counter, Unexpected ends the session.
type FetchKind int

const (
	FetchNotFound FetchKind = iota
	FetchUnauthorized
	FetchTransient
	FetchUnexpected
)

// String returns the operator-facing label for the kind.
func (k FetchKind) String() string {
	switch k {
	case FetchNotFound:
		return "not found"
	case FetchUnauthorized:
		return "unauthorized"
	case FetchTransient:
		return "transient"
	default:
		return "unexpected"
	}
}

// FetchError is a classified failure of one remote status read.
type FetchError struct {
	Kind FetchKind
	Op   string // remote operation, e.g. "GetResyncSummary"
	Err  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s: %s fetch error: %v", e.Op, e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// AsFetchError extracts a *FetchError from err's chain, or nil.
func AsFetchError(err error) *FetchError {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe
	}
	return nil
}

// SessionError reports a failure to establish an authenticated session.
// It is fatal at startup; no polling happens without a session.
type SessionError struct {
	Err error
}

func (e *SessionError) Error() string {
	return fmt.Sprintf("not authenticated: %v", e.Err)
}

func (e *SessionError) Unwrap() error {
	return e.Err
}

// classifyStatus maps an HTTP response status to a FetchKind.
// 404 means the named scope does not resolve — surfaced as NotFound rather
// than widened to some broader scope. 5xx is retryable server trouble.
func classifyStatus(code int) FetchKind {
	switch {
	case code == http.StatusNotFound:
		return FetchNotFound
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return FetchUnauthorized
	case code >= 500:
		return FetchTransient
	default:
		return FetchUnexpected
	}
}

// classifyTransport maps a transport-level error (no HTTP response) to a
// FetchKind. Timeouts and connection failures are transient; context
// cancellation and anything else is unexpected.
func classifyTransport(err error) FetchKind {
	if errors.Is(err, context.Canceled) {
		return FetchUnexpected
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return FetchTransient
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return FetchTransient
	}
	var oe *net.OpError
	if errors.As(err, &oe) {
		return FetchTransient
	}
	return FetchUnexpected
}
