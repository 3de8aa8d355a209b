package record

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"
)

var (
	// ErrFetch marks every failure returned by a Source in this package.
	ErrFetch = errors.New("failed to fetch users")
	// ErrTimeout marks fetches that ran out of time.
	ErrTimeout = errors.New("operation timed out")
	// ErrNetwork marks fetches that failed in transport.
	ErrNetwork = errors.New("network error")
)

// FetchError wraps the underlying cause of a failed fetch.
type FetchError struct {
	Source string
	Cause  error
}

func (e *FetchError) Error() string {
	if e.Cause == nil {
		return ErrFetch.Error() + " from " + e.Source
	}
	return ErrFetch.Error() + " from " + e.Source + ": " + e.Cause.Error()
}

func (e *FetchError) Is(target error) bool {
	return target == ErrFetch
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}

// TimeoutError reports a fetch that did not finish within After.
type TimeoutError struct {
	Source string
	After  time.Duration
	Cause  error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s request timed out after %s", e.Source, e.After)
}

func (e *TimeoutError) Is(target error) bool {
	return target == ErrTimeout
}

func (e *TimeoutError) Unwrap() error {
	return e.Cause
}

// NetworkError reports a fetch that never got a response.
type NetworkError struct {
	Source string
	Cause  error
}

func (e *NetworkError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("network error during %s request: %v", e.Source, e.Cause)
	}
	return fmt.Sprintf("network error during %s request", e.Source)
}

func (e *NetworkError) Is(target error) bool {
	return target == ErrNetwork
}

func (e *NetworkError) Unwrap() error {
	return e.Cause
}

func newFetchError(source string, cause error) error {
	return &FetchError{Source: source, Cause: cause}
}

// transportError classifies a request that failed before any response
// arrived. Cancellation is passed through untouched.
func transportError(source string, timeout time.Duration, err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &TimeoutError{Source: source, After: timeout, Cause: err}
	}
	return &NetworkError{Source: source, Cause: err}
}
