package clients

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"
)

var (
	// ErrRemoteUnavailable is returned on transport failures and timeouts
	ErrRemoteUnavailable = errors.New("remote service unavailable")
	// ErrRemoteRateLimited is returned when the remote answers 429
	ErrRemoteRateLimited = errors.New("remote service rate limited")
	// ErrRemoteNotFound is returned when the remote answers 404
	ErrRemoteNotFound = errors.New("remote resource not found")
)

// UnavailableError wraps a transport level failure
type UnavailableError struct {
	Service string
	Timeout bool
	Err     error
}

func (e *UnavailableError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("%s: request timed out: %v", e.Service, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Service, e.Err)
}

func (e *UnavailableError) Is(target error) bool {
	return target == ErrRemoteUnavailable
}

func (e *UnavailableError) Unwrap() error {
	return e.Err
}

// RateLimitError is returned on HTTP 429
type RateLimitError struct {
	Service    string
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("%s: rate limited (retry after %s)", e.Service, e.RetryAfter)
}

func (e *RateLimitError) Is(target error) bool {
	return target == ErrRemoteRateLimited
}

// RemoteError is any other non-2xx answer
type RemoteError struct {
	Service    string
	StatusCode int
	Body       string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s API error (status %d): %s", e.Service, e.StatusCode, e.Body)
}

// newUnavailableError classifies a transport error
func newUnavailableError(service string, err error) error {
	timeout := errors.Is(err, context.DeadlineExceeded)
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		timeout = true
	}
	return &UnavailableError{Service: service, Timeout: timeout, Err: err}
}

// errorForStatus maps a non-2xx response to the error taxonomy
func errorForStatus(service string, resp *http.Response, body []byte) error {
	switch resp.StatusCode {
	case http.StatusNotFound:
		return fmt.Errorf("%s: %w", service, ErrRemoteNotFound)
	case http.StatusTooManyRequests:
		return &RateLimitError{Service: service, RetryAfter: ParseRetryAfter(resp)}
	default:
		return &RemoteError{Service: service, StatusCode: resp.StatusCode, Body: string(body)}
	}
}

// IsTimeout reports whether err is a timeout class failure
func IsTimeout(err error) bool {
	var unavailable *UnavailableError
	return errors.As(err, &unavailable) && unavailable.Timeout
}

// IsTransient reports whether retrying err may succeed: transport failures,
// rate limiting and 5xx answers.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, ErrRemoteUnavailable) || errors.Is(err, ErrRemoteRateLimited) {
		return true
	}
	var remote *RemoteError
	if errors.As(err, &remote) {
		return remote.StatusCode >= 500
	}
	return false
}

// RetryAfterOf returns the server requested delay carried by err, if any
func RetryAfterOf(err error) time.Duration {
	var limited *RateLimitError
	if errors.As(err, &limited) {
		return limited.RetryAfter
	}
	return 0
}
