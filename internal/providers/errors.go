package providers

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrUpstreamUnavailable marks failures to reach or read an upstream source.
var ErrUpstreamUnavailable = errors.New("upstream unavailable")

// StatusError captures a non-200 response from an upstream source.
type StatusError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s: unexpected status %d", e.Provider, e.StatusCode)
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// Unwrap lets callers match any status failure as ErrUpstreamUnavailable.
func (e *StatusError) Unwrap() error {
	return ErrUpstreamUnavailable
}

// Retryable reports whether repeating the request may succeed.
func (e *StatusError) Retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// AsStatusError attempts to unwrap an error into a StatusError.
func AsStatusError(err error) (*StatusError, bool) {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr, true
	}
	return nil, false
}

// Unavailable wraps a transport failure from provider.
func Unavailable(provider string, err error) error {
	return fmt.Errorf("%s: %w: %w", provider, ErrUpstreamUnavailable, err)
}
