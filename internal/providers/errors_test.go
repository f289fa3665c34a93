package providers

import (
	"errors"
	"fmt"
	"testing"
)

func TestStatusErrorString(t *testing.T) {
	err := &StatusError{Provider: "nbacdn", StatusCode: 503, Body: "busy"}
	if got := err.Error(); got != "nbacdn: unexpected status 503: busy" {
		t.Fatalf("unexpected message %q", got)
	}
	if got := (&StatusError{Provider: "nbacdn", StatusCode: 404}).Error(); got != "nbacdn: unexpected status 404" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestStatusErrorUnwrapsToUnavailable(t *testing.T) {
	wrapped := fmt.Errorf("refresh: %w", &StatusError{Provider: "nbacdn", StatusCode: 500})
	if !errors.Is(wrapped, ErrUpstreamUnavailable) {
		t.Fatalf("expected status error to match ErrUpstreamUnavailable")
	}
	statusErr, ok := AsStatusError(wrapped)
	if !ok || statusErr.StatusCode != 500 {
		t.Fatalf("expected to unwrap status error, got %v", statusErr)
	}
	if _, ok := AsStatusError(errors.New("plain")); ok {
		t.Fatalf("plain error should not unwrap")
	}
}

func TestUnavailableKeepsCause(t *testing.T) {
	cause := errors.New("dial tcp: timeout")
	err := Unavailable("nbacdn", cause)
	if !errors.Is(err, ErrUpstreamUnavailable) || !errors.Is(err, cause) {
		t.Fatalf("expected both sentinel and cause in %v", err)
	}
}
