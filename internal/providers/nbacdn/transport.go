package nbacdn

import (
	"net/http"
	"strings"
	"time"
)

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

func resolveHTTPClient(client *http.Client, timeout time.Duration) httpDoer {
	if client != nil {
		return client
	}
	return &http.Client{Timeout: resolveTimeout(timeout)}
}

func resolveTimeout(timeout time.Duration) time.Duration {
	if timeout <= 0 {
		return defaultHTTPTimeout
	}
	return timeout
}

func normalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return defaultURL
	}
	return raw
}
