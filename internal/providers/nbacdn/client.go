// Package nbacdn fetches the league's static season schedule from the NBA CDN.
package nbacdn

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"nba-surprise-service/internal/providers"
	"nba-surprise-service/internal/schedule"
)

// Config controls how the client reaches the schedule document.
type Config struct {
	URL        string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client fetches and validates the season schedule.
type Client struct {
	url        string
	timeout    time.Duration
	httpClient httpDoer
}

// NewClient constructs a schedule client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		url:        normalizeURL(cfg.URL),
		timeout:    resolveTimeout(cfg.Timeout),
		httpClient: resolveHTTPClient(cfg.HTTPClient, cfg.Timeout),
	}
}

// FetchSchedule downloads and parses the schedule. The request is bounded by
// the configured timeout even when ctx has no deadline.
func (c *Client) FetchSchedule(ctx context.Context) (*schedule.Schedule, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", providerName, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, providers.Unavailable(providerName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		return nil, &providers.StatusError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, providers.Unavailable(providerName, err)
	}

	s, err := schedule.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", providerName, err)
	}
	return s, nil
}
