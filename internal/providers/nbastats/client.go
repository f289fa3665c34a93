// Package nbastats fetches regular-season team game logs from stats.nba.com.
package nbastats

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"nba-surprise-service/internal/gamelog"
	"nba-surprise-service/internal/providers"
)

// Config controls how the client reaches the stats API.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client fetches league game logs.
type Client struct {
	baseURL    string
	httpClient httpDoer
}

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// NewClient constructs a stats client with the provided configuration.
func NewClient(cfg Config) *Client {
	baseURL := strings.TrimSuffix(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	var doer httpDoer = cfg.HTTPClient
	if cfg.HTTPClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultHTTPTimeout
		}
		doer = &http.Client{Timeout: timeout}
	}
	return &Client{baseURL: baseURL, httpClient: doer}
}

// FetchGameLog downloads one row per team per regular-season game.
func (c *Client) FetchGameLog(ctx context.Context, seasonID int) (*gamelog.Log, error) {
	req, err := c.buildRequest(ctx, seasonID)
	if err != nil {
		return nil, err
	}

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
	log, err := gamelog.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: season %d: %w", providerName, seasonID, err)
	}
	return log, nil
}

func (c *Client) buildRequest(ctx context.Context, seasonID int) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+gameLogPath, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", providerName, err)
	}

	q := req.URL.Query()
	q.Set("Counter", "0")
	q.Set("Direction", "ASC")
	q.Set("LeagueID", "00")
	q.Set("PlayerOrTeam", "T")
	q.Set("Season", strconv.Itoa(seasonID))
	q.Set("SeasonType", "Regular Season")
	q.Set("Sorter", "DATE")
	req.URL.RawQuery = q.Encode()

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Referer", referer)
	req.Header.Set("Origin", origin)
	req.Header.Set("User-Agent", userAgent)
	return req, nil
}
