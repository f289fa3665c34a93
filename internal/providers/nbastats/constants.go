package nbastats

import "time"

const (
	providerName       = "nbastats"
	defaultBaseURL     = "https://stats.nba.com"
	gameLogPath        = "/stats/leaguegamelog"
	defaultHTTPTimeout = 30 * time.Second
	errorBodyLimit     = 512

	// stats.nba.com rejects requests without browser-like headers.
	referer   = "https://www.nba.com/"
	origin    = "https://www.nba.com"
	userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"
)
