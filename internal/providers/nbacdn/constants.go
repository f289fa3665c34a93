package nbacdn

import "time"

const (
	providerName       = "nbacdn"
	defaultURL         = "https://cdn.nba.com/static/json/staticData/scheduleLeagueV2_1.json"
	defaultHTTPTimeout = 10 * time.Second
	errorBodyLimit     = 512
)
