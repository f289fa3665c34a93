package config

import "time"

// ScheduleConfig configures the live season schedule source.
type ScheduleConfig struct {
	Provider           string        `envconfig:"SCHEDULE_PROVIDER" default:"nbacdn"`
	URL                string        `envconfig:"SCHEDULE_URL" default:"https://cdn.nba.com/static/json/staticData/scheduleLeagueV2_1.json"`
	Timeout            time.Duration `envconfig:"SCHEDULE_TIMEOUT" default:"10s"`
	SimulateFullSeason bool          `envconfig:"SIM_FULL_SEASON" default:"false"`
}

// StatsConfig configures the league game log source used for archival.
type StatsConfig struct {
	BaseURL     string        `envconfig:"STATS_BASE_URL" default:"https://stats.nba.com"`
	Timeout     time.Duration `envconfig:"STATS_TIMEOUT" default:"30s"`
	MaxAttempts int           `envconfig:"STATS_MAX_ATTEMPTS" default:"3"`
	MinInterval time.Duration `envconfig:"STATS_MIN_INTERVAL" default:"1s"`
}
