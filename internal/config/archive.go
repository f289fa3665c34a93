package config

import "time"

// ArchiveConfig controls the concluded-season archive and its nightly job.
type ArchiveConfig struct {
	Dir         string `envconfig:"ARCHIVE_DIR" default:"data/archive"`
	Enabled     bool   `envconfig:"ARCHIVE_ENABLED" default:"true"`
	Cron        string `envconfig:"ARCHIVE_CRON" default:"0 6 * * *"`
	Concurrency int    `envconfig:"ARCHIVE_CONCURRENCY" default:"3"`
	Source      string `envconfig:"ARCHIVE_SOURCE" default:"gamelog"`
	// RunTimeout bounds an admin-triggered run and its response write.
	RunTimeout time.Duration `envconfig:"ARCHIVE_RUN_TIMEOUT" default:"15m"`
}

// PollerConfig controls the current-season cache warmer.
type PollerConfig struct {
	Enabled  bool          `envconfig:"POLLER_ENABLED" default:"true"`
	Interval time.Duration `envconfig:"POLL_INTERVAL" default:"5m"`
}
