package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "4000", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, ProviderNBACDN, cfg.Schedule.Provider)
	assert.Equal(t, 10*time.Second, cfg.Schedule.Timeout)
	assert.False(t, cfg.Schedule.SimulateFullSeason)
	assert.Equal(t, "https://stats.nba.com", cfg.Stats.BaseURL)
	assert.Equal(t, CacheMemory, cfg.Cache.Backend)
	assert.Equal(t, "data/archive", cfg.Archive.Dir)
	assert.Equal(t, 3, cfg.Archive.Concurrency)
	assert.Equal(t, ArchiveSourceGameLog, cfg.Archive.Source)
	assert.Equal(t, 15*time.Minute, cfg.Archive.RunTimeout)
	assert.Equal(t, 5*time.Minute, cfg.Poller.Interval)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "9090", cfg.Metrics.Port)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "5000")
	t.Setenv("POLL_INTERVAL", "45s")
	t.Setenv("CACHE_BACKEND", CacheRedis)
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("SCHEDULE_URL", "http://example.com/schedule.json")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("METRICS_ENABLED", "false")
	t.Setenv("SIM_FULL_SEASON", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, 45*time.Second, cfg.Poller.Interval)
	assert.Equal(t, CacheRedis, cfg.Cache.Backend)
	assert.Equal(t, "redis:6379", cfg.Cache.RedisAddr)
	assert.Equal(t, 2, cfg.Cache.RedisDB)
	assert.Equal(t, "http://example.com/schedule.json", cfg.Schedule.URL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.False(t, cfg.Metrics.Enabled)
	assert.True(t, cfg.Schedule.SimulateFullSeason)
}

func TestLoadInvalidDurationFails(t *testing.T) {
	t.Setenv("POLL_INTERVAL", "not-a-duration")

	_, err := Load()
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	base, err := Load()
	require.NoError(t, err)

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown cache", func(c *Config) { c.Cache.Backend = "memcached" }},
		{"postgres without url", func(c *Config) { c.Cache.Backend = CachePostgres; c.Cache.DatabaseURL = "" }},
		{"redis without addr", func(c *Config) { c.Cache.Backend = CacheRedis; c.Cache.RedisAddr = "" }},
		{"unknown provider", func(c *Config) { c.Schedule.Provider = "espn" }},
		{"unknown archive source", func(c *Config) { c.Archive.Source = "boxscores" }},
		{"zero concurrency", func(c *Config) { c.Archive.Concurrency = 0 }},
		{"zero archive run timeout", func(c *Config) { c.Archive.RunTimeout = 0 }},
		{"zero poll interval", func(c *Config) { c.Poller.Interval = 0 }},
		{"simulation in production", func(c *Config) { c.Env = "Production"; c.Schedule.SimulateFullSeason = true }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base
			tc.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	assert.NoError(t, base.Validate())
}

func TestIsProduction(t *testing.T) {
	assert.True(t, Config{Env: "production"}.IsProduction())
	assert.False(t, Config{Env: "development"}.IsProduction())
}
