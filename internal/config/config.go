package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime configuration for the server and archiver.
type Config struct {
	Port        string   `envconfig:"PORT" default:"4000"`
	Env         string   `envconfig:"APP_ENV" default:"development"`
	Version     string   `envconfig:"APP_VERSION" default:"dev"`
	AdminToken  string   `envconfig:"ADMIN_TOKEN"`
	CORSOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`

	Log      LogConfig
	Schedule ScheduleConfig
	Stats    StatsConfig
	Cache    CacheConfig
	Archive  ArchiveConfig
	Poller   PollerConfig
	Metrics  MetricsConfig
}

// LogConfig selects the slog handler and level.
type LogConfig struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Format string `envconfig:"LOG_FORMAT" default:"text"`
}

// Load reads an optional .env file, then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to process environment config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks cross-field constraints envconfig cannot express.
func (c Config) Validate() error {
	switch c.Cache.Backend {
	case CacheMemory:
	case CacheRedis:
		if c.Cache.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR is required for the %s cache", CacheRedis)
		}
	case CachePostgres:
		if c.Cache.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the %s cache", CachePostgres)
		}
	default:
		return fmt.Errorf("unknown CACHE_BACKEND %q", c.Cache.Backend)
	}

	switch c.Schedule.Provider {
	case ProviderNBACDN, ProviderFixture:
	default:
		return fmt.Errorf("unknown SCHEDULE_PROVIDER %q", c.Schedule.Provider)
	}

	switch c.Archive.Source {
	case ArchiveSourceGameLog, ArchiveSourceSchedule:
	default:
		return fmt.Errorf("unknown ARCHIVE_SOURCE %q", c.Archive.Source)
	}

	if c.Archive.Concurrency <= 0 {
		return fmt.Errorf("ARCHIVE_CONCURRENCY must be positive")
	}
	if c.Archive.RunTimeout <= 0 {
		return fmt.Errorf("ARCHIVE_RUN_TIMEOUT must be positive")
	}
	if c.Poller.Enabled && c.Poller.Interval <= 0 {
		return fmt.Errorf("POLL_INTERVAL must be positive")
	}
	if c.Schedule.SimulateFullSeason && c.IsProduction() {
		return fmt.Errorf("SIM_FULL_SEASON cannot be enabled in production")
	}
	return nil
}

// IsProduction reports whether APP_ENV names a production deployment.
func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}
