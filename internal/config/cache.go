package config

// CacheConfig selects and configures the season cache store.
type CacheConfig struct {
	Backend        string `envconfig:"CACHE_BACKEND" default:"memory"`
	RedisAddr      string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword  string `envconfig:"REDIS_PASSWORD"`
	RedisDB        int    `envconfig:"REDIS_DB" default:"0"`
	RedisKeyPrefix string `envconfig:"REDIS_KEY_PREFIX" default:"season-games"`
	DatabaseURL    string `envconfig:"DATABASE_URL"`
}
