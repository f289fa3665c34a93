package config

// Cache backends.
const (
	CacheMemory   = "memory"
	CacheRedis    = "redis"
	CachePostgres = "postgres"
)

// Schedule providers.
const (
	ProviderNBACDN  = "nbacdn"
	ProviderFixture = "fixture"
)

// Archive sources.
const (
	ArchiveSourceGameLog  = "gamelog"
	ArchiveSourceSchedule = "schedule"
)
