package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"nba-surprise-service/internal/config"
	"nba-surprise-service/internal/logging"
	"nba-surprise-service/internal/store"
)

const storeConnectTimeout = 5 * time.Second

// buildCacheStore opens the configured cache backend. The returned func releases its connections.
func buildCacheStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (store.CacheStore, func(), error) {
	switch cfg.Cache.Backend {
	case config.CacheMemory, "":
		return store.NewMemoryStore(), func() {}, nil

	case config.CacheRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, storeConnectTimeout)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("connect redis %s: %w", cfg.Cache.RedisAddr, err)
		}
		logging.Info(logger, "cache backend ready", slog.String("backend", config.CacheRedis))
		return store.NewRedisStore(client, cfg.Cache.RedisKeyPrefix), func() { _ = client.Close() }, nil

	case config.CachePostgres:
		connectCtx, cancel := context.WithTimeout(ctx, storeConnectTimeout)
		defer cancel()
		pool, err := store.OpenPostgres(connectCtx, cfg.Cache.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		pg := store.NewPostgresStore(pool)
		if err := pg.Migrate(connectCtx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("migrate cache schema: %w", err)
		}
		logging.Info(logger, "cache backend ready", slog.String("backend", config.CachePostgres))
		return pg, pool.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}
}
