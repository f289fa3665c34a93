package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"nba-surprise-service/internal/domain/games"
)

// RedisClient is the subset of the go-redis client used by RedisStore.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// RedisStore keeps one JSON document per season. Keys never expire; freshness
// is tracked inside the document.
type RedisStore struct {
	client   RedisClient
	prefix   string
	schemaID string
}

type redisEnvelope struct {
	ID   string       `json:"id"`
	Data redisPayload `json:"data"`
}

type redisPayload struct {
	Games     []games.Game `json:"games"`
	ExpiresAt *int64       `json:"expiresAt,omitempty"`
	UpdatedAt int64        `json:"updatedAt"`
}

// NewRedisStore returns a store writing under keys "{prefix}:{seasonID}".
func NewRedisStore(client RedisClient, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix, schemaID: SchemaID}
}

func (s *RedisStore) key(seasonID int) string {
	return fmt.Sprintf("%s:%d", s.prefix, seasonID)
}

// Get returns the season record, or nil when it is missing or was written
// under another schema id.
func (s *RedisStore) Get(ctx context.Context, seasonID int) (*games.CacheRecord, error) {
	b, err := s.client.Get(ctx, s.key(seasonID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get season %d: %w", seasonID, err)
	}

	var env redisEnvelope
	if err := json.Unmarshal(b, &env); err != nil {
		return nil, fmt.Errorf("%w: season %d: %v", ErrCorruptRecord, seasonID, err)
	}
	if env.ID != s.schemaID {
		return nil, nil
	}

	rec := &games.CacheRecord{
		SeasonID:  seasonID,
		Games:     env.Data.Games,
		UpdatedAt: time.UnixMilli(env.Data.UpdatedAt).UTC(),
	}
	if rec.Games == nil {
		rec.Games = []games.Game{}
	}
	if env.Data.ExpiresAt != nil {
		exp := time.UnixMilli(*env.Data.ExpiresAt).UTC()
		rec.ExpiresAt = &exp
	}
	return rec, nil
}

// Put writes the season record without a TTL.
func (s *RedisStore) Put(ctx context.Context, record games.CacheRecord) error {
	env := redisEnvelope{
		ID: s.schemaID,
		Data: redisPayload{
			Games:     record.Games,
			UpdatedAt: record.UpdatedAt.UnixMilli(),
		},
	}
	if env.Data.Games == nil {
		env.Data.Games = []games.Game{}
	}
	if record.ExpiresAt != nil {
		ms := record.ExpiresAt.UnixMilli()
		env.Data.ExpiresAt = &ms
	}

	b, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("encode season %d: %w", record.SeasonID, err)
	}
	if err := s.client.Set(ctx, s.key(record.SeasonID), b, 0).Err(); err != nil {
		return fmt.Errorf("redis set season %d: %w", record.SeasonID, err)
	}
	return nil
}
