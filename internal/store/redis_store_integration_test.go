//go:build integration

package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisStoreAgainstServer(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })

	ctx := context.Background()
	require.NoError(t, client.Ping(ctx).Err())

	s := NewRedisStore(client, "season-games-test")
	exp := time.UnixMilli(1730514300000).UTC()
	require.NoError(t, s.Put(ctx, sampleRecord(&exp)))
	t.Cleanup(func() { client.Del(ctx, "season-games-test:2024") })

	rec, err := s.Get(ctx, 2024)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Len(t, rec.Games, 1)
	assert.True(t, rec.ExpiresAt.Equal(exp))
}
