package testutil

import (
	"context"
	"fmt"
	"sync/atomic"

	"nba-surprise-service/internal/archive"
	"nba-surprise-service/internal/domain/games"
	"nba-surprise-service/internal/store"
)

// CountingStore wraps a MemoryStore, counting calls and injecting errors.
type CountingStore struct {
	Inner  *store.MemoryStore
	GetErr error
	PutErr error
	Gets   atomic.Int32
	Puts   atomic.Int32
}

// NewCountingStore returns an empty CountingStore.
func NewCountingStore() *CountingStore {
	return &CountingStore{Inner: store.NewMemoryStore()}
}

func (s *CountingStore) Get(ctx context.Context, seasonID int) (*games.CacheRecord, error) {
	s.Gets.Add(1)
	if s.GetErr != nil {
		return nil, s.GetErr
	}
	return s.Inner.Get(ctx, seasonID)
}

func (s *CountingStore) Put(ctx context.Context, record games.CacheRecord) error {
	s.Puts.Add(1)
	if s.PutErr != nil {
		return s.PutErr
	}
	return s.Inner.Put(ctx, record)
}

// Seed stores a record without counting it.
func (s *CountingStore) Seed(record games.CacheRecord) {
	_ = s.Inner.Put(context.Background(), record)
}

// StubArchive serves seasons from a map.
type StubArchive struct {
	Seasons map[int][]games.Game
	Err     error
}

func (a *StubArchive) LoadSeason(seasonID int) ([]games.Game, error) {
	if a.Err != nil {
		return nil, a.Err
	}
	list, ok := a.Seasons[seasonID]
	if !ok {
		return nil, fmt.Errorf("season %d: %w", seasonID, archive.ErrNotArchived)
	}
	return list, nil
}
