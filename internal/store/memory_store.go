package store

import (
	"context"
	"sync"

	"nba-surprise-service/internal/domain/games"
)

// MemoryStore keeps season records in process memory.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[int]games.CacheRecord
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[int]games.CacheRecord),
	}
}

// Get returns a copy of the season's record.
func (s *MemoryStore) Get(_ context.Context, seasonID int) (*games.CacheRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[seasonID]
	if !ok {
		return nil, nil
	}
	out := cloneRecord(rec)
	return &out, nil
}

// Put replaces the season's record.
func (s *MemoryStore) Put(_ context.Context, record games.CacheRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[record.SeasonID] = cloneRecord(record)
	return nil
}
