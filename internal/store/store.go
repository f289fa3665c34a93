// Package store persists the last known game list for each season.
package store

import (
	"context"
	"errors"

	"nba-surprise-service/internal/domain/games"
)

// SchemaID versions the persisted record shape. Records written under a
// different id are treated as absent.
const SchemaID = "season-games/v1"

// ErrCorruptRecord is returned when a stored record cannot be decoded.
var ErrCorruptRecord = errors.New("corrupt cache record")

// CacheStore reads and writes season cache records. Get returns (nil, nil)
// when no usable record exists. Put overwrites any previous record.
type CacheStore interface {
	Get(ctx context.Context, seasonID int) (*games.CacheRecord, error)
	Put(ctx context.Context, record games.CacheRecord) error
}

func cloneRecord(r games.CacheRecord) games.CacheRecord {
	out := r
	out.Games = append([]games.Game(nil), r.Games...)
	if r.ExpiresAt != nil {
		exp := *r.ExpiresAt
		out.ExpiresAt = &exp
	}
	return out
}
