package archive

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"nba-surprise-service/internal/domain/games"
)

// ErrNotArchived is returned when a season has no archive on disk.
var ErrNotArchived = errors.New("season not archived")

// Store defines how archived seasons are loaded.
type Store interface {
	LoadSeason(seasonID int) ([]games.Game, error)
}

// FSStore loads season archives from the filesystem.
type FSStore struct {
	basePath string
}

// NewFSStore constructs an FS-backed archive store rooted at basePath.
func NewFSStore(basePath string) *FSStore {
	return &FSStore{basePath: basePath}
}

// LoadSeason reads {basePath}/seasons/{id}.json.
func (s *FSStore) LoadSeason(seasonID int) ([]games.Game, error) {
	if s == nil {
		return nil, errors.New("archive store not configured")
	}
	f, err := os.Open(SeasonPath(s.basePath, seasonID))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("season %d: %w", seasonID, ErrNotArchived)
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var doc Document
	if err := json.NewDecoder(f).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode season %d archive: %w", seasonID, err)
	}
	if doc.Games == nil {
		doc.Games = []games.Game{}
	}
	return doc.Games, nil
}

// Has reports whether a season archive exists.
func (s *FSStore) Has(seasonID int) bool {
	if s == nil || s.basePath == "" {
		return false
	}
	_, err := os.Stat(SeasonPath(s.basePath, seasonID))
	return err == nil
}

// Manifest returns the current manifest, or an empty one when none exists.
func (s *FSStore) Manifest() (Manifest, error) {
	if s == nil {
		return defaultManifest(), errors.New("archive store not configured")
	}
	m, err := readManifest(ManifestPath(s.basePath))
	if errors.Is(err, fs.ErrNotExist) {
		return m, nil
	}
	return m, err
}
