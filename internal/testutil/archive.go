package testutil

import (
	"testing"

	"nba-surprise-service/internal/archive"
	"nba-surprise-service/internal/domain/games"
)

// NewTempArchive returns a writer and store sharing a temp dir.
func NewTempArchive(t *testing.T) (*archive.Writer, *archive.FSStore) {
	t.Helper()
	dir := t.TempDir()
	return archive.NewWriter(dir), archive.NewFSStore(dir)
}

// WriteArchivedSeason writes a season document, failing the test on error.
func WriteArchivedSeason(t *testing.T, w *archive.Writer, seasonID int, list []games.Game) {
	t.Helper()
	if err := w.WriteSeason(archive.Document{SeasonID: seasonID, Source: "test", Games: list}); err != nil {
		t.Fatalf("failed to write archive %d: %v", seasonID, err)
	}
}
