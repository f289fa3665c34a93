package archive

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"nba-surprise-service/internal/domain/games"
)

// Writer persists season archives and the manifest. Files are replaced
// atomically so readers never observe a partial document.
type Writer struct {
	basePath string
	// guards the manifest read-modify-write across concurrent seasons
	mu  sync.Mutex
	now func() time.Time
}

// NewWriter constructs a writer rooted at basePath.
func NewWriter(basePath string) *Writer {
	return &Writer{basePath: basePath, now: time.Now}
}

// BasePath exposes the writer root path.
func (w *Writer) BasePath() string {
	if w == nil {
		return ""
	}
	return w.basePath
}

// WriteSeason writes the season document. Identical content is left untouched;
// the manifest entry is refreshed either way.
func (w *Writer) WriteSeason(doc Document) error {
	if w == nil {
		return errors.New("archive writer not configured")
	}
	if doc.SeasonID <= 0 {
		return errors.New("season id required")
	}
	if doc.Games == nil {
		doc.Games = []games.Game{}
	}
	games.SortByID(doc.Games)

	target := SeasonPath(w.basePath, doc.SeasonID)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode season %d: %w", doc.SeasonID, err)
	}

	if existing, err := os.ReadFile(target); err != nil || !bytes.Equal(existing, data) {
		tmp := target + ".tmp"
		if err := os.WriteFile(tmp, data, 0o644); err != nil {
			return err
		}
		if err := os.Rename(tmp, target); err != nil {
			return err
		}
	}

	return w.updateManifest(SeasonEntry{
		SeasonID:   doc.SeasonID,
		Source:     doc.Source,
		Games:      len(doc.Games),
		ArchivedAt: w.now().UTC(),
	})
}

func (w *Writer) updateManifest(entry SeasonEntry) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	path := ManifestPath(w.basePath)
	m, err := readManifest(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("read manifest %s: %w", path, err)
	}
	m.upsert(entry)
	return writeManifest(w.basePath, m)
}
