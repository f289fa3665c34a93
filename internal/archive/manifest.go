package archive

import (
	"encoding/json"
	"os"
	"sort"
	"time"
)

// Manifest tracks which seasons are archived.
type Manifest struct {
	Version     int           `json:"version"`
	GeneratedAt time.Time     `json:"generatedAt"`
	Seasons     []SeasonEntry `json:"seasons"`
}

// SeasonEntry describes one archived season.
type SeasonEntry struct {
	SeasonID   int       `json:"seasonId"`
	Source     string    `json:"source"`
	Games      int       `json:"games"`
	ArchivedAt time.Time `json:"archivedAt"`
}

func defaultManifest() Manifest {
	return Manifest{
		Version:     1,
		GeneratedAt: time.Now().UTC(),
		Seasons:     []SeasonEntry{},
	}
}

func readManifest(path string) (Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return defaultManifest(), err
	}
	defer f.Close()
	var m Manifest
	if err := json.NewDecoder(f).Decode(&m); err != nil {
		return defaultManifest(), err
	}
	if m.Seasons == nil {
		m.Seasons = []SeasonEntry{}
	}
	return m, nil
}

func writeManifest(basePath string, m Manifest) error {
	m.GeneratedAt = time.Now().UTC()
	sort.Slice(m.Seasons, func(i, j int) bool { return m.Seasons[i].SeasonID < m.Seasons[j].SeasonID })

	path := ManifestPath(basePath)
	tmp := path + ".tmp"
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// upsert replaces the entry for entry.SeasonID or appends it.
func (m *Manifest) upsert(entry SeasonEntry) {
	for i := range m.Seasons {
		if m.Seasons[i].SeasonID == entry.SeasonID {
			m.Seasons[i] = entry
			return
		}
	}
	m.Seasons = append(m.Seasons, entry)
}
