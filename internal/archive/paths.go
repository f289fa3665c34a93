package archive

import (
	"fmt"
	"path/filepath"
)

const (
	seasonsDir   = "seasons"
	manifestFile = "manifest.json"
)

// SeasonPath builds the path to a season archive.
func SeasonPath(basePath string, seasonID int) string {
	return filepath.Join(basePath, seasonsDir, fmt.Sprintf("%d.json", seasonID))
}

// ManifestPath builds the path to the archive manifest.
func ManifestPath(basePath string) string {
	return filepath.Join(basePath, manifestFile)
}
