// Package archive stores the final game lists of concluded seasons and the
// pipeline that produces them.
package archive

import "nba-surprise-service/internal/domain/games"

// Document is the on-disk form of an archived season.
type Document struct {
	SeasonID int          `json:"seasonId"`
	Source   string       `json:"source"`
	Games    []games.Game `json:"games"`
}
