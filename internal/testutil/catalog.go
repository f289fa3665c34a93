package testutil

import (
	"testing"

	"nba-surprise-service/internal/catalog"
)

const (
	testSeasonsJSON = `[
		{"id": 2023, "startDate": "2023-10-24", "endDate": "2024-04-14"},
		{"id": 2024, "startDate": "2024-10-22", "endDate": "2025-04-13"},
		{"id": 2025, "startDate": "2025-10-21", "endDate": "2026-04-12"}
	]`
	testTeamsJSON = `[
		{"id": "BOS", "name": "Boston Celtics", "logo": "shamrock"},
		{"id": "CHA", "name": "Charlotte Hornets", "logo": "hornet"},
		{"id": "DET", "name": "Detroit Pistons", "logo": "piston"},
		{"id": "MIA", "name": "Miami Heat", "logo": "flame"},
		{"id": "NYK", "name": "New York Knicks", "logo": "apple"}
	]`
	testTeamSeasonsJSON = `[
		{"seasonId": 2023, "teamId": "DET", "overUnder": 27.5},
		{"seasonId": 2024, "teamId": "BOS", "overUnder": 58.5},
		{"seasonId": 2024, "teamId": "MIA", "overUnder": 44.5},
		{"seasonId": 2025, "teamId": "CHA", "overUnder": 19.5}
	]`
)

// NewCatalog returns a small catalog: 2023 (concluded in late 2024),
// 2024 (candidates BOS and MIA) and 2025.
func NewCatalog(t testing.TB) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Parse([]byte(testSeasonsJSON), []byte(testTeamsJSON), []byte(testTeamSeasonsJSON))
	if err != nil {
		t.Fatalf("failed to build test catalog: %v", err)
	}
	return c
}
