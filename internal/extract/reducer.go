// Package extract reduces raw league feeds into the deduplicated, sorted list
// of finished games involving a season's candidate teams.
package extract

import (
	"nba-surprise-service/internal/domain/games"
	"nba-surprise-service/internal/domain/teams"
)

// Result is a reduced season along with the counters used for integrity checks.
type Result struct {
	Games []games.Game
	// Counts is the number of games seen per candidate.
	Counts map[teams.Code]int
	// Total counts each distinct game id once, as it is first seen.
	Total int
}

type reducer struct {
	seasonID   int
	candidates teams.Set
	byID       map[string]*games.Game
	counts     map[teams.Code]int
	total      int
}

func newReducer(seasonID int, candidates teams.Set) *reducer {
	counts := make(map[teams.Code]int, len(candidates))
	for code := range candidates {
		counts[code] = 0
	}
	return &reducer{
		seasonID:   seasonID,
		candidates: candidates,
		byID:       make(map[string]*games.Game),
		counts:     counts,
	}
}

// game returns the game for the matchup, creating it on first sight.
func (r *reducer) game(playedOn string, a, b teams.Code) (*games.Game, bool) {
	id := games.FormatID(playedOn, a, b)
	if g, ok := r.byID[id]; ok {
		return g, false
	}
	g := games.New(playedOn, r.seasonID, games.TeamScore{Team: a}, games.TeamScore{Team: b})
	r.byID[id] = &g
	r.total++
	return &g, true
}

func (r *reducer) count(code teams.Code) {
	if _, ok := r.candidates[code]; ok {
		r.counts[code]++
	}
}

func (r *reducer) result() Result {
	list := make([]games.Game, 0, len(r.byID))
	for _, g := range r.byID {
		list = append(list, *g)
	}
	games.SortByID(list)
	return Result{Games: list, Counts: r.counts, Total: r.total}
}
