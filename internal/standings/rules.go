// Package standings scores candidate teams against their preseason lines.
package standings

import (
	"math"

	"nba-surprise-service/internal/domain/games"
	"nba-surprise-service/internal/domain/seasons"
	"nba-surprise-service/internal/domain/teams"
)

// Rules are the thresholds a season's candidates are measured against.
type Rules struct {
	NumGames        int `json:"numGames"`
	OverUnderCutoff int `json:"overUnderCutoff"`
	PaceTarget      int `json:"paceTarget"`
}

// StandardRules apply to full-length seasons.
var StandardRules = Rules{NumGames: seasons.StandardGameCount, OverUnderCutoff: 36, PaceTarget: 10}

// RulesFor scales the standard rules to a shortened season.
func RulesFor(season seasons.Season) Rules {
	if season.Shortened == nil || season.Shortened.NumGames <= 0 {
		return StandardRules
	}
	n := float64(season.Shortened.NumGames)
	std := float64(StandardRules.NumGames)
	return Rules{
		NumGames:        season.Shortened.NumGames,
		OverUnderCutoff: int(math.Ceil(float64(StandardRules.OverUnderCutoff) / std * n)),
		PaceTarget:      int(math.Round(float64(StandardRules.PaceTarget) / std * n)),
	}
}

// Record is a win/loss tally.
type Record struct {
	W int `json:"w"`
	L int `json:"l"`
}

// Played returns the number of decided games.
func (r Record) Played() int {
	return r.W + r.L
}

// WinPct returns the winning percentage, or zero before any games.
func (r Record) WinPct() float64 {
	if r.Played() == 0 {
		return 0
	}
	return float64(r.W) / float64(r.Played())
}

// RecordFor tallies code's wins and losses across list.
func RecordFor(code teams.Code, list []games.Game) Record {
	var rec Record
	for _, g := range list {
		self, opp, ok := g.Opponent(code)
		if !ok {
			continue
		}
		switch {
		case self.Score > opp.Score:
			rec.W++
		case self.Score < opp.Score:
			rec.L++
		}
	}
	return rec
}

// WinsToSurprise is the win total that clears the line by the pace target.
func (r Rules) WinsToSurprise(overUnder float64) int {
	return int(math.Ceil(overUnder + float64(r.PaceTarget)))
}

// ProjectedWins extrapolates the current winning percentage over the season.
func (r Rules) ProjectedWins(rec Record) int {
	return int(math.Floor(float64(r.NumGames) * rec.WinPct()))
}

// Pace is projected wins minus wins to surprise.
func (r Rules) Pace(overUnder float64, rec Record) int {
	return r.ProjectedWins(rec) - r.WinsToSurprise(overUnder)
}

// IsSurprise reports whether the team has already reached its surprise total.
func (r Rules) IsSurprise(overUnder float64, rec Record) bool {
	return rec.W >= r.WinsToSurprise(overUnder)
}

// IsEliminated reports whether the remaining games cannot reach the surprise total.
func (r Rules) IsEliminated(overUnder float64, rec Record) bool {
	return r.WinsToSurprise(overUnder)-rec.W > r.NumGames-rec.Played()
}

// RemainingToSurprise is the record over the remaining games that reaches
// the surprise total exactly.
func (r Rules) RemainingToSurprise(overUnder float64, rec Record) Record {
	winsRemaining := r.WinsToSurprise(overUnder) - rec.W
	gamesRemaining := r.NumGames - rec.Played()
	return Record{W: winsRemaining, L: gamesRemaining - winsRemaining}
}
