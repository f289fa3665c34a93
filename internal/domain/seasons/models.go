package seasons

import "nba-surprise-service/internal/domain/teams"

// StandardGameCount is the length of a full regular season per team.
const StandardGameCount = 82

// Shortened describes a season played with fewer games than usual.
type Shortened struct {
	NumGames int    `json:"numGames"`
	Reason   string `json:"reason,omitempty"`
}

// Season is one regular season, keyed by the year its schedule opens.
// StartDate and EndDate are inclusive league (Eastern) calendar dates.
type Season struct {
	ID        int        `json:"id"`
	StartDate string     `json:"startDate"`
	EndDate   string     `json:"endDate"`
	Shortened *Shortened `json:"shortened,omitempty"`
}

// Phase is a season's position relative to a calendar date.
type Phase string

const (
	PhaseUpcoming  Phase = "upcoming"
	PhaseInSeason  Phase = "in_season"
	PhaseConcluded Phase = "concluded"
)

// PhaseOn classifies the season against a YYYY-MM-DD date.
func (s Season) PhaseOn(date string) Phase {
	switch {
	case date < s.StartDate:
		return PhaseUpcoming
	case date > s.EndDate:
		return PhaseConcluded
	default:
		return PhaseInSeason
	}
}

// Contains reports whether date falls within the season bounds.
func (s Season) Contains(date string) bool {
	return date >= s.StartDate && date <= s.EndDate
}

// ExpectedGames returns how many games each team plays this season.
func (s Season) ExpectedGames() int {
	if s.Shortened != nil && s.Shortened.NumGames > 0 {
		return s.Shortened.NumGames
	}
	return StandardGameCount
}

// TeamSeason records a team's preseason over/under win total for a season.
type TeamSeason struct {
	SeasonID  int        `json:"seasonId"`
	Team      teams.Code `json:"teamId"`
	OverUnder float64    `json:"overUnder"`
}
