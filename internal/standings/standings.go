package standings

import (
	"sort"

	"nba-surprise-service/internal/domain/games"
	"nba-surprise-service/internal/domain/seasons"
	"nba-surprise-service/internal/domain/teams"
)

// TeamLookup resolves team display data.
type TeamLookup interface {
	Team(code teams.Code) (teams.Team, bool)
}

// Standing is one candidate's progress toward a surprise season.
type Standing struct {
	Team                teams.Code `json:"teamId"`
	Name                string     `json:"name"`
	Logo                string     `json:"logo,omitempty"`
	OverUnder           float64    `json:"overUnder"`
	Record              Record     `json:"record"`
	WinPct              float64    `json:"winPct"`
	ProjectedWins       int        `json:"projectedWins"`
	WinsToSurprise      int        `json:"winsToSurprise"`
	Pace                *int       `json:"pace,omitempty"`
	Surprise            bool       `json:"isSurprise"`
	Eliminated          bool       `json:"isEliminated"`
	RemainingToSurprise Record     `json:"recordRemainingToSurprise"`
}

// Table is the standings payload for a season.
type Table struct {
	SeasonID int        `json:"seasonId"`
	Rules    Rules      `json:"rules"`
	Teams    []Standing `json:"teams"`
}

// Build scores every candidate line against list. Rows are ordered by pace,
// best first, with teams yet to play last.
func Build(season seasons.Season, lines []seasons.TeamSeason, lookup TeamLookup, list []games.Game) Table {
	rules := RulesFor(season)
	rows := make([]Standing, 0, len(lines))
	for _, line := range lines {
		rec := RecordFor(line.Team, list)
		row := Standing{
			Team:                line.Team,
			Name:                string(line.Team),
			OverUnder:           line.OverUnder,
			Record:              rec,
			WinPct:              rec.WinPct(),
			ProjectedWins:       rules.ProjectedWins(rec),
			WinsToSurprise:      rules.WinsToSurprise(line.OverUnder),
			Surprise:            rules.IsSurprise(line.OverUnder, rec),
			Eliminated:          rules.IsEliminated(line.OverUnder, rec),
			RemainingToSurprise: rules.RemainingToSurprise(line.OverUnder, rec),
		}
		if rec.Played() > 0 {
			pace := rules.Pace(line.OverUnder, rec)
			row.Pace = &pace
		}
		if lookup != nil {
			if team, ok := lookup.Team(line.Team); ok {
				row.Name = team.NameFor(season.ID)
				row.Logo = team.LogoFor(season.ID)
			}
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i].Pace, rows[j].Pace
		switch {
		case a != nil && b != nil && *a != *b:
			return *a > *b
		case (a == nil) != (b == nil):
			return a != nil
		}
		return rows[i].Team < rows[j].Team
	})

	return Table{SeasonID: season.ID, Rules: rules, Teams: rows}
}
