// Package catalog holds the static reference data: seasons, teams and the
// preseason over/under lines that select each season's candidate teams.
package catalog

import (
	"embed"
	"encoding/json"
	"fmt"
	"sort"

	"nba-surprise-service/internal/domain/seasons"
	"nba-surprise-service/internal/domain/teams"
	"nba-surprise-service/internal/timeutil"
)

//go:embed data/*.json
var dataFS embed.FS

// Catalog is an immutable, validated view of the reference data.
type Catalog struct {
	seasons     []seasons.Season
	byID        map[int]seasons.Season
	teams       map[teams.Code]teams.Team
	teamSeasons map[int][]seasons.TeamSeason
}

// Load parses and validates the embedded reference data.
func Load() (*Catalog, error) {
	read := func(name string) ([]byte, error) {
		return dataFS.ReadFile("data/" + name)
	}
	seasonsJSON, err := read("seasons.json")
	if err != nil {
		return nil, err
	}
	teamsJSON, err := read("teams.json")
	if err != nil {
		return nil, err
	}
	teamSeasonsJSON, err := read("team_seasons.json")
	if err != nil {
		return nil, err
	}
	return Parse(seasonsJSON, teamsJSON, teamSeasonsJSON)
}

// Parse builds a Catalog from raw JSON documents, enforcing referential and
// ordering invariants.
func Parse(seasonsJSON, teamsJSON, teamSeasonsJSON []byte) (*Catalog, error) {
	var (
		seasonList []seasons.Season
		teamList   []teams.Team
		lines      []seasons.TeamSeason
	)
	if err := json.Unmarshal(seasonsJSON, &seasonList); err != nil {
		return nil, fmt.Errorf("decode seasons: %w", err)
	}
	if err := json.Unmarshal(teamsJSON, &teamList); err != nil {
		return nil, fmt.Errorf("decode teams: %w", err)
	}
	if err := json.Unmarshal(teamSeasonsJSON, &lines); err != nil {
		return nil, fmt.Errorf("decode team seasons: %w", err)
	}

	c := &Catalog{
		byID:        make(map[int]seasons.Season, len(seasonList)),
		teams:       make(map[teams.Code]teams.Team, len(teamList)),
		teamSeasons: make(map[int][]seasons.TeamSeason),
	}

	for _, s := range seasonList {
		if err := validateSeason(s); err != nil {
			return nil, err
		}
		if _, dup := c.byID[s.ID]; dup {
			return nil, fmt.Errorf("season %d defined twice", s.ID)
		}
		c.byID[s.ID] = s
		c.seasons = append(c.seasons, s)
	}
	sort.Slice(c.seasons, func(i, j int) bool { return c.seasons[i].StartDate < c.seasons[j].StartDate })
	for i := 1; i < len(c.seasons); i++ {
		prev, cur := c.seasons[i-1], c.seasons[i]
		if cur.StartDate <= prev.EndDate {
			return nil, fmt.Errorf("season %d overlaps season %d", cur.ID, prev.ID)
		}
		if cur.ID <= prev.ID {
			return nil, fmt.Errorf("season %d starts after season %d", prev.ID, cur.ID)
		}
	}

	for _, t := range teamList {
		if !t.Code.Valid() {
			return nil, fmt.Errorf("invalid team code %q", t.Code)
		}
		if _, dup := c.teams[t.Code]; dup {
			return nil, fmt.Errorf("team %s defined twice", t.Code)
		}
		c.teams[t.Code] = t
	}

	seen := make(map[string]struct{}, len(lines))
	for _, ts := range lines {
		if _, ok := c.byID[ts.SeasonID]; !ok {
			return nil, fmt.Errorf("team season %s references unknown season %d", ts.Team, ts.SeasonID)
		}
		if _, ok := c.teams[ts.Team]; !ok {
			return nil, fmt.Errorf("team season %d references unknown team %s", ts.SeasonID, ts.Team)
		}
		key := fmt.Sprintf("%d/%s", ts.SeasonID, ts.Team)
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("team season %s defined twice", key)
		}
		seen[key] = struct{}{}
		c.teamSeasons[ts.SeasonID] = append(c.teamSeasons[ts.SeasonID], ts)
	}
	for id := range c.teamSeasons {
		list := c.teamSeasons[id]
		sort.Slice(list, func(i, j int) bool { return list[i].Team < list[j].Team })
	}

	return c, nil
}

func validateSeason(s seasons.Season) error {
	start, err := timeutil.ParseDate(s.StartDate)
	if err != nil {
		return fmt.Errorf("season %d start date: %w", s.ID, err)
	}
	end, err := timeutil.ParseDate(s.EndDate)
	if err != nil {
		return fmt.Errorf("season %d end date: %w", s.ID, err)
	}
	if !start.Before(end) {
		return fmt.Errorf("season %d starts on or after its end", s.ID)
	}
	if s.Shortened != nil && (s.Shortened.NumGames <= 0 || s.Shortened.NumGames >= seasons.StandardGameCount) {
		return fmt.Errorf("season %d has invalid shortened game count %d", s.ID, s.Shortened.NumGames)
	}
	return nil
}

// Season looks up a season by id.
func (c *Catalog) Season(id int) (seasons.Season, bool) {
	s, ok := c.byID[id]
	return s, ok
}

// Seasons returns all seasons in chronological order.
func (c *Catalog) Seasons() []seasons.Season {
	return append([]seasons.Season(nil), c.seasons...)
}

// Latest returns the most recent season in the catalog.
func (c *Catalog) Latest() (seasons.Season, bool) {
	if len(c.seasons) == 0 {
		return seasons.Season{}, false
	}
	return c.seasons[len(c.seasons)-1], true
}

// Current returns the season in progress on date, or the next one to start.
func (c *Catalog) Current(date string) (seasons.Season, bool) {
	for _, s := range c.seasons {
		if date <= s.EndDate {
			return s, true
		}
	}
	return seasons.Season{}, false
}

// Archivable returns seasons whose end date is before date, oldest first.
func (c *Catalog) Archivable(date string) []seasons.Season {
	var out []seasons.Season
	for _, s := range c.seasons {
		if s.PhaseOn(date) == seasons.PhaseConcluded {
			out = append(out, s)
		}
	}
	return out
}

// LatestArchivable returns the most recently concluded season.
func (c *Catalog) LatestArchivable(date string) (seasons.Season, bool) {
	list := c.Archivable(date)
	if len(list) == 0 {
		return seasons.Season{}, false
	}
	return list[len(list)-1], true
}

// TeamSeasons returns the candidate lines for a season, ordered by team code.
func (c *Catalog) TeamSeasons(seasonID int) []seasons.TeamSeason {
	return append([]seasons.TeamSeason(nil), c.teamSeasons[seasonID]...)
}

// Candidates returns the set of candidate team codes for a season.
func (c *Catalog) Candidates(seasonID int) teams.Set {
	lines := c.teamSeasons[seasonID]
	set := make(teams.Set, len(lines))
	for _, ts := range lines {
		set[ts.Team] = struct{}{}
	}
	return set
}

// Team looks up a team by canonical code.
func (c *Catalog) Team(code teams.Code) (teams.Team, bool) {
	t, ok := c.teams[code]
	return t, ok
}

// TeamCodes returns every team code, sorted.
func (c *Catalog) TeamCodes() []teams.Code {
	out := make([]teams.Code, 0, len(c.teams))
	for code := range c.teams {
		out = append(out, code)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
