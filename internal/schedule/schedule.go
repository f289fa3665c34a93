// Package schedule decodes the league's season schedule feed into a
// chronological list of game dates.
package schedule

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"nba-surprise-service/internal/domain/teams"
	"nba-surprise-service/internal/timeutil"
)

// gameDateLayout is the feed's slate date format, e.g. "10/04/2024 00:00:00".
const gameDateLayout = "01/02/2006"

// TeamResult is one side of a scheduled game. A zero score means no result yet.
type TeamResult struct {
	Team  teams.Code
	Score int
}

// Game is one scheduled game. Kickoff is zero when the feed's timestamp is unusable.
type Game struct {
	Home    TeamResult
	Away    TeamResult
	Kickoff time.Time
}

// HasScore reports whether the game carries a final score for both sides.
func (g Game) HasScore() bool {
	return g.Home.Score != 0 && g.Away.Score != 0
}

// Involves reports whether either side is a candidate.
func (g Game) Involves(candidates teams.Set) bool {
	return candidates.Has(g.Home.Team) || candidates.Has(g.Away.Team)
}

// Slate is every game scheduled on one league calendar date (YYYY-MM-DD).
type Slate struct {
	Date  string
	Games []Game
}

// Schedule is a parsed feed with slates in chronological order.
type Schedule struct {
	Slates []Slate
}

// Between returns the slates dated within [from, through], inclusive.
func (s *Schedule) Between(from, through string) *Schedule {
	if s == nil {
		return &Schedule{}
	}
	out := &Schedule{}
	for _, slate := range s.Slates {
		if slate.Date >= from && slate.Date <= through {
			out.Slates = append(out.Slates, slate)
		}
	}
	return out
}

type rawTeam struct {
	Score       *float64 `json:"score"`
	TeamTricode *string  `json:"teamTricode"`
}

type rawGame struct {
	HomeTeam        *rawTeam `json:"homeTeam"`
	AwayTeam        *rawTeam `json:"awayTeam"`
	GameDateTimeUTC *string  `json:"gameDateTimeUTC"`
}

type rawSlate struct {
	GameDate *string    `json:"gameDate"`
	Games    *[]rawGame `json:"games"`
}

type rawFeed struct {
	LeagueSchedule *struct {
		GameDates *[]rawSlate `json:"gameDates"`
	} `json:"leagueSchedule"`
}

// Parse validates and decodes a schedule document. Unknown fields are ignored;
// missing or mistyped required fields yield a *SchemaError.
func Parse(data []byte) (*Schedule, error) {
	var feed rawFeed
	if err := json.Unmarshal(data, &feed); err != nil {
		return nil, &SchemaError{Path: "$", Err: err}
	}
	if feed.LeagueSchedule == nil {
		return nil, schemaErrorf("leagueSchedule", "missing")
	}
	if feed.LeagueSchedule.GameDates == nil {
		return nil, schemaErrorf("leagueSchedule.gameDates", "missing")
	}

	rawSlates := *feed.LeagueSchedule.GameDates
	out := &Schedule{Slates: make([]Slate, 0, len(rawSlates))}
	for i, rs := range rawSlates {
		path := fmt.Sprintf("leagueSchedule.gameDates[%d]", i)
		slate, err := parseSlate(path, rs)
		if err != nil {
			return nil, err
		}
		out.Slates = append(out.Slates, slate)
	}

	sort.SliceStable(out.Slates, func(i, j int) bool { return out.Slates[i].Date < out.Slates[j].Date })
	return out, nil
}

func parseSlate(path string, rs rawSlate) (Slate, error) {
	if rs.GameDate == nil {
		return Slate{}, schemaErrorf(path+".gameDate", "missing")
	}
	date, err := ParseGameDate(*rs.GameDate)
	if err != nil {
		return Slate{}, &SchemaError{Path: path + ".gameDate", Err: err}
	}
	if rs.Games == nil {
		return Slate{}, schemaErrorf(path+".games", "missing")
	}

	slate := Slate{Date: date, Games: make([]Game, 0, len(*rs.Games))}
	for j, rg := range *rs.Games {
		gamePath := fmt.Sprintf("%s.games[%d]", path, j)
		game, err := parseGame(gamePath, rg)
		if err != nil {
			return Slate{}, err
		}
		slate.Games = append(slate.Games, game)
	}
	return slate, nil
}

func parseGame(path string, rg rawGame) (Game, error) {
	home, err := parseTeam(path+".homeTeam", rg.HomeTeam)
	if err != nil {
		return Game{}, err
	}
	away, err := parseTeam(path+".awayTeam", rg.AwayTeam)
	if err != nil {
		return Game{}, err
	}
	if rg.GameDateTimeUTC == nil {
		return Game{}, schemaErrorf(path+".gameDateTimeUTC", "missing")
	}
	game := Game{Home: home, Away: away}
	if kickoff, err := time.Parse(time.RFC3339, *rg.GameDateTimeUTC); err == nil {
		game.Kickoff = kickoff.UTC()
	}
	return game, nil
}

func parseTeam(path string, rt *rawTeam) (TeamResult, error) {
	if rt == nil {
		return TeamResult{}, schemaErrorf(path, "missing")
	}
	if rt.Score == nil {
		return TeamResult{}, schemaErrorf(path+".score", "missing")
	}
	if rt.TeamTricode == nil {
		return TeamResult{}, schemaErrorf(path+".teamTricode", "missing")
	}
	return TeamResult{
		Team:  teams.Canonical(*rt.TeamTricode),
		Score: int(math.Round(*rt.Score)),
	}, nil
}

// ParseGameDate converts the feed's "MM/DD/YYYY HH:mm:ss" slate date to YYYY-MM-DD.
func ParseGameDate(value string) (string, error) {
	datePart, _, _ := strings.Cut(strings.TrimSpace(value), " ")
	parsed, err := time.Parse(gameDateLayout, datePart)
	if err != nil {
		return "", fmt.Errorf("invalid game date %q: %w", value, err)
	}
	return timeutil.FormatDate(parsed), nil
}
