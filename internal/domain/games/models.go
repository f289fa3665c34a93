package games

import (
	"sort"
	"time"

	"nba-surprise-service/internal/domain/teams"
)

// TeamScore is one participant's final score.
type TeamScore struct {
	Team  teams.Code `json:"teamId"`
	Score int        `json:"score"`
}

// Game is a finished game involving at least one candidate team.
// Teams are held in canonical (lexicographic) order.
type Game struct {
	ID       string       `json:"id"`
	PlayedOn string       `json:"playedOn"`
	SeasonID int          `json:"seasonId"`
	Teams    [2]TeamScore `json:"teams"`
}

// FormatID builds the deterministic game id "{playedOn}/{A}__{Z}", with codes sorted.
func FormatID(playedOn string, a, b teams.Code) string {
	if b < a {
		a, b = b, a
	}
	return playedOn + "/" + string(a) + "__" + string(b)
}

// New builds a Game from two participants in any order.
func New(playedOn string, seasonID int, a, b TeamScore) Game {
	if b.Team < a.Team {
		a, b = b, a
	}
	return Game{
		ID:       FormatID(playedOn, a.Team, b.Team),
		PlayedOn: playedOn,
		SeasonID: seasonID,
		Teams:    [2]TeamScore{a, b},
	}
}

// SetScore assigns score to the participant with code, reporting whether it played.
func (g *Game) SetScore(code teams.Code, score int) bool {
	for i := range g.Teams {
		if g.Teams[i].Team == code {
			g.Teams[i].Score = score
			return true
		}
	}
	return false
}

// Involves reports whether any participant is in set.
func (g Game) Involves(set teams.Set) bool {
	return set.Has(g.Teams[0].Team) || set.Has(g.Teams[1].Team)
}

// Opponent splits the game into code's line and the other side's line.
func (g Game) Opponent(code teams.Code) (TeamScore, TeamScore, bool) {
	switch code {
	case g.Teams[0].Team:
		return g.Teams[0], g.Teams[1], true
	case g.Teams[1].Team:
		return g.Teams[1], g.Teams[0], true
	}
	return TeamScore{}, TeamScore{}, false
}

// SortByID orders games by id.
func SortByID(list []Game) {
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
}

// SortByPlayedOn orders games chronologically, breaking ties by id.
func SortByPlayedOn(list []Game) {
	sort.Slice(list, func(i, j int) bool {
		if list[i].PlayedOn != list[j].PlayedOn {
			return list[i].PlayedOn < list[j].PlayedOn
		}
		return list[i].ID < list[j].ID
	})
}

// SeasonGames is the payload returned by /seasons/{id}/games.
// ExpiresAt is epoch milliseconds and is omitted once no further updates are expected.
type SeasonGames struct {
	Games     []Game `json:"games"`
	ExpiresAt *int64 `json:"expiresAt,omitempty"`
}

// NewSeasonGames builds a SeasonGames payload, normalizing nil lists.
func NewSeasonGames(list []Game, expiresAt *time.Time) SeasonGames {
	if list == nil {
		list = []Game{}
	}
	resp := SeasonGames{Games: list}
	if expiresAt != nil {
		ms := expiresAt.UnixMilli()
		resp.ExpiresAt = &ms
	}
	return resp
}

// CacheRecord is the last known game list for a season. A nil ExpiresAt marks
// the record terminal: no further refreshes are attempted.
type CacheRecord struct {
	SeasonID  int
	Games     []Game
	ExpiresAt *time.Time
	UpdatedAt time.Time
}

// Terminal reports whether the record is final for the season.
func (r CacheRecord) Terminal() bool {
	return r.ExpiresAt == nil
}
