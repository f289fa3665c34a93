// Package freshness decides when cached season data must be refetched and
// estimates when the next relevant result should be available.
package freshness

import (
	"time"

	"nba-surprise-service/internal/domain/games"
	"nba-surprise-service/internal/domain/teams"
	"nba-surprise-service/internal/schedule"
	"nba-surprise-service/internal/timeutil"
)

const (
	// GameWindow approximates how long after kickoff a final score is published:
	// about two and a quarter hours of play plus ten minutes of feed lag.
	GameWindow = 145 * time.Minute
	// RetryInterval is used when a game should already be final but is not.
	RetryInterval = 5 * time.Minute
)

// Reason describes why a decision was made.
type Reason string

const (
	ReasonCold     Reason = "cold"
	ReasonTerminal Reason = "terminal"
	ReasonExpired  Reason = "expired"
	ReasonFresh    Reason = "fresh"
)

// Decision is the outcome of evaluating a cache record.
type Decision struct {
	Refresh bool
	Reason  Reason
}

// Decide reports whether record must be refreshed at now. A missing record
// always refreshes; a terminal record never does.
func Decide(record *games.CacheRecord, now time.Time) Decision {
	switch {
	case record == nil:
		return Decision{Refresh: true, Reason: ReasonCold}
	case record.Terminal():
		return Decision{Refresh: false, Reason: ReasonTerminal}
	case !record.ExpiresAt.After(now):
		return Decision{Refresh: true, Reason: ReasonExpired}
	default:
		return Decision{Refresh: false, Reason: ReasonFresh}
	}
}

// NextExpiration finds the first slate on or after today (Eastern) with an
// unfinished candidate game and estimates when its earliest game will be
// final. A nil result means no further candidate games remain.
func NextExpiration(s *schedule.Schedule, candidates teams.Set, now time.Time) *time.Time {
	if s == nil {
		return nil
	}
	today := timeutil.EasternDate(now)

	var (
		found    bool
		earliest time.Time
	)
	for _, slate := range s.Slates {
		if slate.Date < today {
			continue
		}
		for _, g := range slate.Games {
			if g.HasScore() || !g.Involves(candidates) {
				continue
			}
			found = true
			if !g.Kickoff.IsZero() && (earliest.IsZero() || g.Kickoff.Before(earliest)) {
				earliest = g.Kickoff
			}
		}
		if found {
			break
		}
	}
	if !found {
		return nil
	}

	expires := now.Add(RetryInterval)
	if !earliest.IsZero() {
		if final := earliest.Add(GameWindow); final.After(now) {
			expires = final
		}
	}
	return &expires
}
