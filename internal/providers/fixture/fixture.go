// Package fixture provides an offline schedule for local development.
package fixture

import (
	"context"
	"time"

	"nba-surprise-service/internal/domain/teams"
	"nba-surprise-service/internal/schedule"
	"nba-surprise-service/internal/timeutil"
)

const (
	pastDays   = 3
	futureDays = 2
	// 7:30pm Eastern tip-off.
	tipHour   = 19
	tipMinute = 30
)

// Provider returns a small schedule around the current date. Slates before
// today carry finals; today and later are unplayed.
type Provider struct {
	codes []teams.Code
	now   func() time.Time
}

// New creates a fixture provider pairing the given teams.
func New(codes []teams.Code) *Provider {
	return &Provider{
		codes: append([]teams.Code(nil), codes...),
		now:   time.Now,
	}
}

// FetchSchedule returns a deterministic schedule relative to now.
func (p *Provider) FetchSchedule(ctx context.Context) (*schedule.Schedule, error) {
	_ = ctx

	loc := timeutil.Eastern()
	today := p.now().In(loc)
	base := time.Date(today.Year(), today.Month(), today.Day(), tipHour, tipMinute, 0, 0, loc)

	out := &schedule.Schedule{}
	for offset := -pastDays; offset <= futureDays; offset++ {
		day := base.AddDate(0, 0, offset)
		slate := schedule.Slate{Date: timeutil.FormatDate(day)}

		for i := 0; i+1 < len(p.codes); i += 2 {
			// rotate pairings so each day produces different matchups
			home := p.codes[(i+offset+len(p.codes)*pastDays)%len(p.codes)]
			away := p.codes[(i+1+offset+len(p.codes)*pastDays)%len(p.codes)]
			g := schedule.Game{
				Home:    schedule.TeamResult{Team: home},
				Away:    schedule.TeamResult{Team: away},
				Kickoff: day.UTC(),
			}
			if offset < 0 {
				g.Home.Score = 100 + (i*7+offset*3+30)%25
				g.Away.Score = 95 + (i*5+offset*11+40)%25
				if g.Home.Score == g.Away.Score {
					g.Away.Score++
				}
			}
			slate.Games = append(slate.Games, g)
		}
		out.Slates = append(out.Slates, slate)
	}
	return out, nil
}
