package testutil

import (
	"context"
	"sync/atomic"

	"nba-surprise-service/internal/gamelog"
	"nba-surprise-service/internal/schedule"
)

// StubScheduleProvider returns the configured schedule and error while counting calls.
// Notify is closed on the first fetch when set.
type StubScheduleProvider struct {
	Schedule *schedule.Schedule
	Err      error
	Calls    atomic.Int32
	Notify   chan struct{}
}

func (s *StubScheduleProvider) FetchSchedule(ctx context.Context) (*schedule.Schedule, error) {
	_ = ctx
	if s.Notify != nil {
		select {
		case <-s.Notify:
		default:
			close(s.Notify)
		}
	}
	s.Calls.Add(1)
	if s.Err != nil {
		return nil, s.Err
	}
	// callers may mutate the schedule
	out := &schedule.Schedule{}
	if s.Schedule != nil {
		for _, slate := range s.Schedule.Slates {
			out.Slates = append(out.Slates, schedule.Slate{
				Date:  slate.Date,
				Games: append([]schedule.Game(nil), slate.Games...),
			})
		}
	}
	return out, nil
}

// StubGameLogProvider returns the configured log and error while counting calls.
type StubGameLogProvider struct {
	Log   *gamelog.Log
	Err   error
	Calls atomic.Int32
}

func (s *StubGameLogProvider) FetchGameLog(ctx context.Context, seasonID int) (*gamelog.Log, error) {
	_ = ctx
	_ = seasonID
	s.Calls.Add(1)
	return s.Log, s.Err
}
