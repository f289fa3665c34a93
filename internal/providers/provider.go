package providers

import (
	"context"

	"nba-surprise-service/internal/gamelog"
	"nba-surprise-service/internal/schedule"
)

// ScheduleProvider fetches the league's current season schedule. Implementations
// return a validated schedule or an error; they never return partial data.
type ScheduleProvider interface {
	FetchSchedule(ctx context.Context) (*schedule.Schedule, error)
}

// GameLogProvider fetches the per-team game log of a regular season.
type GameLogProvider interface {
	FetchGameLog(ctx context.Context, seasonID int) (*gamelog.Log, error)
}
