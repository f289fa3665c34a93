package archive

import (
	"context"
	"fmt"

	"nba-surprise-service/internal/domain/games"
	"nba-surprise-service/internal/domain/seasons"
	"nba-surprise-service/internal/domain/teams"
	"nba-surprise-service/internal/extract"
	"nba-surprise-service/internal/providers"
)

// SeasonSource produces the verified final game list of a concluded season.
type SeasonSource interface {
	Name() string
	SeasonGames(ctx context.Context, season seasons.Season, candidates teams.Set) ([]games.Game, error)
}

// GameLogSource reads a season from the league game log.
type GameLogSource struct {
	provider providers.GameLogProvider
}

// NewGameLogSource wraps a game log provider.
func NewGameLogSource(provider providers.GameLogProvider) *GameLogSource {
	return &GameLogSource{provider: provider}
}

func (s *GameLogSource) Name() string { return "gamelog" }

func (s *GameLogSource) SeasonGames(ctx context.Context, season seasons.Season, candidates teams.Set) ([]games.Game, error) {
	log, err := s.provider.FetchGameLog(ctx, season.ID)
	if err != nil {
		return nil, fmt.Errorf("fetch game log: %w", err)
	}
	return extract.FromGameLog(log, season, candidates)
}

// ScheduleSource reads a season from the current schedule feed, which only
// covers the most recent season.
type ScheduleSource struct {
	provider providers.ScheduleProvider
}

// NewScheduleSource wraps a schedule provider.
func NewScheduleSource(provider providers.ScheduleProvider) *ScheduleSource {
	return &ScheduleSource{provider: provider}
}

func (s *ScheduleSource) Name() string { return "schedule" }

func (s *ScheduleSource) SeasonGames(ctx context.Context, season seasons.Season, candidates teams.Set) ([]games.Game, error) {
	sched, err := s.provider.FetchSchedule(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch schedule: %w", err)
	}
	return extract.Archival(sched, season, candidates)
}
