package extract

import (
	"nba-surprise-service/internal/domain/games"
	"nba-surprise-service/internal/domain/seasons"
	"nba-surprise-service/internal/domain/teams"
	"nba-surprise-service/internal/schedule"
)

// Live returns finished candidate games from the schedule dated within the
// season and no later than today.
func Live(s *schedule.Schedule, season seasons.Season, candidates teams.Set, today string) []games.Game {
	return reduceSchedule(s, season, candidates, today).Games
}

// Scored returns every finished candidate game dated within the season,
// whatever the current date.
func Scored(s *schedule.Schedule, season seasons.Season, candidates teams.Set) []games.Game {
	return reduceSchedule(s, season, candidates, "").Games
}

// Archival returns every finished candidate game of a concluded season and
// fails if the season is incomplete or inconsistent.
func Archival(s *schedule.Schedule, season seasons.Season, candidates teams.Set) ([]games.Game, error) {
	res := reduceSchedule(s, season, candidates, "")
	if err := Verify(season, candidates, res); err != nil {
		return nil, err
	}
	return res.Games, nil
}

func reduceSchedule(s *schedule.Schedule, season seasons.Season, candidates teams.Set, through string) Result {
	r := newReducer(season.ID, candidates)
	if s == nil {
		return r.result()
	}
	for _, slate := range s.Slates {
		if !season.Contains(slate.Date) {
			continue
		}
		if through != "" && slate.Date > through {
			continue
		}
		for _, sg := range slate.Games {
			if !sg.HasScore() || !sg.Involves(candidates) {
				continue
			}
			g, created := r.game(slate.Date, sg.Home.Team, sg.Away.Team)
			g.SetScore(sg.Home.Team, sg.Home.Score)
			g.SetScore(sg.Away.Team, sg.Away.Score)
			if created {
				r.count(sg.Home.Team)
				r.count(sg.Away.Team)
			}
		}
	}
	return r.result()
}
