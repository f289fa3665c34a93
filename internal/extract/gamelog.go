package extract

import (
	"fmt"

	"nba-surprise-service/internal/domain/games"
	"nba-surprise-service/internal/domain/seasons"
	"nba-surprise-service/internal/domain/teams"
	"nba-surprise-service/internal/gamelog"
)

// FromGameLog reduces a concluded season's team game log. Each game appears
// once per participant; both lines merge into one game. The result is
// verified before it is returned.
func FromGameLog(log *gamelog.Log, season seasons.Season, candidates teams.Set) ([]games.Game, error) {
	res, err := reduceGameLog(log, season, candidates)
	if err != nil {
		return nil, err
	}
	if err := Verify(season, candidates, res); err != nil {
		return nil, err
	}
	return res.Games, nil
}

func reduceGameLog(log *gamelog.Log, season seasons.Season, candidates teams.Set) (Result, error) {
	r := newReducer(season.ID, candidates)
	if log == nil {
		return r.result(), nil
	}
	for _, row := range log.Rows {
		t1, t2, err := row.Matchup()
		if err != nil {
			return Result{}, err
		}
		if !candidates.Has(t1) && !candidates.Has(t2) {
			continue
		}
		entry, err := row.Entry()
		if err != nil {
			return Result{}, err
		}

		g, _ := r.game(entry.PlayedOn, t1, t2)
		if !g.SetScore(entry.Team, entry.Points) {
			return Result{}, &gamelog.SchemaError{
				Path: "rowSet",
				Err:  fmt.Errorf("team %s is not part of matchup %s", entry.Team, g.ID),
			}
		}
		r.count(entry.Team)
	}
	return r.result(), nil
}
