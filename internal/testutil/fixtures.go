package testutil

import (
	"time"

	"nba-surprise-service/internal/domain/games"
	"nba-surprise-service/internal/domain/teams"
	"nba-surprise-service/internal/schedule"
)

// SampleGame returns a finished game.
func SampleGame(playedOn string, seasonID int, a teams.Code, scoreA int, b teams.Code, scoreB int) games.Game {
	return games.New(playedOn, seasonID, games.TeamScore{Team: a, Score: scoreA}, games.TeamScore{Team: b, Score: scoreB})
}

// ScheduledGame builds a schedule entry; zero scores mean unplayed.
func ScheduledGame(home teams.Code, homeScore int, away teams.Code, awayScore int, kickoff time.Time) schedule.Game {
	return schedule.Game{
		Home:    schedule.TeamResult{Team: home, Score: homeScore},
		Away:    schedule.TeamResult{Team: away, Score: awayScore},
		Kickoff: kickoff.UTC(),
	}
}

// BostonMiamiSchedule is an early 2024 season: BOS beat MIA on Nov 1, a
// non-candidate game on Nov 3, and BOS hosts NYK unplayed on Nov 5 at 7:30pm Eastern.
func BostonMiamiSchedule() *schedule.Schedule {
	return &schedule.Schedule{Slates: []schedule.Slate{
		{Date: "2024-10-04", Games: []schedule.Game{
			ScheduledGame("BOS", 120, "DEN", 110, Eastern(2024, time.October, 4, 12, 0)),
		}},
		{Date: "2024-11-01", Games: []schedule.Game{
			ScheduledGame("MIA", 106, "BOS", 108, Eastern(2024, time.November, 1, 19, 30)),
		}},
		{Date: "2024-11-03", Games: []schedule.Game{
			ScheduledGame("DET", 99, "NYK", 101, Eastern(2024, time.November, 3, 18, 0)),
		}},
		{Date: "2024-11-05", Games: []schedule.Game{
			ScheduledGame("BOS", 0, "NYK", 0, Eastern(2024, time.November, 5, 19, 30)),
		}},
	}}
}
