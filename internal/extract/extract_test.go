package extract

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nba-surprise-service/internal/domain/games"
	"nba-surprise-service/internal/domain/seasons"
	"nba-surprise-service/internal/domain/teams"
	"nba-surprise-service/internal/gamelog"
	"nba-surprise-service/internal/schedule"
)

var season2024 = seasons.Season{ID: 2024, StartDate: "2024-10-22", EndDate: "2025-04-13"}

func played(home string, homeScore int, away string, awayScore int) schedule.Game {
	return schedule.Game{
		Home:    schedule.TeamResult{Team: teams.Code(home), Score: homeScore},
		Away:    schedule.TeamResult{Team: teams.Code(away), Score: awayScore},
		Kickoff: time.Date(2024, 11, 1, 23, 30, 0, 0, time.UTC),
	}
}

func TestLiveKeepsScoredCandidateGamesThroughToday(t *testing.T) {
	sched := &schedule.Schedule{Slates: []schedule.Slate{
		{Date: "2024-10-04", Games: []schedule.Game{played("BOS", 130, "DEN", 104)}},
		{Date: "2024-11-01", Games: []schedule.Game{
			played("MIA", 106, "BOS", 108),
			played("CHA", 115, "ATL", 104),
			played("NYK", 100, "PHI", 90),
		}},
		{Date: "2024-11-02", Games: []schedule.Game{played("MIA", 0, "BOS", 0)}},
		{Date: "2024-11-03", Games: []schedule.Game{played("BOS", 99, "CHA", 98)}},
	}}

	got := Live(sched, season2024, teams.NewSet("BOS", "CHA"), "2024-11-02")

	require.Len(t, got, 2)
	assert.Equal(t, "2024-11-01/ATL__CHA", got[0].ID)
	assert.Equal(t, "2024-11-01/BOS__MIA", got[1].ID)
	assert.Equal(t, games.TeamScore{Team: "BOS", Score: 108}, got[1].Teams[0])
	assert.Equal(t, games.TeamScore{Team: "MIA", Score: 106}, got[1].Teams[1])
	assert.Equal(t, 2024, got[1].SeasonID)
}

func TestScoredIgnoresToday(t *testing.T) {
	sched := &schedule.Schedule{Slates: []schedule.Slate{
		{Date: "2024-10-04", Games: []schedule.Game{played("BOS", 130, "DEN", 104)}},
		{Date: "2024-11-01", Games: []schedule.Game{played("MIA", 106, "BOS", 108)}},
		{Date: "2025-03-30", Games: []schedule.Game{played("BOS", 111, "CHA", 97)}},
		{Date: "2025-04-02", Games: []schedule.Game{played("BOS", 0, "CHA", 0)}},
	}}

	got := Scored(sched, season2024, teams.NewSet("BOS", "CHA"))

	require.Len(t, got, 2)
	assert.Equal(t, "2024-11-01/BOS__MIA", got[0].ID)
	assert.Equal(t, "2025-03-30/BOS__CHA", got[1].ID)
}

func TestLiveMergesDuplicateListings(t *testing.T) {
	sched := &schedule.Schedule{Slates: []schedule.Slate{
		{Date: "2024-11-01", Games: []schedule.Game{
			played("MIA", 106, "BOS", 108),
			played("BOS", 108, "MIA", 106),
		}},
	}}

	res := reduceSchedule(sched, season2024, teams.NewSet("BOS", "MIA"), "2024-11-01")

	require.Len(t, res.Games, 1)
	assert.Equal(t, 1, res.Total)
	assert.Equal(t, 1, res.Counts["BOS"])
	assert.Equal(t, 1, res.Counts["MIA"])
}

func TestLiveIsOrderIndependent(t *testing.T) {
	slate := []schedule.Game{
		played("MIA", 106, "BOS", 108),
		played("CHA", 115, "ATL", 104),
		played("UTA", 101, "DET", 95),
		played("WAS", 88, "CHI", 97),
	}
	candidates := teams.NewSet("BOS", "CHA", "DET", "CHI")
	want := Live(&schedule.Schedule{Slates: []schedule.Slate{{Date: "2024-11-01", Games: slate}}}, season2024, candidates, "2024-11-01")

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		shuffled := append([]schedule.Game(nil), slate...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		got := Live(&schedule.Schedule{Slates: []schedule.Slate{{Date: "2024-11-01", Games: shuffled}}}, season2024, candidates, "2024-11-01")
		assert.Equal(t, want, got)
	}
}

func TestLiveNilSchedule(t *testing.T) {
	assert.Empty(t, Live(nil, season2024, teams.NewSet("BOS"), "2024-11-01"))
}

// fullSeason builds a schedule where each candidate plays n scored games.
func fullSeason(season seasons.Season, n int, pairs ...[2]string) *schedule.Schedule {
	start, _ := time.Parse("2006-01-02", season.StartDate)
	sched := &schedule.Schedule{}
	for i := 0; i < n; i++ {
		slate := schedule.Slate{Date: start.AddDate(0, 0, i).Format("2006-01-02")}
		for _, p := range pairs {
			slate.Games = append(slate.Games, played(p[0], 100+i, p[1], 90+i))
		}
		sched.Slates = append(sched.Slates, slate)
	}
	return sched
}

func TestArchivalPassesForCompleteSeason(t *testing.T) {
	short := seasons.Season{ID: 2011, StartDate: "2011-12-25", EndDate: "2012-04-26", Shortened: &seasons.Shortened{NumGames: 4}}
	sched := fullSeason(short, 4, [2]string{"CHA", "CLE"}, [2]string{"BOS", "NYK"})

	got, err := Archival(sched, short, teams.NewSet("CHA", "CLE"))

	require.NoError(t, err)
	assert.Len(t, got, 4)
}

func TestArchivalFailsForIncompleteSeason(t *testing.T) {
	sched := fullSeason(season2024, 3, [2]string{"BOS", "MIA"})

	_, err := Archival(sched, season2024, teams.NewSet("BOS", "CHA"))

	require.Error(t, err)
	ie, ok := AsIntegrityError(err)
	require.True(t, ok)
	assert.Equal(t, 82, ie.Expected)
	assert.Equal(t, map[teams.Code]int{"BOS": 3, "CHA": 0}, ie.Mismatched)
	assert.Contains(t, ie.Error(), "expected 82 games for each team")
}

func TestVerifyDetectsCounterMismatchAndUnscoredGames(t *testing.T) {
	short := seasons.Season{ID: 2020, StartDate: "2020-12-22", EndDate: "2021-05-16", Shortened: &seasons.Shortened{NumGames: 1}}
	res := Result{
		Games: []games.Game{
			games.New("2020-12-23", 2020, games.TeamScore{Team: "CHA", Score: 0}, games.TeamScore{Team: "CLE", Score: 100}),
		},
		Counts: map[teams.Code]int{"CHA": 1},
		Total:  2,
	}

	err := Verify(short, teams.NewSet("CHA"), res)

	ie, ok := AsIntegrityError(err)
	require.True(t, ok)
	assert.Empty(t, ie.Mismatched)
	assert.Equal(t, 2, ie.Total)
	assert.Equal(t, 1, ie.Distinct)
	assert.Equal(t, []string{"2020-12-23/CHA__CLE"}, ie.Unscored)
}

func parseLog(t *testing.T, rows string) *gamelog.Log {
	t.Helper()
	log, err := gamelog.Parse([]byte(`{"resultSets":[{"headers":["TEAM_ABBREVIATION","GAME_DATE","MATCHUP","PTS"],"rowSet":[` + rows + `]}]}`))
	require.NoError(t, err)
	return log
}

func TestFromGameLogMergesBothLines(t *testing.T) {
	short := seasons.Season{ID: 1996, StartDate: "1996-11-01", EndDate: "1997-04-20", Shortened: &seasons.Shortened{NumGames: 1}}
	log := parseLog(t, `
		["UTH","1996-11-01","UTH @ CHH",90],
		["CHH","1996-11-01","CHH vs. UTH",95],
		["BOS","1996-11-01","BOS vs. NYK",101],
		["NYK","1996-11-01","NYK @ BOS",99]`)

	got, err := FromGameLog(log, short, teams.NewSet("CHA", "UTA"))

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "1996-11-01/CHA__UTA", got[0].ID)
	assert.Equal(t, games.TeamScore{Team: "CHA", Score: 95}, got[0].Teams[0])
	assert.Equal(t, games.TeamScore{Team: "UTA", Score: 90}, got[0].Teams[1])
}

func TestFromGameLogDoesNotDoubleCountCandidateMatchups(t *testing.T) {
	short := seasons.Season{ID: 2024, StartDate: "2024-10-22", EndDate: "2025-04-13", Shortened: &seasons.Shortened{NumGames: 2}}
	log := parseLog(t, `
		["CHA","2024-11-01","CHA vs. DET",110],
		["DET","2024-11-01","DET @ CHA",100],
		["CHA","2024-11-03","CHA @ BOS",99],
		["BOS","2024-11-03","BOS vs. CHA",120],
		["DET","2024-11-03","DET vs. MIA",97],
		["MIA","2024-11-03","MIA @ DET",96]`)

	res, err := reduceGameLog(log, short, teams.NewSet("CHA", "DET"))
	require.NoError(t, err)

	assert.Equal(t, 3, res.Total)
	assert.Len(t, res.Games, 3)
	assert.Equal(t, map[teams.Code]int{"CHA": 2, "DET": 2}, res.Counts)
	assert.NoError(t, Verify(short, teams.NewSet("CHA", "DET"), res))
}

func TestFromGameLogRejectsRowsOutsideMatchup(t *testing.T) {
	log := parseLog(t, `["MIA","2024-11-01","CHA vs. DET",110]`)

	_, err := FromGameLog(log, season2024, teams.NewSet("CHA"))

	_, ok := gamelog.AsSchemaError(err)
	assert.True(t, ok, "expected schema error, got %v", err)
}

func TestFromGameLogFailsIntegrityForPartialSeason(t *testing.T) {
	log := parseLog(t, `["CHA","2024-11-01","CHA vs. DET",110],["DET","2024-11-01","DET @ CHA",100]`)

	_, err := FromGameLog(log, season2024, teams.NewSet("CHA"))

	_, ok := AsIntegrityError(err)
	assert.True(t, ok)
}
