package archive

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nba-surprise-service/internal/domain/games"
	"nba-surprise-service/internal/domain/seasons"
	"nba-surprise-service/internal/domain/teams"
	"nba-surprise-service/internal/metrics"
)

type fakeCatalog struct {
	seasons []seasons.Season
}

func (c fakeCatalog) Season(id int) (seasons.Season, bool) {
	for _, s := range c.seasons {
		if s.ID == id {
			return s, true
		}
	}
	return seasons.Season{}, false
}

func (c fakeCatalog) Archivable(date string) []seasons.Season {
	var out []seasons.Season
	for _, s := range c.seasons {
		if s.PhaseOn(date) == seasons.PhaseConcluded {
			out = append(out, s)
		}
	}
	return out
}

func (c fakeCatalog) Candidates(int) teams.Set {
	return teams.NewSet("BOS", "NYK")
}

type fakeSource struct {
	mu       sync.Mutex
	failing  map[int]error
	calls    []int
	inFlight atomic.Int32
	peak     atomic.Int32
	delay    time.Duration
}

func (s *fakeSource) Name() string { return "fake" }

func (s *fakeSource) SeasonGames(_ context.Context, season seasons.Season, _ teams.Set) ([]games.Game, error) {
	n := s.inFlight.Add(1)
	defer s.inFlight.Add(-1)
	for {
		p := s.peak.Load()
		if n <= p || s.peak.CompareAndSwap(p, n) {
			break
		}
	}
	time.Sleep(s.delay)

	s.mu.Lock()
	s.calls = append(s.calls, season.ID)
	err := s.failing[season.ID]
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return sampleDocument(season.ID).Games, nil
}

func testCatalog() fakeCatalog {
	return fakeCatalog{seasons: []seasons.Season{
		{ID: 2020, StartDate: "2020-12-22", EndDate: "2021-05-16", Shortened: &seasons.Shortened{NumGames: 72}},
		{ID: 2021, StartDate: "2021-10-19", EndDate: "2022-04-10"},
		{ID: 2022, StartDate: "2022-10-18", EndDate: "2023-04-09"},
		{ID: 2023, StartDate: "2023-10-24", EndDate: "2024-04-14"},
		{ID: 2024, StartDate: "2024-10-22", EndDate: "2025-04-13"},
	}}
}

func newTestArchiver(t *testing.T, src *fakeSource, rec *metrics.Recorder) (*Archiver, string) {
	t.Helper()
	dir := t.TempDir()
	a := NewArchiver(testCatalog(), src, NewWriter(dir), 2, nil, rec)
	a.now = func() time.Time { return time.Date(2024, 12, 1, 12, 0, 0, 0, time.UTC) }
	return a, dir
}

func TestResolveSelectors(t *testing.T) {
	a, _ := newTestArchiver(t, &fakeSource{}, nil)

	all, err := a.Resolve("all")
	require.NoError(t, err)
	assert.Len(t, all, 4)

	latest, err := a.Resolve(" LATEST ")
	require.NoError(t, err)
	require.Len(t, latest, 1)
	assert.Equal(t, 2023, latest[0].ID)

	one, err := a.Resolve("2021")
	require.NoError(t, err)
	assert.Equal(t, 2021, one[0].ID)

	_, err = a.Resolve("2024")
	assert.ErrorIs(t, err, ErrSeasonNotConcluded)
	_, err = a.Resolve("1890")
	assert.ErrorIs(t, err, ErrUnknownSeason)
	_, err = a.Resolve("bogus")
	assert.ErrorIs(t, err, ErrInvalidSelector)
}

func TestRunCollectsSuccessAndFailure(t *testing.T) {
	rec := metrics.NewRecorder()
	src := &fakeSource{failing: map[int]error{2021: errors.New("integrity violated")}}
	a, dir := newTestArchiver(t, src, rec)

	res, err := a.Run(context.Background(), "all")
	require.NoError(t, err)

	assert.Equal(t, []int{2020, 2022, 2023}, res.Processed)
	require.Len(t, res.Failed, 1)
	assert.Equal(t, 2021, res.Failed[0].SeasonID)
	assert.Contains(t, res.Failed[0].Error, "integrity violated")
	assert.Equal(t, 6, res.TotalGames)

	store := NewFSStore(dir)
	assert.True(t, store.Has(2020))
	assert.False(t, store.Has(2021))

	assert.Equal(t, 3, rec.ArchivedSeasons(metrics.ResultSuccess))
	assert.Equal(t, 1, rec.ArchivedSeasons(metrics.ResultFailure))
}

func TestRunRespectsConcurrencyLimit(t *testing.T) {
	src := &fakeSource{delay: 10 * time.Millisecond}
	a, _ := newTestArchiver(t, src, nil)

	_, err := a.Run(context.Background(), "all")
	require.NoError(t, err)
	assert.LessOrEqual(t, src.peak.Load(), int32(2))
	assert.Len(t, src.calls, 4)
}

func TestRunReturnsSelectorErrors(t *testing.T) {
	src := &fakeSource{}
	a, _ := newTestArchiver(t, src, nil)

	_, err := a.Run(context.Background(), "2024")
	assert.ErrorIs(t, err, ErrSeasonNotConcluded)
	assert.Empty(t, src.calls)
}

func TestSchedulerRunOnceSkipsArchivedSeason(t *testing.T) {
	src := &fakeSource{}
	a, dir := newTestArchiver(t, src, nil)
	s := NewScheduler(a, NewFSStore(dir), "0 6 * * *", nil)

	s.RunOnce(context.Background())
	s.RunOnce(context.Background())

	assert.Equal(t, []int{2023}, src.calls)
}

func TestSchedulerRejectsBadCronExpression(t *testing.T) {
	a, dir := newTestArchiver(t, &fakeSource{}, nil)
	s := NewScheduler(a, NewFSStore(dir), "not a cron", nil)

	assert.Error(t, s.Start(context.Background()))
	s.Stop()
}

func TestDefaultConcurrency(t *testing.T) {
	a := NewArchiver(testCatalog(), &fakeSource{}, NewWriter(t.TempDir()), 0, nil, nil)
	assert.Equal(t, defaultConcurrency, a.concurrency)
}
