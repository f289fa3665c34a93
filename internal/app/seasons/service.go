package seasons

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"nba-surprise-service/internal/archive"
	domaingames "nba-surprise-service/internal/domain/games"
	domainseasons "nba-surprise-service/internal/domain/seasons"
	"nba-surprise-service/internal/domain/teams"
	"nba-surprise-service/internal/extract"
	"nba-surprise-service/internal/freshness"
	"nba-surprise-service/internal/logging"
	"nba-surprise-service/internal/metrics"
	"nba-surprise-service/internal/providers"
	"nba-surprise-service/internal/standings"
	"nba-surprise-service/internal/store"
	"nba-surprise-service/internal/timeutil"
)

// Catalog is the reference data the service reads.
type Catalog interface {
	Season(id int) (domainseasons.Season, bool)
	Seasons() []domainseasons.Season
	Current(date string) (domainseasons.Season, bool)
	Candidates(seasonID int) teams.Set
	TeamSeasons(seasonID int) []domainseasons.TeamSeason
	Team(code teams.Code) (teams.Team, bool)
}

// ArchiveStore loads concluded seasons.
type ArchiveStore interface {
	LoadSeason(seasonID int) ([]domaingames.Game, error)
}

// Result is the answer to a season games request.
type Result struct {
	Games     []domaingames.Game
	ExpiresAt *time.Time
	Outcome   string
}

// Payload converts the result to its response body.
func (r Result) Payload() domaingames.SeasonGames {
	return domaingames.NewSeasonGames(r.Games, r.ExpiresAt)
}

// Service decides, per request, whether season games come from the cache, a
// fresh schedule fetch, or the archive.
type Service struct {
	catalog  Catalog
	cache    store.CacheStore
	archive  ArchiveStore
	schedule providers.ScheduleProvider
	reporter Reporter
	recorder *metrics.Recorder
	logger   *slog.Logger
	now      func() time.Time
	// fullSeason serves every scored date of the season, including dates
	// after today. Only meaningful with a simulated schedule.
	fullSeason bool
}

// Option customizes a Service.
type Option func(*Service)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithReporter overrides the failure reporter.
func WithReporter(r Reporter) Option {
	return func(s *Service) { s.reporter = r }
}

// WithLogger sets the fallback logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithRecorder sets the metrics recorder.
func WithRecorder(rec *metrics.Recorder) Option {
	return func(s *Service) { s.recorder = rec }
}

// WithFullSeason makes refreshes keep scored games dated after today.
func WithFullSeason(enabled bool) Option {
	return func(s *Service) { s.fullSeason = enabled }
}

// NewService constructs a Service.
func NewService(catalog Catalog, cache store.CacheStore, archive ArchiveStore, schedule providers.ScheduleProvider, opts ...Option) *Service {
	s := &Service{
		catalog:  catalog,
		cache:    cache,
		archive:  archive,
		schedule: schedule,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.reporter == nil {
		s.reporter = NewLogReporter(s.logger, s.recorder)
	}
	return s
}

// SeasonGames returns the candidate games of a season.
func (s *Service) SeasonGames(ctx context.Context, seasonID int) (Result, error) {
	season, ok := s.catalog.Season(seasonID)
	if !ok {
		return Result{}, fmt.Errorf("%w: %d", ErrSeasonNotFound, seasonID)
	}

	now := s.now()
	var (
		res Result
		err error
	)
	switch season.PhaseOn(timeutil.EasternDate(now)) {
	case domainseasons.PhaseUpcoming:
		res = Result{Games: []domaingames.Game{}, Outcome: metrics.OutcomeUpcoming}
	case domainseasons.PhaseConcluded:
		res, err = s.concluded(ctx, season)
	default:
		res, err = s.inSeason(ctx, season, now)
	}
	if err != nil {
		return Result{}, err
	}

	s.recorder.RecordCacheDecision(res.Outcome)
	logger := logging.FromContext(ctx, s.logger)
	if logger != nil {
		logger.Debug("season games served",
			logging.FieldSeasonID, seasonID,
			logging.FieldOutcome, res.Outcome,
			logging.FieldCount, len(res.Games),
		)
	}
	return res, nil
}

func (s *Service) concluded(ctx context.Context, season domainseasons.Season) (Result, error) {
	if s.archive != nil {
		list, err := s.archive.LoadSeason(season.ID)
		switch {
		case err == nil:
			return Result{Games: list, Outcome: metrics.OutcomeArchive}, nil
		case errors.Is(err, archive.ErrNotArchived):
			logging.Debug(logging.FromContext(ctx, s.logger), "season not archived yet", logging.FieldSeasonID, season.ID)
		default:
			s.reporter.Report(ctx, season.ID, FailureArchive, err)
		}
	}

	// Seasons that ended while the service was running still have their last
	// cached record.
	rec := s.readCache(ctx, season.ID)
	if rec == nil {
		return Result{}, fmt.Errorf("%w: season %d is not archived", ErrDataUnavailable, season.ID)
	}
	return Result{Games: rec.Games, Outcome: metrics.OutcomeFallback}, nil
}

func (s *Service) inSeason(ctx context.Context, season domainseasons.Season, now time.Time) (Result, error) {
	rec := s.readCache(ctx, season.ID)

	decision := freshness.Decide(rec, now)
	if !decision.Refresh {
		if decision.Reason == freshness.ReasonTerminal {
			return Result{Games: rec.Games, Outcome: metrics.OutcomeTerminal}, nil
		}
		return Result{Games: rec.Games, ExpiresAt: rec.ExpiresAt, Outcome: metrics.OutcomeHit}, nil
	}

	list, expiresAt, err := s.refresh(ctx, season, now)
	if err != nil {
		s.reporter.Report(ctx, season.ID, FailureRefresh, err)
		if rec == nil {
			return Result{}, fmt.Errorf("%w: %w", ErrDataUnavailable, err)
		}
		return Result{Games: rec.Games, Outcome: metrics.OutcomeFallback}, nil
	}

	next := domaingames.CacheRecord{
		SeasonID:  season.ID,
		Games:     list,
		ExpiresAt: expiresAt,
		UpdatedAt: now.UTC(),
	}
	if err := s.cache.Put(ctx, next); err != nil {
		s.reporter.Report(ctx, season.ID, FailureCacheWrite, err)
	}
	return Result{Games: list, ExpiresAt: expiresAt, Outcome: metrics.OutcomeRefreshed}, nil
}

// refresh fetches the schedule once and derives games and the next expiration.
func (s *Service) refresh(ctx context.Context, season domainseasons.Season, now time.Time) ([]domaingames.Game, *time.Time, error) {
	sched, err := s.schedule.FetchSchedule(ctx)
	if err != nil {
		return nil, nil, err
	}
	sched = sched.Between(season.StartDate, season.EndDate)

	candidates := s.catalog.Candidates(season.ID)
	var list []domaingames.Game
	if s.fullSeason {
		list = extract.Scored(sched, season, candidates)
	} else {
		list = extract.Live(sched, season, candidates, timeutil.EasternDate(now))
	}
	return list, freshness.NextExpiration(sched, candidates, now), nil
}

// readCache treats read failures as a missing record.
func (s *Service) readCache(ctx context.Context, seasonID int) *domaingames.CacheRecord {
	rec, err := s.cache.Get(ctx, seasonID)
	if err != nil {
		s.reporter.Report(ctx, seasonID, FailureCacheRead, err)
		return nil
	}
	return rec
}

// Standings scores the season's candidates against its games.
func (s *Service) Standings(ctx context.Context, seasonID int) (standings.Table, error) {
	res, err := s.SeasonGames(ctx, seasonID)
	if err != nil {
		return standings.Table{}, err
	}
	season, _ := s.catalog.Season(seasonID)
	return standings.Build(season, s.catalog.TeamSeasons(seasonID), s.catalog, res.Games), nil
}

// Summary is a catalog season with its phase on the current league date.
type Summary struct {
	domainseasons.Season
	Phase domainseasons.Phase `json:"phase"`
}

// Seasons lists every catalog season, oldest first.
func (s *Service) Seasons() []Summary {
	today := timeutil.EasternDate(s.now())
	list := s.catalog.Seasons()
	out := make([]Summary, 0, len(list))
	for _, season := range list {
		out = append(out, Summary{Season: season, Phase: season.PhaseOn(today)})
	}
	return out
}

// CurrentSeason returns the season in progress or next to start.
func (s *Service) CurrentSeason() (domainseasons.Season, bool) {
	return s.catalog.Current(timeutil.EasternDate(s.now()))
}

// Warm loads the current season so its cache record is refreshed when due.
// It is a no-op outside the regular season.
func (s *Service) Warm(ctx context.Context) error {
	season, ok := s.CurrentSeason()
	if !ok || season.PhaseOn(timeutil.EasternDate(s.now())) != domainseasons.PhaseInSeason {
		return nil
	}
	res, err := s.SeasonGames(ctx, season.ID)
	if err != nil {
		return err
	}
	if res.Outcome == metrics.OutcomeFallback {
		return fmt.Errorf("%w: season %d served stale data", ErrDataUnavailable, season.ID)
	}
	return nil
}
