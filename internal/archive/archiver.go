package archive

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"nba-surprise-service/internal/domain/seasons"
	"nba-surprise-service/internal/domain/teams"
	"nba-surprise-service/internal/logging"
	"nba-surprise-service/internal/metrics"
	"nba-surprise-service/internal/timeutil"
)

const (
	SelectorAll    = "all"
	SelectorLatest = "latest"

	defaultConcurrency = 3
)

var (
	// ErrInvalidSelector is returned for selectors that are neither a keyword nor a season id.
	ErrInvalidSelector = errors.New("invalid archive selector")
	// ErrUnknownSeason is returned when a selected season is not in the catalog.
	ErrUnknownSeason = errors.New("unknown season")
	// ErrSeasonNotConcluded is returned when a selected season has not ended yet.
	ErrSeasonNotConcluded = errors.New("season not concluded")
)

// SeasonCatalog is the subset of the reference catalog used for archiving.
type SeasonCatalog interface {
	Season(id int) (seasons.Season, bool)
	Archivable(date string) []seasons.Season
	Candidates(seasonID int) teams.Set
}

// Failure records why one season could not be archived.
type Failure struct {
	SeasonID int    `json:"seasonId"`
	Error    string `json:"error"`
}

// Result summarizes an archive run.
type Result struct {
	Processed  []int     `json:"processed"`
	Failed     []Failure `json:"failed"`
	TotalGames int       `json:"totalGames"`
}

// Archiver fetches, verifies and writes concluded seasons.
type Archiver struct {
	catalog     SeasonCatalog
	source      SeasonSource
	writer      *Writer
	logger      *slog.Logger
	recorder    *metrics.Recorder
	concurrency int
	now         func() time.Time
}

// NewArchiver wires an archiver. Concurrency <= 0 uses the default of 3.
func NewArchiver(catalog SeasonCatalog, source SeasonSource, writer *Writer, concurrency int, logger *slog.Logger, recorder *metrics.Recorder) *Archiver {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	return &Archiver{
		catalog:     catalog,
		source:      source,
		writer:      writer,
		logger:      logger,
		recorder:    recorder,
		concurrency: concurrency,
		now:         time.Now,
	}
}

// Resolve maps a selector ("all", "latest" or a season id) to seasons.
func (a *Archiver) Resolve(selector string) ([]seasons.Season, error) {
	today := timeutil.EasternDate(a.now())
	selector = strings.ToLower(strings.TrimSpace(selector))

	switch selector {
	case SelectorAll:
		return a.catalog.Archivable(today), nil
	case SelectorLatest:
		list := a.catalog.Archivable(today)
		if len(list) == 0 {
			return nil, nil
		}
		return list[len(list)-1:], nil
	}

	id, err := strconv.Atoi(selector)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSelector, selector)
	}
	season, ok := a.catalog.Season(id)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownSeason, id)
	}
	if season.PhaseOn(today) != seasons.PhaseConcluded {
		return nil, fmt.Errorf("%w: %d", ErrSeasonNotConcluded, id)
	}
	return []seasons.Season{season}, nil
}

// Run archives the selected seasons. Per-season failures are collected in the
// result; only selector errors are returned.
func (a *Archiver) Run(ctx context.Context, selector string) (Result, error) {
	list, err := a.Resolve(selector)
	if err != nil {
		return Result{}, err
	}

	var (
		mu  sync.Mutex
		res = Result{Processed: []int{}, Failed: []Failure{}}
		g   errgroup.Group
	)
	g.SetLimit(a.concurrency)

	start := time.Now()
	for _, season := range list {
		season := season
		g.Go(func() error {
			count, err := a.archiveSeason(ctx, season)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				res.Failed = append(res.Failed, Failure{SeasonID: season.ID, Error: err.Error()})
				return nil
			}
			res.Processed = append(res.Processed, season.ID)
			res.TotalGames += count
			return nil
		})
	}
	_ = g.Wait()

	sort.Ints(res.Processed)
	sort.Slice(res.Failed, func(i, j int) bool { return res.Failed[i].SeasonID < res.Failed[j].SeasonID })

	logging.Info(a.logger, "archive run complete",
		"selector", selector,
		"processed", len(res.Processed),
		"failed", len(res.Failed),
		"total_games", res.TotalGames,
		logging.FieldDurationMS, time.Since(start).Milliseconds(),
	)
	return res, nil
}

func (a *Archiver) archiveSeason(ctx context.Context, season seasons.Season) (int, error) {
	list, err := a.source.SeasonGames(ctx, season, a.catalog.Candidates(season.ID))
	if err == nil {
		err = a.writer.WriteSeason(Document{SeasonID: season.ID, Source: a.source.Name(), Games: list})
	}
	if err != nil {
		a.recorder.RecordArchiveSeason(metrics.ResultFailure)
		logging.Warn(a.logger, "season archive failed",
			logging.FieldSeasonID, season.ID,
			"err", err,
		)
		return 0, err
	}

	a.recorder.RecordArchiveSeason(metrics.ResultSuccess)
	logging.Info(a.logger, "season archived",
		logging.FieldSeasonID, season.ID,
		logging.FieldCount, len(list),
	)
	return len(list), nil
}
