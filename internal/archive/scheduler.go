package archive

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/robfig/cron/v3"

	"nba-surprise-service/internal/logging"
	"nba-surprise-service/internal/timeutil"
)

// Scheduler archives the most recently concluded season on a cron schedule,
// skipping the run when that season is already on disk.
type Scheduler struct {
	archiver *Archiver
	store    *FSStore
	expr     string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewScheduler builds a scheduler; expr is a standard five-field cron
// expression evaluated in league time.
func NewScheduler(archiver *Archiver, store *FSStore, expr string, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		archiver: archiver,
		store:    store,
		expr:     expr,
		cron:     cron.New(cron.WithLocation(timeutil.Eastern())),
		logger:   logger,
	}
}

// Start registers the job and starts the cron loop.
func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.expr, func() { s.RunOnce(ctx) }); err != nil {
		return fmt.Errorf("schedule archive job %q: %w", s.expr, err)
	}
	s.cron.Start()
	logging.Info(s.logger, "archive job scheduled", "cron", s.expr)
	return nil
}

// Stop halts the cron loop and waits for a running job to finish.
func (s *Scheduler) Stop() {
	if s == nil || s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
}

// RunOnce archives the latest concluded season if it is missing.
func (s *Scheduler) RunOnce(ctx context.Context) {
	latest, err := s.archiver.Resolve(SelectorLatest)
	if err != nil {
		logging.Warn(s.logger, "archive job resolve failed", "err", err)
		return
	}
	if len(latest) == 0 {
		return
	}
	season := latest[0]
	if s.store.Has(season.ID) {
		return
	}

	logging.Info(s.logger, "archive job starting", logging.FieldSeasonID, season.ID)
	if _, err := s.archiver.Run(ctx, strconv.Itoa(season.ID)); err != nil {
		logging.Warn(s.logger, "archive job failed", logging.FieldSeasonID, season.ID, "err", err)
	}
}
