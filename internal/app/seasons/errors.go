package seasons

import (
	"context"
	"errors"
	"log/slog"

	"nba-surprise-service/internal/extract"
	"nba-surprise-service/internal/gamelog"
	"nba-surprise-service/internal/logging"
	"nba-surprise-service/internal/metrics"
	"nba-surprise-service/internal/providers"
	"nba-surprise-service/internal/schedule"
)

var (
	// ErrSeasonNotFound is returned for season ids missing from the catalog.
	ErrSeasonNotFound = errors.New("season not found")
	// ErrDataUnavailable is returned when no source can serve a season.
	ErrDataUnavailable = errors.New("season data unavailable")
)

// Failure stages reported to the Reporter.
const (
	FailureRefresh    = "refresh"
	FailureCacheRead  = "cache_read"
	FailureCacheWrite = "cache_write"
	FailureArchive    = "archive"
)

// Reporter receives failures that were absorbed instead of surfaced.
type Reporter interface {
	Report(ctx context.Context, seasonID int, stage string, err error)
}

// LogReporter logs failures and counts them.
type LogReporter struct {
	logger   *slog.Logger
	recorder *metrics.Recorder
}

// NewLogReporter builds a reporter backed by the logger and recorder.
func NewLogReporter(logger *slog.Logger, recorder *metrics.Recorder) *LogReporter {
	return &LogReporter{logger: logger, recorder: recorder}
}

func (r *LogReporter) Report(ctx context.Context, seasonID int, stage string, err error) {
	if r == nil {
		return
	}
	logging.Error(logging.FromContext(ctx, r.logger), "season data failure", err,
		logging.FieldSeasonID, seasonID,
		"stage", stage,
		"kind", Classify(err),
	)
	r.recorder.RecordRefreshFailure(stage)
}

// Classify names the error taxonomy bucket of err.
func Classify(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrSeasonNotFound):
		return "not_found"
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return "timeout"
	}
	if _, ok := extract.AsIntegrityError(err); ok {
		return "integrity"
	}
	if _, ok := schedule.AsSchemaError(err); ok {
		return "schema"
	}
	if _, ok := gamelog.AsSchemaError(err); ok {
		return "schema"
	}
	if errors.Is(err, providers.ErrUpstreamUnavailable) {
		return "upstream"
	}
	return "unknown"
}
