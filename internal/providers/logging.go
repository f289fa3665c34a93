package providers

import (
	"context"
	"log/slog"
	"time"

	"nba-surprise-service/internal/gamelog"
	"nba-surprise-service/internal/logging"
	"nba-surprise-service/internal/metrics"
	"nba-surprise-service/internal/schedule"
)

// logWithProvider emits a log entry if logger is non-nil and always includes provider name.
func logWithProvider(ctx context.Context, logger *slog.Logger, level slog.Level, provider string, msg string, args ...any) {
	logger = logging.FromContext(ctx, logger)
	if logger == nil {
		return
	}
	args = append(args, slog.String("provider", provider))
	logger.Log(ctx, level, msg, args...)
}

type instrumentedSchedule struct {
	next     ScheduleProvider
	name     string
	logger   *slog.Logger
	recorder *metrics.Recorder
}

// NewInstrumentedScheduleProvider records latency and errors for every fetch.
func NewInstrumentedScheduleProvider(next ScheduleProvider, name string, logger *slog.Logger, recorder *metrics.Recorder) ScheduleProvider {
	return &instrumentedSchedule{next: next, name: name, logger: logger, recorder: recorder}
}

func (p *instrumentedSchedule) FetchSchedule(ctx context.Context) (*schedule.Schedule, error) {
	start := time.Now()
	s, err := p.next.FetchSchedule(ctx)
	elapsed := time.Since(start)
	p.recorder.RecordUpstreamFetch(p.name, elapsed, err)

	if err != nil {
		logWithProvider(ctx, p.logger, slog.LevelWarn, p.name, "schedule fetch failed",
			slog.Int64(logging.FieldDurationMS, elapsed.Milliseconds()),
			slog.Any("err", err),
		)
		return nil, err
	}
	logWithProvider(ctx, p.logger, slog.LevelDebug, p.name, "schedule fetched",
		slog.Int64(logging.FieldDurationMS, elapsed.Milliseconds()),
		slog.Int("slates", len(s.Slates)),
	)
	return s, nil
}

type instrumentedGameLog struct {
	next     GameLogProvider
	name     string
	logger   *slog.Logger
	recorder *metrics.Recorder
}

// NewInstrumentedGameLogProvider records latency and errors for every fetch.
func NewInstrumentedGameLogProvider(next GameLogProvider, name string, logger *slog.Logger, recorder *metrics.Recorder) GameLogProvider {
	return &instrumentedGameLog{next: next, name: name, logger: logger, recorder: recorder}
}

func (p *instrumentedGameLog) FetchGameLog(ctx context.Context, seasonID int) (*gamelog.Log, error) {
	start := time.Now()
	log, err := p.next.FetchGameLog(ctx, seasonID)
	elapsed := time.Since(start)
	p.recorder.RecordUpstreamFetch(p.name, elapsed, err)

	if err != nil {
		logWithProvider(ctx, p.logger, slog.LevelWarn, p.name, "game log fetch failed",
			slog.Int(logging.FieldSeasonID, seasonID),
			slog.Int64(logging.FieldDurationMS, elapsed.Milliseconds()),
			slog.Any("err", err),
		)
		return nil, err
	}
	return log, nil
}
