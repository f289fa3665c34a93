package providers

import (
	"context"
	"log/slog"
	"time"

	"nba-surprise-service/internal/gamelog"
	"nba-surprise-service/internal/logging"
)

// PacedGameLogProvider wraps a GameLogProvider and enforces a minimum interval
// between calls. stats.nba.com drops clients that burst requests.
type PacedGameLogProvider struct {
	next     GameLogProvider
	interval time.Duration
	ticker   *time.Ticker
	logger   *slog.Logger
}

// NewPacedGameLogProvider returns a provider that waits for the next tick before each call.
func NewPacedGameLogProvider(next GameLogProvider, interval time.Duration, logger *slog.Logger) *PacedGameLogProvider {
	if interval <= 0 {
		interval = time.Second
	}
	return &PacedGameLogProvider{
		next:     next,
		interval: interval,
		ticker:   time.NewTicker(interval),
		logger:   logger,
	}
}

func (p *PacedGameLogProvider) FetchGameLog(ctx context.Context, seasonID int) (*gamelog.Log, error) {
	if p == nil || p.next == nil {
		return nil, ErrUpstreamUnavailable
	}
	select {
	case <-ctx.Done():
		logWithProvider(ctx, p.logger, slog.LevelWarn, "paced", "paced fetch canceled",
			slog.Int(logging.FieldSeasonID, seasonID))
		return nil, ctx.Err()
	case <-p.ticker.C:
	}
	return p.next.FetchGameLog(ctx, seasonID)
}

// Close stops the pacing ticker.
func (p *PacedGameLogProvider) Close() {
	if p != nil && p.ticker != nil {
		p.ticker.Stop()
	}
}
