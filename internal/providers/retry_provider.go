package providers

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"nba-surprise-service/internal/gamelog"
	"nba-surprise-service/internal/logging"
)

const (
	defaultRetryAttempts = 3
	defaultBackoff       = 500 * time.Millisecond
	maxBackoff           = 10 * time.Second
)

// retryingGameLog wraps a GameLogProvider with exponential backoff.
type retryingGameLog struct {
	inner        GameLogProvider
	logger       *slog.Logger
	providerName string
	maxAttempts  int
	newBackOff   func() backoff.BackOff
}

// NewRetryingGameLogProvider wraps inner with retries. If maxAttempts/initial are <= 0, defaults are used.
// Schema violations and non-retryable statuses fail immediately.
func NewRetryingGameLogProvider(inner GameLogProvider, logger *slog.Logger, providerName string, maxAttempts int, initial time.Duration) GameLogProvider {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if initial <= 0 {
		initial = defaultBackoff
	}
	if providerName == "" {
		providerName = "provider"
	}
	return &retryingGameLog{
		inner:        inner,
		logger:       logger,
		providerName: providerName,
		maxAttempts:  maxAttempts,
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = initial
			b.MaxInterval = maxBackoff
			b.MaxElapsedTime = 0
			return b
		},
	}
}

func (r *retryingGameLog) FetchGameLog(ctx context.Context, seasonID int) (*gamelog.Log, error) {
	attempt := 0
	op := func() (*gamelog.Log, error) {
		attempt++
		log, err := r.inner.FetchGameLog(ctx, seasonID)
		if err != nil && !retryable(err) {
			return nil, backoff.Permanent(err)
		}
		return log, err
	}
	notify := func(err error, delay time.Duration) {
		logWithProvider(ctx, r.logger, slog.LevelWarn, r.providerName, "game log fetch retry",
			slog.Int(logging.FieldSeasonID, seasonID),
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", r.maxAttempts),
			slog.Duration("delay", delay),
			slog.Any("err", err),
		)
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(r.newBackOff(), uint64(r.maxAttempts-1)), ctx)
	log, err := backoff.RetryNotifyWithData(op, policy, notify)
	if err != nil {
		logWithProvider(ctx, r.logger, slog.LevelWarn, r.providerName, "game log fetch failed",
			slog.Int(logging.FieldSeasonID, seasonID),
			slog.Int("attempts", attempt),
			slog.Any("err", err),
		)
		return nil, err
	}
	return log, nil
}

func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if _, ok := gamelog.AsSchemaError(err); ok {
		return false
	}
	if statusErr, ok := AsStatusError(err); ok {
		return statusErr.Retryable()
	}
	return true
}
