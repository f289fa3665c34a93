package server

import (
	"log/slog"
	"math/rand"
	"time"

	"nba-surprise-service/internal/catalog"
	"nba-surprise-service/internal/config"
	"nba-surprise-service/internal/domain/teams"
	"nba-surprise-service/internal/logging"
	"nba-surprise-service/internal/metrics"
	"nba-surprise-service/internal/providers"
	"nba-surprise-service/internal/providers/nbastats"
)

const providerNBAStats = "nbastats"

// providerFactory assembles upstream sources with their shared wrappers.
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
	catalog *catalog.Catalog
}

func newProviderFactory(logger *slog.Logger, metrics *metrics.Recorder, cat *catalog.Catalog) providerFactory {
	return providerFactory{logger: logger, metrics: metrics, catalog: cat}
}

// schedule builds the live schedule source, optionally simulating a full season.
func (f providerFactory) schedule(cfg config.Config) providers.ScheduleProvider {
	var codes []teams.Code
	if f.catalog != nil {
		codes = f.catalog.TeamCodes()
	}
	base, name := selectScheduleProvider(cfg, codes, f.logger)
	if cfg.Schedule.SimulateFullSeason {
		logging.Warn(f.logger, "simulating full season scores", slog.String(logging.FieldProvider, name))
		base = providers.NewSimulatedSeasonProvider(base, rand.New(rand.NewSource(time.Now().UnixNano())))
	}
	return providers.NewInstrumentedScheduleProvider(base, name, f.logger, f.metrics)
}

// gameLog builds the paced, retrying stats source; the returned func stops the pacer.
func (f providerFactory) gameLog(cfg config.Config) (providers.GameLogProvider, func()) {
	client := nbastats.NewClient(nbastats.Config{
		BaseURL: cfg.Stats.BaseURL,
		Timeout: cfg.Stats.Timeout,
	})
	paced := providers.NewPacedGameLogProvider(client, cfg.Stats.MinInterval, f.logger)
	retrying := providers.NewRetryingGameLogProvider(paced, f.logger, providerNBAStats, cfg.Stats.MaxAttempts, 0)
	return providers.NewInstrumentedGameLogProvider(retrying, providerNBAStats, f.logger, f.metrics), paced.Close
}
