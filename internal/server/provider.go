package server

import (
	"log/slog"
	"strings"

	"nba-surprise-service/internal/config"
	"nba-surprise-service/internal/domain/teams"
	"nba-surprise-service/internal/logging"
	"nba-surprise-service/internal/providers"
	"nba-surprise-service/internal/providers/fixture"
	"nba-surprise-service/internal/providers/nbacdn"
)

// selectScheduleProvider resolves the configured schedule source and the
// name it reports under in logs and metrics.
func selectScheduleProvider(cfg config.Config, codes []teams.Code, logger *slog.Logger) (providers.ScheduleProvider, string) {
	name := strings.ToLower(strings.TrimSpace(cfg.Schedule.Provider))
	switch name {
	case config.ProviderNBACDN, "":
		return nbacdn.NewClient(nbacdn.Config{
			URL:     cfg.Schedule.URL,
			Timeout: cfg.Schedule.Timeout,
		}), config.ProviderNBACDN
	case config.ProviderFixture:
		return fixture.New(codes), config.ProviderFixture
	default:
		logging.Warn(logger, "unknown schedule provider, falling back to fixture", slog.String(logging.FieldProvider, cfg.Schedule.Provider))
		return fixture.New(codes), config.ProviderFixture
	}
}
