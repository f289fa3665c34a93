package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"nba-surprise-service/internal/app/seasons"
	"nba-surprise-service/internal/archive"
	"nba-surprise-service/internal/catalog"
	"nba-surprise-service/internal/config"
	httpserver "nba-surprise-service/internal/http"
	"nba-surprise-service/internal/http/handlers"
	"nba-surprise-service/internal/logging"
	"nba-surprise-service/internal/metrics"
	"nba-surprise-service/internal/poller"
)

var metricsSetup = metrics.Setup

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	seasons       *seasons.Service
	httpServer    httpServer
	metricsServer httpServer
	poller        Poller
	scheduler     Scheduler
	metricsStop   func(context.Context) error
	closers       []func()
}

// New loads the reference catalog and wires every component from cfg.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Server, error) {
	cat, err := catalog.Load()
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return newServer(ctx, cfg, logger, cat, nil)
}

func newServer(ctx context.Context, cfg config.Config, logger *slog.Logger, cat *catalog.Catalog, recorder *metrics.Recorder) (*Server, error) {
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)

	cache, closeCache, err := buildCacheStore(ctx, cfg, logger)
	if err != nil {
		if metricsShutdown != nil {
			_ = metricsShutdown(ctx)
		}
		return nil, err
	}

	factory := newProviderFactory(logger, recorder, cat)
	pipeline := buildArchivePipeline(cfg, cat, factory, logger, recorder)
	svc := seasons.NewService(cat, cache, pipeline.Store, factory.schedule(cfg),
		seasons.WithLogger(logger),
		seasons.WithRecorder(recorder),
		seasons.WithFullSeason(cfg.Schedule.SimulateFullSeason),
	)

	s := &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		seasons:       svc,
		metricsServer: metricsSrv,
		metricsStop:   metricsShutdown,
		closers:       []func(){pipeline.Close, closeCache},
	}

	var statusFn func() poller.Status
	if cfg.Poller.Enabled {
		plr := poller.New(svc, logger, recorder, cfg.Poller.Interval)
		s.poller = plr
		statusFn = plr.Status
	}
	if cfg.Archive.Enabled {
		s.scheduler = archive.NewScheduler(pipeline.Archiver, pipeline.Store, cfg.Archive.Cron, logger)
	}

	var admin *handlers.AdminHandler
	if cfg.AdminToken != "" {
		admin = handlers.NewAdminHandler(pipeline.Archiver, pipeline.Store, cfg.AdminToken, logger,
			handlers.WithRunTimeout(cfg.Archive.RunTimeout))
	}
	router := httpserver.NewRouter(handlers.NewHandler(svc, logger, statusFn), admin, httpserver.RouterConfig{
		Logger:         logger,
		Recorder:       recorder,
		AllowedOrigins: cfg.CORSOrigins,
	})
	s.httpServer = newNetHTTPServer(cfg.Port, router)
	return s, nil
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, httpSrv httpServer, plr Poller, sched Scheduler) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		httpServer: httpSrv,
		poller:     plr,
		scheduler:  sched,
	}
}

// Run starts the background jobs and HTTP server, then waits for context cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	if s.poller != nil {
		s.poller.Start(ctx)
	}
	if s.scheduler != nil {
		if err := s.scheduler.Start(ctx); err != nil {
			logging.Error(s.logger, "archive scheduler failed to start", err)
		}
	}

	<-ctx.Done()
	logging.Info(s.logger, "shutdown signal received")

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	logging.Info(s.logger, "http server starting", slog.String("addr", s.httpServer.Addr()))
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	logging.Info(s.logger, "metrics server starting", slog.String("addr", s.metricsServer.Addr()))
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics shutdown failed", "error", err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics server shutdown failed", "error", err)
		}
	}

	if s.scheduler != nil {
		s.scheduler.Stop()
	}

	if s.poller != nil {
		if err := s.poller.Stop(shutdownCtx); err != nil {
			logging.Error(s.logger, "failed to stop poller", err)
		}
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error(s.logger, "graceful shutdown failed", err)
	}

	for _, closeFn := range s.closers {
		if closeFn != nil {
			closeFn()
		}
	}

	logging.Info(s.logger, "shutdown complete")
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", "err", err)
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = newNetHTTPServer(recCfg.Port, handler)
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Warn(logger, name+" server failed", "error", err)
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}
