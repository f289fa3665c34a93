// Command archiver fetches concluded seasons, verifies them and writes them
// to the on-disk archive.
//
// Usage:
//
//	archiver [-season all|latest|<id>]
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"nba-surprise-service/internal/archive"
	"nba-surprise-service/internal/catalog"
	"nba-surprise-service/internal/config"
	"nba-surprise-service/internal/logging"
	"nba-surprise-service/internal/metrics"
	"nba-surprise-service/internal/server"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], os.Stdout))
}

func run(ctx context.Context, args []string, out io.Writer) int {
	fs := flag.NewFlagSet("archiver", flag.ContinueOnError)
	selector := fs.String("season", archive.SelectorLatest, "seasons to archive: all, latest or a season id")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	logger := logging.NewLogger(logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: "nba-surprise-archiver",
		Version: cfg.Version,
	})

	cat, err := catalog.Load()
	if err != nil {
		logging.Error(logger, "load catalog failed", err)
		return 1
	}
	return archiveSeasons(ctx, cfg, cat, *selector, logger, out)
}

func archiveSeasons(ctx context.Context, cfg config.Config, cat *catalog.Catalog, selector string, logger *slog.Logger, out io.Writer) int {
	pipeline := server.NewArchivePipeline(cfg, cat, logger, metrics.NewRecorder())
	defer pipeline.Close()

	res, err := pipeline.Archiver.Run(ctx, selector)
	if err != nil {
		logging.Error(logger, "archive run rejected", err, slog.String("selector", selector))
		return 2
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		logging.Error(logger, "failed to encode result", err)
		return 1
	}
	if len(res.Failed) > 0 {
		return 1
	}
	return 0
}
