package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"nba-surprise-service/internal/config"
	"nba-surprise-service/internal/logging"
	"nba-surprise-service/internal/server"
)

const serviceName = "nba-surprise-service"

func main() {
	if os.Getenv("SKIP_SERVER_RUN") == "1" {
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, stop, os.Stdout, os.Stderr)
	stop()
	if code != 0 {
		os.Exit(code)
	}
}

// run serves until ctx is cancelled and returns the process exit code.
func run(ctx context.Context, stop context.CancelFunc, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	logger := logging.NewLogger(logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: serviceName,
		Version: cfg.Version,
		Env:     cfg.Env,
		Output:  stdout,
	})

	srv, err := server.New(ctx, cfg, logger)
	if err != nil {
		logging.Error(logger, "server startup failed", err)
		return 1
	}
	srv.Run(ctx, stop)
	return 0
}
