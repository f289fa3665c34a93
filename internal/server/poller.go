package server

import (
	"context"

	"nba-surprise-service/internal/poller"
)

// Poller defines the minimal poller behavior needed by the server.
type Poller interface {
	Start(ctx context.Context)
	Stop(ctx context.Context) error
	Status() poller.Status
}

// Scheduler is the archive job lifecycle.
type Scheduler interface {
	Start(ctx context.Context) error
	Stop()
}
