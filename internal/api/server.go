package api

import (
	"context"

	"github.com/vytor/vocabflash/internal/clock"
	"github.com/vytor/vocabflash/internal/services"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// QueueMonitor exposes the depth of a background queue.
type QueueMonitor interface {
	QueueSize() int
	Stats() (completed, failed int64)
}

type Server struct {
	ReviewService services.ReviewService
	DB            Pinger
	LedgerQueue   QueueMonitor
	// Clock is nil unless the simulated clock is enabled; /clock is only
	// routed when it is set.
	Clock *clock.Simulated
}
