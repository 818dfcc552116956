package domain

import (
	"context"
	"time"
)

// TickSource defines the interface for the event stream that drives
// collection cycles. A tick carries no payload beyond its arrival time;
// the source may be a local timer or an external message subscription.
type TickSource interface {
	// Start begins emitting ticks until ctx is cancelled, at which point
	// the returned channel is closed.
	Start(ctx context.Context) <-chan time.Time
}
