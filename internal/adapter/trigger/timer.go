package trigger

import (
	"context"
	"time"
)

// Timer is a TickSource backed by a local ticker. It emits one immediate
// tick on start, so the first collection happens at boot rather than a
// full interval later, then fires at the configured interval.
type Timer struct {
	interval time.Duration
}

// NewTimer creates a timer source firing every interval
func NewTimer(interval time.Duration) *Timer {
	return &Timer{interval: interval}
}

// Start begins emitting ticks until ctx is cancelled
func (t *Timer) Start(ctx context.Context) <-chan time.Time {
	out := make(chan time.Time, 1)

	go func() {
		defer close(out)

		out <- time.Now()

		ticker := time.NewTicker(t.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case ts := <-ticker.C:
				select {
				case out <- ts:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out
}
