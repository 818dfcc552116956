package trigger

import (
	"context"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
)

// DefaultSubject is the NATS subject the worker publishes update events on
const DefaultSubject = "crypto.update"

// NATS is a TickSource backed by a NATS subscription: every message on the
// subject becomes one tick. Message payloads are ignored; arrival is the
// event.
type NATS struct {
	conn    *nats.Conn
	subject string
	logger  *slog.Logger
}

// NewNATS connects to the NATS server at url and prepares a source for the
// given subject. An empty subject selects DefaultSubject.
func NewNATS(url, subject string, logger *slog.Logger) (*NATS, error) {
	if subject == "" {
		subject = DefaultSubject
	}

	conn, err := nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, err
	}

	return &NATS{conn: conn, subject: subject, logger: logger}, nil
}

// Start begins emitting one tick per received message until ctx is
// cancelled, then unsubscribes and closes the connection.
func (n *NATS) Start(ctx context.Context) <-chan time.Time {
	out := make(chan time.Time, 1)
	received := make(chan time.Time, 1)

	sub, err := n.conn.Subscribe(n.subject, func(msg *nats.Msg) {
		select {
		case received <- time.Now():
		default:
			// A collection run is already pending; coalesce.
		}
	})
	if err != nil {
		n.logger.Error("failed to subscribe to trigger subject", "subject", n.subject, "err", err)
		close(out)
		return out
	}

	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				if err := sub.Unsubscribe(); err != nil {
					n.logger.Warn("error unsubscribing trigger subscription", "err", err)
				}
				n.conn.Close()
				return
			case ts := <-received:
				select {
				case out <- ts:
				case <-ctx.Done():
				}
			}
		}
	}()

	return out
}
