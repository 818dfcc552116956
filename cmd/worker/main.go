package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/Vitesh21/konix/internal/config"
	"github.com/Vitesh21/konix/internal/logging"
)

// The worker is the external scheduler: on a fixed interval it publishes a
// trigger event to NATS, and any server consuming the subject runs one
// collection cycle per event. Payload content is irrelevant to subscribers.
func main() {
	cfg := config.Load()
	logger := logging.NewLogger(slog.LevelInfo)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	nc, err := nats.Connect(cfg.NATSURL,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		logger.Error("failed to connect to nats", "url", cfg.NATSURL, "err", err)
		os.Exit(1)
	}
	defer nc.Close()

	logger.Info("worker started", "subject", cfg.NATSSubject, "interval", cfg.PublishInterval)

	ticker := time.NewTicker(cfg.PublishInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("worker stopped")
			return
		case <-ticker.C:
			if err := nc.Publish(cfg.NATSSubject, []byte(`{"trigger":"update"}`)); err != nil {
				logger.Error("failed to publish update event", "err", err)
				continue
			}
			logger.Info("update event published")
		}
	}
}
