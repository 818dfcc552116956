package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Vitesh21/konix/internal/adapter/cache"
	"github.com/Vitesh21/konix/internal/adapter/provider"
	"github.com/Vitesh21/konix/internal/adapter/repository/postgres"
	"github.com/Vitesh21/konix/internal/adapter/rest"
	"github.com/Vitesh21/konix/internal/adapter/trigger"
	"github.com/Vitesh21/konix/internal/config"
	"github.com/Vitesh21/konix/internal/domain"
	"github.com/Vitesh21/konix/internal/logging"
	"github.com/Vitesh21/konix/internal/usecase/collector"
	"github.com/Vitesh21/konix/internal/usecase/query"
)

func main() {
	cfg := config.Load()
	logger := logging.NewLogger(slog.LevelInfo)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("konix starting", "port", cfg.HTTPPort, "trigger", cfg.TriggerSource)

	// 1. Durable store. A connection failure is not fatal: the service
	// keeps running in cache-only degraded mode and readers are served
	// from the in-process history.
	var repo domain.ObservationRepository
	if cfg.DBConnStr == "" {
		logger.Warn("no database configured, running cache-only")
	} else {
		db, err := postgres.NewDB(ctx, cfg.DBConnStr)
		if err != nil {
			logger.Warn("database unavailable, running cache-only", "err", err)
		} else {
			logger.Info("database connected")
			repo = postgres.NewObservationRepository(db)
			defer func() {
				if err := db.Close(); err != nil {
					logger.Warn("error closing database", "err", err)
				}
			}()
		}
	}

	// 2. In-process fallback history and external collaborators
	historyCache := cache.NewMemory(cfg.CacheCapacity)
	priceProvider := provider.NewCoinGecko(cfg.ProviderBaseURL)

	// 3. Services
	collectorService := collector.NewCollectorService(priceProvider, repo, historyCache, logger)
	queryService := query.NewQueryService(repo, historyCache, logger)

	// 4. Trigger source driving the collection loop
	var tickSource domain.TickSource
	switch cfg.TriggerSource {
	case "nats":
		src, err := trigger.NewNATS(cfg.NATSURL, cfg.NATSSubject, logger)
		if err != nil {
			logger.Error("failed to connect to nats", "url", cfg.NATSURL, "err", err)
			os.Exit(1)
		}
		tickSource = src
	default:
		tickSource = trigger.NewTimer(cfg.CollectInterval)
	}

	go collectorService.Run(ctx, tickSource)

	// 5. HTTP read API
	server := rest.NewServer(fmt.Sprintf(":%d", cfg.HTTPPort), rest.NewHandler(queryService, logger), logger)
	if err := server.Start(ctx); err != nil {
		logger.Error("server failed", "err", err)
		os.Exit(1)
	}

	logger.Info("konix stopped")
}
