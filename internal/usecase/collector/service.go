package collector

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Vitesh21/konix/internal/domain"
)

// CollectorService orchestrates one collection cycle: fetch market data for
// all tracked assets in a single batched provider call, normalize into
// observations, and dual-write them — cache first, then durable store.
//
// The two tiers are written best-effort, not transactionally: the cache
// write always happens and a durable store failure never rolls it back.
// The durable store is the system of record; the cache is the resilience
// layer that keeps reads alive through store outages.
type CollectorService struct {
	Provider domain.PriceProvider
	Repo     domain.ObservationRepository
	Cache    domain.HistoryCache
	Logger   *slog.Logger

	// Coins is the tracked set collected each cycle
	Coins []domain.Asset
}

// NewCollectorService creates a new CollectorService instance. repo may be
// nil when the durable store was unreachable at startup; the collector
// then runs in cache-only degraded mode.
func NewCollectorService(provider domain.PriceProvider, repo domain.ObservationRepository, cache domain.HistoryCache, logger *slog.Logger) *CollectorService {
	return &CollectorService{
		Provider: provider,
		Repo:     repo,
		Cache:    cache,
		Logger:   logger,
		Coins:    domain.TrackedAssets,
	}
}

// Collect runs one collection cycle and returns the observations produced.
//
// Logic:
//   - One batched provider fetch for all tracked coins; any provider
//     failure (unreachable, timeout, missing coin) fails the whole cycle
//     and nothing is written
//   - Each observation is appended to the history cache first,
//     unconditionally
//   - Each observation is then saved to the durable store; a store failure
//     is logged and does not abort the cycle or undo the cache write
//
// The returned error reflects only the provider fetch; store outages are
// invisible to the caller.
func (s *CollectorService) Collect(ctx context.Context) ([]domain.Observation, error) {
	quotes, err := s.Provider.Fetch(ctx, s.Coins)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch market data: %w", err)
	}

	now := time.Now()
	observations := make([]domain.Observation, 0, len(s.Coins))
	for _, coin := range s.Coins {
		quote := quotes[coin]
		observations = append(observations, domain.Observation{
			ID:         uuid.New(),
			Coin:       coin,
			Price:      quote.Price,
			MarketCap:  quote.MarketCap,
			DayChange:  quote.DayChange,
			ObservedAt: now,
		})
	}

	// Cache first: this write cannot fail and must not wait on the store.
	for _, obs := range observations {
		s.Cache.Append(obs)
	}

	if s.Repo == nil {
		s.Logger.Warn("durable store unavailable, observations cached only", "count", len(observations))
		return observations, nil
	}

	for i := range observations {
		if err := s.Repo.Save(ctx, &observations[i]); err != nil {
			s.Logger.Error("failed to persist observation, cache retains it",
				"coin", observations[i].Coin, "err", err)
		}
	}

	return observations, nil
}

// Run drives collection cycles serially from a tick source until ctx is
// cancelled or the source closes. Fetch failures are logged and the loop
// keeps going; the next tick is the retry mechanism.
func (s *CollectorService) Run(ctx context.Context, src domain.TickSource) {
	ticks := src.Start(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-ticks:
			if !ok {
				return
			}
			observations, err := s.Collect(ctx)
			if err != nil {
				s.Logger.Error("collection cycle failed", "err", err)
				continue
			}
			s.Logger.Info("collection cycle complete", "observations", len(observations))
		}
	}
}
