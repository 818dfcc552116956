package query

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Vitesh21/konix/internal/domain"
	"github.com/Vitesh21/konix/internal/usecase/stats"
)

// historyWindow is how many recent prices feed a deviation computation,
// matching the cache capacity.
const historyWindow = 100

// QueryService serves the read path: latest snapshot and price deviation.
// Each request is a single-pass fallback chain — durable store first, then
// the in-process history cache. Store outages are invisible to callers as
// long as the cache holds data; only a miss in both tiers surfaces as
// domain.ErrNotFound.
//
// The service is read-only: it never writes to either tier.
type QueryService struct {
	Repo   domain.ObservationRepository
	Cache  domain.HistoryCache
	Logger *slog.Logger
}

// NewQueryService creates a new QueryService instance. repo may be nil
// when the durable store was unreachable at startup.
func NewQueryService(repo domain.ObservationRepository, cache domain.HistoryCache, logger *slog.Logger) *QueryService {
	return &QueryService{
		Repo:   repo,
		Cache:  cache,
		Logger: logger,
	}
}

// Latest returns the most recent observation for a coin.
//
// Logic:
//   - Try the durable store's FindLatest
//   - On store error or no rows, fall back to the cache's latest entry
//   - domain.ErrNotFound only when both tiers are empty
func (s *QueryService) Latest(ctx context.Context, coin domain.Asset) (*domain.Observation, error) {
	if s.Repo != nil {
		obs, err := s.Repo.FindLatest(ctx, coin)
		if err == nil {
			return obs, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			s.Logger.Warn("durable store latest lookup failed, falling back to cache",
				"coin", coin, "err", err)
		}
	}

	if obs, ok := s.Cache.Latest(coin); ok {
		return &obs, nil
	}

	return nil, domain.ErrNotFound
}

// Deviation computes the population standard deviation over the most
// recent prices for a coin.
//
// Logic:
//   - Try the durable store's recent prices (up to 100)
//   - On store error or empty result, fall back to cache history
//   - domain.ErrNotFound when both tiers are empty; the aggregator is
//     never invoked on an empty sequence
func (s *QueryService) Deviation(ctx context.Context, coin domain.Asset) (float64, error) {
	prices := s.recentPrices(ctx, coin)
	if len(prices) == 0 {
		return 0, domain.ErrNotFound
	}

	return stats.Deviation(prices)
}

func (s *QueryService) recentPrices(ctx context.Context, coin domain.Asset) []float64 {
	if s.Repo != nil {
		prices, err := s.Repo.FindRecentPrices(ctx, coin, historyWindow)
		if err != nil {
			s.Logger.Warn("durable store price lookup failed, falling back to cache",
				"coin", coin, "err", err)
		} else if len(prices) > 0 {
			return prices
		}
	}

	observations := s.Cache.Recent(coin, historyWindow)
	prices := make([]float64, 0, len(observations))
	for _, obs := range observations {
		prices = append(prices, obs.Price)
	}
	return prices
}
