package domain

import "context"

// ObservationRepository defines the interface for durable observation
// persistence. The durable store is the system of record; it never
// substitutes data on failure — fallback ordering is decided by the
// collector and query services, not here.
type ObservationRepository interface {
	// Save appends one observation. Append-only log semantics: duplicate
	// saves for the same timestamp are permitted and both retained.
	Save(ctx context.Context, obs *Observation) error

	// FindLatest retrieves the most recent observation for an asset by
	// timestamp. Returns ErrNotFound when no rows exist.
	FindLatest(ctx context.Context, coin Asset) (*Observation, error)

	// FindRecentPrices retrieves up to limit most recent prices for an
	// asset, newest-first.
	FindRecentPrices(ctx context.Context, coin Asset, limit int) ([]float64, error)
}

// HistoryCache defines the interface for the in-process fallback history.
// Bounded per asset; reset to empty on process restart.
type HistoryCache interface {
	// Append adds an observation to the asset's history, evicting the
	// oldest entry once the per-asset capacity is reached.
	Append(obs Observation)

	// Latest returns the most recently appended observation for an asset.
	Latest(coin Asset) (Observation, bool)

	// Recent returns up to n most recent observations, oldest-first.
	Recent(coin Asset, n int) []Observation
}

// PriceProvider defines the interface for the external market data source.
// One call covers all requested assets; a response missing any requested
// asset is treated as a failure of the whole batch.
type PriceProvider interface {
	Fetch(ctx context.Context, coins []Asset) (map[Asset]Quote, error)
}
