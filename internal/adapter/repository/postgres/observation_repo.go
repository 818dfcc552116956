package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Vitesh21/konix/internal/domain"
)

// observationRepository implements domain.ObservationRepository
//
// The observations table is an append-only log: Save never updates in
// place and duplicate timestamps for the same coin are retained. The
// (coin, observed_at DESC) index backs the "most recent N" queries.
type observationRepository struct {
	db *DB
}

// NewObservationRepository creates a new observation repository
func NewObservationRepository(db *DB) domain.ObservationRepository {
	return &observationRepository{db: db}
}

// Save appends one observation to the history log
func (r *observationRepository) Save(ctx context.Context, obs *domain.Observation) error {
	query := `
		INSERT INTO observations (id, coin, price, market_cap, day_change, observed_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(ctx, query,
		obs.ID,
		obs.Coin.String(),
		obs.Price,
		obs.MarketCap,
		obs.DayChange,
		obs.ObservedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert observation: %w", err)
	}

	return nil
}

// FindLatest retrieves the most recent observation for a coin by timestamp
func (r *observationRepository) FindLatest(ctx context.Context, coin domain.Asset) (*domain.Observation, error) {
	query := `
		SELECT id, coin, price, market_cap, day_change, observed_at
		FROM observations
		WHERE coin = $1
		ORDER BY observed_at DESC
		LIMIT 1
	`

	var obs domain.Observation
	var coinStr string

	err := r.db.QueryRowContext(ctx, query, coin.String()).Scan(
		&obs.ID,
		&coinStr,
		&obs.Price,
		&obs.MarketCap,
		&obs.DayChange,
		&obs.ObservedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("coin %s: %w", coin, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get latest observation: %w", err)
	}
	obs.Coin = domain.Asset(coinStr)

	return &obs, nil
}

// FindRecentPrices retrieves up to limit most recent prices for a coin,
// newest-first. An empty slice (not an error) when no history exists.
func (r *observationRepository) FindRecentPrices(ctx context.Context, coin domain.Asset, limit int) ([]float64, error) {
	query := `
		SELECT price
		FROM observations
		WHERE coin = $1
		ORDER BY observed_at DESC
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, coin.String(), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent prices: %w", err)
	}
	defer rows.Close()

	var prices []float64
	for rows.Next() {
		var price float64
		if err := rows.Scan(&price); err != nil {
			return nil, fmt.Errorf("failed to scan price: %w", err)
		}
		prices = append(prices, price)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate recent prices: %w", err)
	}

	return prices, nil
}
