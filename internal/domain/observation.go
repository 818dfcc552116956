package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Observation is one normalized snapshot of an asset's market data at a
// point in time. Produced only by the collector from a provider response;
// immutable once created.
type Observation struct {
	ID         uuid.UUID
	Coin       Asset
	Price      float64 // USD, positive
	MarketCap  float64 // USD, non-negative
	DayChange  float64 // 24h change, percent, signed
	ObservedAt time.Time
}

// Quote is the provider-native market data for a single asset, in USD.
// Normalized into an Observation by the collector.
type Quote struct {
	Price     float64
	MarketCap float64
	DayChange float64
}

// Validate ensures the observation adheres to domain rules
// Returns an error if validation fails
func (o *Observation) Validate() error {
	if _, err := ParseAsset(string(o.Coin)); err != nil {
		return err
	}
	if o.Price <= 0 {
		return errors.New("observation price must be positive")
	}
	if o.MarketCap < 0 {
		return errors.New("observation market cap cannot be negative")
	}
	if o.ObservedAt.IsZero() {
		return errors.New("observation timestamp is required")
	}
	return nil
}
