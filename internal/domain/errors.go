package domain

import "errors"

var (
	// ErrUnsupportedAsset marks a coin identifier outside the tracked set.
	// Surfaced as a client error by the boundary layer.
	ErrUnsupportedAsset = errors.New("unsupported asset")

	// ErrNotFound means neither the durable store nor the history cache
	// holds any observation for the requested asset.
	ErrNotFound = errors.New("no observations found")

	// ErrNoPrices is returned by the aggregator when invoked with an empty
	// price sequence. Callers guard against this; reaching it indicates a
	// programming error on the query path.
	ErrNoPrices = errors.New("no prices to aggregate")
)
