package domain

import (
	"fmt"
	"strings"
)

// Asset identifies a tracked cryptocurrency by its provider symbol
type Asset string

const (
	AssetBitcoin  Asset = "bitcoin"
	AssetEthereum Asset = "ethereum"
	AssetMatic    Asset = "matic-network"
)

// TrackedAssets is the closed set of assets the service collects and serves.
// Identifiers outside this set are rejected at the boundary and never reach
// the collector or query services.
var TrackedAssets = []Asset{AssetBitcoin, AssetEthereum, AssetMatic}

// ParseAsset validates a raw coin identifier against the tracked set.
// Returns ErrUnsupportedAsset for anything outside the enumeration.
func ParseAsset(raw string) (Asset, error) {
	normalized := Asset(strings.ToLower(strings.TrimSpace(raw)))
	for _, a := range TrackedAssets {
		if a == normalized {
			return a, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedAsset, raw)
}

// String returns the provider-facing identifier
func (a Asset) String() string {
	return string(a)
}
