package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAsset_TrackedCoins(t *testing.T) {
	for _, raw := range []string{"bitcoin", "ethereum", "matic-network"} {
		coin, err := ParseAsset(raw)

		require.NoError(t, err)
		assert.Equal(t, raw, coin.String())
	}
}

func TestParseAsset_NormalizesInput(t *testing.T) {
	coin, err := ParseAsset("  Bitcoin ")

	require.NoError(t, err)
	assert.Equal(t, AssetBitcoin, coin)
}

func TestParseAsset_RejectsUnknownCoins(t *testing.T) {
	for _, raw := range []string{"", "dogecoin", "btc", "bitcoin cash"} {
		_, err := ParseAsset(raw)

		assert.ErrorIs(t, err, ErrUnsupportedAsset, "input %q", raw)
	}
}
