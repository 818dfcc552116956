package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vitesh21/konix/internal/domain"
)

const fullResponse = `{
	"bitcoin": {"usd": 100, "usd_market_cap": 1000, "usd_24h_change": 1},
	"ethereum": {"usd": 50, "usd_market_cap": 500, "usd_24h_change": -2.5},
	"matic-network": {"usd": 1, "usd_market_cap": 10, "usd_24h_change": 0.3}
}`

func TestFetch_BatchedRequest(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		assert.Equal(t, "/simple/price", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(fullResponse))
	}))
	defer srv.Close()

	c := NewCoinGecko(srv.URL)
	quotes, err := c.Fetch(context.Background(), domain.TrackedAssets)

	require.NoError(t, err)
	require.Len(t, quotes, 3)

	assert.Equal(t, domain.Quote{Price: 100, MarketCap: 1000, DayChange: 1}, quotes[domain.AssetBitcoin])
	assert.Equal(t, domain.Quote{Price: 50, MarketCap: 500, DayChange: -2.5}, quotes[domain.AssetEthereum])
	assert.Equal(t, domain.Quote{Price: 1, MarketCap: 10, DayChange: 0.3}, quotes[domain.AssetMatic])

	// All coins requested in one call
	assert.Contains(t, gotQuery, "bitcoin%2Cethereum%2Cmatic-network")
	assert.Contains(t, gotQuery, "vs_currencies=usd")
	assert.Contains(t, gotQuery, "include_market_cap=true")
	assert.Contains(t, gotQuery, "include_24hr_change=true")
}

func TestFetch_MissingCoinFailsWholeBatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// ethereum omitted
		_, _ = w.Write([]byte(`{"bitcoin": {"usd": 100, "usd_market_cap": 1000, "usd_24h_change": 1}}`))
	}))
	defer srv.Close()

	c := NewCoinGecko(srv.URL)
	quotes, err := c.Fetch(context.Background(), []domain.Asset{domain.AssetBitcoin, domain.AssetEthereum})

	assert.Error(t, err)
	assert.Nil(t, quotes)
	assert.Contains(t, err.Error(), "ethereum")
}

func TestFetch_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewCoinGecko(srv.URL)
	_, err := c.Fetch(context.Background(), domain.TrackedAssets)

	assert.ErrorContains(t, err, "429")
}

func TestFetch_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(fullResponse))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewCoinGecko(srv.URL)
	_, err := c.Fetch(ctx, domain.TrackedAssets)

	assert.Error(t, err)
}
