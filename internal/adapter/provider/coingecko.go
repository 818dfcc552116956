package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Vitesh21/konix/internal/domain"
)

const (
	// DefaultBaseURL is the public CoinGecko API root
	DefaultBaseURL = "https://api.coingecko.com/api/v3"

	// FetchTimeout bounds a single batched price request; a slower
	// provider is treated as failed for this tick.
	FetchTimeout = 10 * time.Second
)

// CoinGecko implements domain.PriceProvider against the CoinGecko
// /simple/price endpoint. All tracked coins are fetched in one batched
// request.
type CoinGecko struct {
	baseURL string
	client  *http.Client
}

// NewCoinGecko creates a provider client. An empty baseURL selects the
// public API.
func NewCoinGecko(baseURL string) *CoinGecko {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &CoinGecko{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: FetchTimeout},
	}
}

// simplePrice mirrors the provider's per-coin response shape
type simplePrice struct {
	USD          float64 `json:"usd"`
	USDMarketCap float64 `json:"usd_market_cap"`
	USD24hChange float64 `json:"usd_24h_change"`
}

// Fetch retrieves current USD price, market cap and 24h change for all
// requested coins in a single call. A response that omits any requested
// coin fails the whole batch: partial provider data is never surfaced.
func (c *CoinGecko) Fetch(ctx context.Context, coins []domain.Asset) (map[domain.Asset]domain.Quote, error) {
	ids := make([]string, len(coins))
	for i, coin := range coins {
		ids[i] = coin.String()
	}

	params := url.Values{}
	params.Set("ids", strings.Join(ids, ","))
	params.Set("vs_currencies", "usd")
	params.Set("include_market_cap", "true")
	params.Set("include_24hr_change", "true")

	endpoint := fmt.Sprintf("%s/simple/price?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build provider request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("provider request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("provider returned status %d", resp.StatusCode)
	}

	var payload map[string]simplePrice
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode provider response: %w", err)
	}

	quotes := make(map[domain.Asset]domain.Quote, len(coins))
	for _, coin := range coins {
		raw, ok := payload[coin.String()]
		if !ok {
			return nil, fmt.Errorf("provider response missing data for %s", coin)
		}
		quotes[coin] = domain.Quote{
			Price:     raw.USD,
			MarketCap: raw.USDMarketCap,
			DayChange: raw.USD24hChange,
		}
	}

	return quotes, nil
}
