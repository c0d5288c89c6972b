// Package coinranking fetches live asset prices from the coinranking API.
// It is strictly best-effort: any error here makes the pricing service fall
// back to reference prices.
package coinranking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/boldtrade/boldtrade_backend/internal/apperrors"
	"github.com/boldtrade/boldtrade_backend/internal/core/domain"
	portssvc "github.com/boldtrade/boldtrade_backend/internal/core/ports/services"
)

const defaultBaseURL = "https://api.coinranking.com/v2"

// coinUUIDs maps the asset IDs the exchange view uses to coinranking's own
// coin identifiers.
var coinUUIDs = map[string]string{
	"bitcoin":     "Qwsogvtv82FCd",
	"ethereum":    "razxDUgYGNAdQ",
	"binancecoin": "WcwrkfNI4FUAe",
	"cardano":     "qzawljRxB5bYu",
	"solana":      "zNZHO_Sjf",
	"polkadot":    "MKhxjUCOp",
	"chainlink":   "ZlZpBOB4-",
	"avalanche-2": "dvUj0CzDZ",
}

// Client is a thin coinranking API client.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// Option is a functional option for configuring the client.
type Option func(*Client)

// WithBaseURL overrides the API base URL (used by tests).
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a coinranking client with the given API key.
func NewClient(apiKey string, options ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, option := range options {
		option(c)
	}
	return c
}

var _ portssvc.QuoteProvider = (*Client)(nil)

// coinResponse mirrors the slice of the coinranking payload we consume.
type coinResponse struct {
	Data struct {
		Coin struct {
			Symbol string `json:"symbol"`
			Price  string `json:"price"`
		} `json:"coin"`
	} `json:"data"`
}

// FetchPrice implements portssvc.QuoteProvider.
func (c *Client) FetchPrice(ctx context.Context, assetID string) (*domain.PriceQuote, error) {
	coinUUID, ok := coinUUIDs[assetID]
	if !ok {
		return nil, fmt.Errorf("%w: no coinranking mapping for asset %q", apperrors.ErrNotFound, assetID)
	}

	url := fmt.Sprintf("%s/coin/%s", c.baseURL, coinUUID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build coinranking request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-RapidAPI-Key", c.apiKey)
	req.Header.Set("X-RapidAPI-Host", "api.coinranking.com")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("coinranking request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("coinranking returned non-200 status: %s", resp.Status)
	}

	var payload coinResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode coinranking response: %w", err)
	}

	price, err := decimal.NewFromString(payload.Data.Coin.Price)
	if err != nil {
		return nil, fmt.Errorf("failed to parse coinranking price %q: %w", payload.Data.Coin.Price, err)
	}
	if !price.IsPositive() {
		return nil, fmt.Errorf("coinranking returned non-positive price %s", price)
	}

	return &domain.PriceQuote{
		AssetID:   assetID,
		Symbol:    payload.Data.Coin.Symbol,
		Price:     price,
		Source:    domain.QuoteSourceLive,
		FetchedAt: time.Now().UTC(),
	}, nil
}
