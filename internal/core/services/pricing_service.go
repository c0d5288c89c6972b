package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/boldtrade/boldtrade_backend/internal/apperrors"
	"github.com/boldtrade/boldtrade_backend/internal/core/domain"
	portssvc "github.com/boldtrade/boldtrade_backend/internal/core/ports/services"
	"github.com/boldtrade/boldtrade_backend/internal/middleware"
)

// referencePrice is a hardcoded per-asset fallback used when the remote
// quote source is unconfigured or failing.
type referencePrice struct {
	Symbol string
	Price  decimal.Decimal
}

// fallbackPrices lists the assets the exchange view trades. Prices are
// reference constants, not market data.
var fallbackPrices = map[string]referencePrice{
	"bitcoin":     {Symbol: "BTC", Price: decimal.NewFromInt(45000)},
	"ethereum":    {Symbol: "ETH", Price: decimal.NewFromInt(3000)},
	"binancecoin": {Symbol: "BNB", Price: decimal.NewFromInt(400)},
	"cardano":     {Symbol: "ADA", Price: decimal.NewFromFloat(0.5)},
	"solana":      {Symbol: "SOL", Price: decimal.NewFromInt(100)},
	"polkadot":    {Symbol: "DOT", Price: decimal.NewFromInt(7)},
	"chainlink":   {Symbol: "LINK", Price: decimal.NewFromInt(15)},
	"avalanche-2": {Symbol: "AVAX", Price: decimal.NewFromInt(35)},
}

// pricingService resolves best-effort asset prices: live from the provider
// when one is configured and answering, otherwise the fallback constant.
type pricingService struct {
	provider portssvc.QuoteProvider // nil when no API key is configured
}

// NewPricingService creates a new PricingService. A nil provider is valid
// and means fallback prices only.
func NewPricingService(provider portssvc.QuoteProvider) portssvc.PricingSvcFacade {
	return &pricingService{provider: provider}
}

var _ portssvc.PricingSvcFacade = (*pricingService)(nil)

// GetQuote implements portssvc.PricingSvcFacade.
func (s *pricingService) GetQuote(ctx context.Context, assetID string) (*domain.PriceQuote, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	assetID = strings.ToLower(strings.TrimSpace(assetID))
	ref, known := fallbackPrices[assetID]
	if !known {
		return nil, fmt.Errorf("%w: unknown asset %q", apperrors.ErrNotFound, assetID)
	}

	if s.provider != nil {
		quote, err := s.provider.FetchPrice(ctx, assetID)
		if err == nil {
			if quote.Symbol == "" {
				quote.Symbol = ref.Symbol
			}
			return quote, nil
		}
		logger.Warn("Quote provider failed, using fallback price",
			slog.String("asset_id", assetID),
			slog.String("error", err.Error()))
	}

	return &domain.PriceQuote{
		AssetID:   assetID,
		Symbol:    ref.Symbol,
		Price:     ref.Price,
		Source:    domain.QuoteSourceFallback,
		FetchedAt: time.Now().UTC(),
	}, nil
}
