package services

import (
	"context"

	"github.com/boldtrade/boldtrade_backend/internal/core/domain"
)

// QuoteProvider is the outbound port for a remote price source. It is
// best-effort: implementations may be unavailable or return errors, and the
// pricing service falls back to reference prices when they do.
type QuoteProvider interface {
	FetchPrice(ctx context.Context, assetID string) (*domain.PriceQuote, error)
}

// PricingSvcFacade resolves asset prices for the trading UI. The ledger
// never calls this itself; callers fetch a quote and pass the price into
// ApplyTrade, keeping price acquisition and trade application decoupled.
type PricingSvcFacade interface {
	// GetQuote returns a live quote when the provider answers, otherwise the
	// hardcoded fallback price. Unknown assets yield apperrors.ErrNotFound.
	GetQuote(ctx context.Context, assetID string) (*domain.PriceQuote, error)
}
