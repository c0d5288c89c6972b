package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boldtrade/boldtrade_backend/internal/apperrors"
	"github.com/boldtrade/boldtrade_backend/internal/core/domain"
	"github.com/boldtrade/boldtrade_backend/internal/core/services"
)

// stubQuoteProvider returns a fixed quote or error.
type stubQuoteProvider struct {
	quote *domain.PriceQuote
	err   error
}

func (s *stubQuoteProvider) FetchPrice(ctx context.Context, assetID string) (*domain.PriceQuote, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.quote, nil
}

func TestGetQuote_NilProviderServesFallback(t *testing.T) {
	service := services.NewPricingService(nil)

	quote, err := service.GetQuote(context.Background(), "bitcoin")
	require.NoError(t, err)
	assert.Equal(t, "BTC", quote.Symbol)
	assert.Equal(t, domain.QuoteSourceFallback, quote.Source)
	assert.True(t, quote.Price.Equal(decimal.NewFromInt(45000)), "price was %s", quote.Price)
}

func TestGetQuote_ProviderErrorFallsBack(t *testing.T) {
	service := services.NewPricingService(&stubQuoteProvider{err: fmt.Errorf("upstream down")})

	quote, err := service.GetQuote(context.Background(), "ethereum")
	require.NoError(t, err)
	assert.Equal(t, domain.QuoteSourceFallback, quote.Source)
	assert.True(t, quote.Price.Equal(decimal.NewFromInt(3000)))
}

func TestGetQuote_LiveQuotePreferred(t *testing.T) {
	live := &domain.PriceQuote{
		AssetID:   "bitcoin",
		Symbol:    "BTC",
		Price:     decimal.NewFromInt(61234),
		Source:    domain.QuoteSourceLive,
		FetchedAt: time.Now().UTC(),
	}
	service := services.NewPricingService(&stubQuoteProvider{quote: live})

	quote, err := service.GetQuote(context.Background(), "bitcoin")
	require.NoError(t, err)
	assert.Equal(t, domain.QuoteSourceLive, quote.Source)
	assert.True(t, quote.Price.Equal(decimal.NewFromInt(61234)))
}

func TestGetQuote_UnknownAsset(t *testing.T) {
	service := services.NewPricingService(nil)

	_, err := service.GetQuote(context.Background(), "dogecoin")
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestGetQuote_NormalizesAssetID(t *testing.T) {
	service := services.NewPricingService(nil)

	quote, err := service.GetQuote(context.Background(), " Bitcoin ")
	require.NoError(t, err)
	assert.Equal(t, "bitcoin", quote.AssetID)
}
