package dto

import (
	"time"

	"github.com/boldtrade/boldtrade_backend/internal/core/domain"
)

// PriceQuoteResponse is one best-effort asset price.
type PriceQuoteResponse struct {
	AssetID   string    `json:"assetID"`
	Symbol    string    `json:"symbol"`
	Price     string    `json:"price"`
	Source    string    `json:"source"` // LIVE or FALLBACK
	FetchedAt time.Time `json:"fetchedAt"`
}

// ToPriceQuoteResponse converts a domain quote to its response DTO.
func ToPriceQuoteResponse(q *domain.PriceQuote) PriceQuoteResponse {
	return PriceQuoteResponse{
		AssetID:   q.AssetID,
		Symbol:    q.Symbol,
		Price:     q.Price.String(),
		Source:    string(q.Source),
		FetchedAt: q.FetchedAt,
	}
}
