package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceQuote is a best-effort price for one asset in the unit-of-account
// currency. Source records where the quote came from so callers can tell a
// live quote from a fallback constant.
type PriceQuote struct {
	AssetID   string          `json:"assetID"`
	Symbol    string          `json:"symbol"`
	Price     decimal.Decimal `json:"price"`
	Source    QuoteSource     `json:"source"`
	FetchedAt time.Time       `json:"fetchedAt"`
}

// QuoteSource identifies the origin of a price quote.
type QuoteSource string

const (
	QuoteSourceLive     QuoteSource = "LIVE"
	QuoteSourceFallback QuoteSource = "FALLBACK"
)
