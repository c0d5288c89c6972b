package dto

import (
	"github.com/boldtrade/boldtrade_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ApplyTradeRequest is one buy or sell against the caller's portfolio.
// UnitPrice is caller supplied (fetched from the pricing endpoint), not
// independently verified by the ledger.
type ApplyTradeRequest struct {
	Kind      domain.TradeKind `json:"kind" binding:"required,oneof=BUY SELL"`
	Asset     string           `json:"asset" binding:"required"`
	Quantity  decimal.Decimal  `json:"quantity" binding:"required"`
	UnitPrice decimal.Decimal  `json:"unitPrice" binding:"required"`
}

// ExchangeRequest converts quantity units of FromAsset into ToAsset at the
// two supplied prices.
type ExchangeRequest struct {
	FromAsset string          `json:"fromAsset" binding:"required"`
	ToAsset   string          `json:"toAsset" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
	FromPrice decimal.Decimal `json:"fromPrice" binding:"required"`
	ToPrice   decimal.Decimal `json:"toPrice" binding:"required"`
}

// TradeResponse returns the appended transaction(s) plus the post-trade
// portfolio snapshot.
type TradeResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Portfolio    PortfolioResponse     `json:"portfolio"`
}
