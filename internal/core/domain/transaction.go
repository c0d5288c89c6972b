package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TradeKind indicates whether a transaction bought or sold an asset.
type TradeKind string

const (
	Buy  TradeKind = "BUY"
	Sell TradeKind = "SELL"
)

// Transaction is one immutable entry in an account's append-only trade log.
// It is created only by a successful ledger mutation and never updated or
// deleted. Total is computed and stored at append time, not recomputed later.
type Transaction struct {
	TransactionID string          `json:"transactionID"` // Primary Key (UUID)
	AccountID     string          `json:"accountID"`     // FK -> Account.AccountID
	Kind          TradeKind       `json:"kind"`          // BUY or SELL
	Asset         string          `json:"asset"`         // Upper-case symbol
	Quantity      decimal.Decimal `json:"quantity"`      // Positive
	UnitPrice     decimal.Decimal `json:"unitPrice"`     // Positive, caller supplied
	Total         decimal.Decimal `json:"total"`         // Quantity * UnitPrice at append time
	CreatedAt     time.Time       `json:"createdAt"`     // Immutable
}
