package services

import (
	"context"

	"github.com/boldtrade/boldtrade_backend/internal/core/domain"
	"github.com/boldtrade/boldtrade_backend/internal/dto"
)

// LedgerSvcFacade owns the balance, holdings and transaction history of an
// account and exposes the single mutating trade operation plus read views.
type LedgerSvcFacade interface {
	// ApplyTrade validates and applies one buy or sell against the account's
	// portfolio, appends exactly one transaction, and persists the updated
	// snapshot atomically. A failed call mutates nothing.
	ApplyTrade(ctx context.Context, accountID string, req dto.ApplyTradeRequest) (*domain.Transaction, error)
	// Exchange performs a sell of the source asset immediately followed by a
	// buy of the target asset at the supplied prices. If the buy leg fails
	// after the sell leg persisted, the sell is compensated by re-buying the
	// source asset at the same price; a failed compensation is reported as
	// apperrors.ErrCompensationFailed. On success both leg transactions are
	// returned, buy leg first (newest-first order).
	Exchange(ctx context.Context, accountID string, req dto.ExchangeRequest) ([]domain.Transaction, error)
	// GetPortfolio returns the account's current portfolio view.
	GetPortfolio(ctx context.Context, accountID string) (*domain.Portfolio, error)
	// ListTransactions pages through the append-only trade log, newest first.
	ListTransactions(ctx context.Context, accountID string, params dto.ListTransactionsParams) ([]domain.Transaction, string, error)
}
