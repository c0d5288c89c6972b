package services

import (
	"context"

	"github.com/boldtrade/boldtrade_backend/internal/core/domain"
	"github.com/boldtrade/boldtrade_backend/internal/dto"
)

// FundingSvcFacade handles the simulated card deposit flow. No real payment
// processing happens anywhere behind this interface.
type FundingSvcFacade interface {
	// Deposit validates the card details and amount, credits the account
	// balance, and returns the updated portfolio.
	Deposit(ctx context.Context, accountID string, req dto.DepositRequest) (*domain.Portfolio, error)
}
