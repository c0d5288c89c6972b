package services

import (
	"context"

	"github.com/boldtrade/boldtrade_backend/internal/core/domain"
	"github.com/boldtrade/boldtrade_backend/internal/dto"
)

// AccountSvcFacade manages registration, login and account lookup.
type AccountSvcFacade interface {
	// Register creates a new account with the configured opening balance and
	// returns it. Returns apperrors.ErrDuplicate if the email is taken and
	// apperrors.ErrValidation for malformed input.
	Register(ctx context.Context, req dto.RegisterRequest) (*domain.Account, error)
	// Authenticate verifies the email/password pair and returns the matching
	// account, or apperrors.ErrUnauthorized on any mismatch.
	Authenticate(ctx context.Context, email, password string) (*domain.Account, error)
	// GetAccountByID fetches an account by its ID.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
}
