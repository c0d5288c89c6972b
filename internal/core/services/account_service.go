package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/boldtrade/boldtrade_backend/internal/apperrors"
	"github.com/boldtrade/boldtrade_backend/internal/core/domain"
	portsrepo "github.com/boldtrade/boldtrade_backend/internal/core/ports/repositories"
	portssvc "github.com/boldtrade/boldtrade_backend/internal/core/ports/services"
	"github.com/boldtrade/boldtrade_backend/internal/dto"
	"github.com/boldtrade/boldtrade_backend/internal/middleware"
	"github.com/boldtrade/boldtrade_backend/internal/utils"
)

// accountService handles registration, credential checks and lookups over
// the account directory.
type accountService struct {
	accountRepo     portsrepo.AccountRepositoryFacade
	startingBalance decimal.Decimal
}

// NewAccountService creates a new AccountService. Every new account opens
// with startingBalance in cash and no holdings.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, startingBalance decimal.Decimal) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo:     accountRepo,
		startingBalance: startingBalance,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// Register implements portssvc.AccountSvcFacade. Email format and password
// length are validated at binding time; the cross-field and uniqueness
// checks live here.
func (s *accountService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Password != req.ConfirmPassword {
		return nil, fmt.Errorf("%w: passwords do not match", apperrors.ErrValidation)
	}
	if len(req.Password) < 6 {
		return nil, fmt.Errorf("%w: password must be at least 6 characters", apperrors.ErrValidation)
	}

	// Exact-match uniqueness check; emails are not normalized.
	_, err := s.accountRepo.FindAccountByEmail(ctx, req.Email)
	if err == nil {
		return nil, fmt.Errorf("%w: an account with this email already exists", apperrors.ErrDuplicate)
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check for existing account: %w", err)
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:    uuid.NewString(),
		Email:        req.Email,
		PasswordHash: passwordHash,
		Portfolio:    domain.NewPortfolio(s.startingBalance),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: an account with this email already exists", apperrors.ErrDuplicate)
		}
		logger.Error("Failed to save account", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: saving account: %s", apperrors.ErrPersistence, err)
	}

	logger.Info("Account registered", slog.String("account_id", account.AccountID))
	return &account, nil
}

// Authenticate implements portssvc.AccountSvcFacade. Lookup failures and
// password mismatches are reported identically so the response does not leak
// which emails are registered.
func (s *accountService) Authenticate(ctx context.Context, email, password string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid email or password", apperrors.ErrUnauthorized)
		}
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}

	if !utils.CheckPasswordHash(password, account.PasswordHash) {
		return nil, fmt.Errorf("%w: invalid email or password", apperrors.ErrUnauthorized)
	}

	return account, nil
}

// GetAccountByID implements portssvc.AccountSvcFacade.
func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find account by ID",
				slog.String("account_id", accountID),
				slog.String("error", err.Error()))
		}
		return nil, err
	}
	return account, nil
}
