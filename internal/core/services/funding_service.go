package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/boldtrade/boldtrade_backend/internal/apperrors"
	"github.com/boldtrade/boldtrade_backend/internal/core/domain"
	portsrepo "github.com/boldtrade/boldtrade_backend/internal/core/ports/repositories"
	portssvc "github.com/boldtrade/boldtrade_backend/internal/core/ports/services"
	"github.com/boldtrade/boldtrade_backend/internal/dto"
	"github.com/boldtrade/boldtrade_backend/internal/middleware"
)

var (
	cardNumberPattern = regexp.MustCompile(`^\d{13,19}$`)
	expiryPattern     = regexp.MustCompile(`^(0[1-9]|1[0-2])/(\d{2})$`)
	cvcPattern        = regexp.MustCompile(`^\d{3,4}$`)
)

// fundingService handles the simulated card deposit flow. Card details are
// checked for shape only; nothing is charged and nothing is stored.
type fundingService struct {
	accountRepo portsrepo.AccountRepositoryFacade
	maxDeposit  decimal.Decimal
}

// NewFundingService creates a new FundingService.
func NewFundingService(accountRepo portsrepo.AccountRepositoryFacade, maxDeposit decimal.Decimal) portssvc.FundingSvcFacade {
	return &fundingService{
		accountRepo: accountRepo,
		maxDeposit:  maxDeposit,
	}
}

var _ portssvc.FundingSvcFacade = (*fundingService)(nil)

// validateDeposit checks the amount bounds and the card form fields.
func (s *fundingService) validateDeposit(req dto.DepositRequest) error {
	if !req.Amount.IsPositive() {
		return fmt.Errorf("%w: deposit amount must be positive", apperrors.ErrValidation)
	}
	if req.Amount.GreaterThan(s.maxDeposit) {
		return fmt.Errorf("%w: maximum deposit amount is %s", apperrors.ErrValidation, s.maxDeposit)
	}

	cardDigits := strings.ReplaceAll(req.CardNumber, " ", "")
	if !cardNumberPattern.MatchString(cardDigits) {
		return fmt.Errorf("%w: invalid card number", apperrors.ErrValidation)
	}

	m := expiryPattern.FindStringSubmatch(req.ExpiryDate)
	if m == nil {
		return fmt.Errorf("%w: invalid expiry date", apperrors.ErrValidation)
	}
	expiry, err := time.Parse("01/06", m[1]+"/"+m[2])
	if err != nil {
		return fmt.Errorf("%w: invalid expiry date", apperrors.ErrValidation)
	}
	// The card is valid through the end of its expiry month.
	endOfMonth := expiry.AddDate(0, 1, 0)
	if !time.Now().Before(endOfMonth) {
		return fmt.Errorf("%w: card has expired", apperrors.ErrValidation)
	}

	if !cvcPattern.MatchString(req.CVC) {
		return fmt.Errorf("%w: invalid CVC", apperrors.ErrValidation)
	}
	if strings.TrimSpace(req.CardHolder) == "" {
		return fmt.Errorf("%w: cardholder name required", apperrors.ErrValidation)
	}
	return nil
}

// Deposit implements portssvc.FundingSvcFacade. Deposits credit the balance
// only; they do not enter the trade log.
func (s *fundingService) Deposit(ctx context.Context, accountID string, req dto.DepositRequest) (*domain.Portfolio, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if accountID == "" {
		return nil, apperrors.ErrUnauthorized
	}
	if err := s.validateDeposit(req); err != nil {
		return nil, err
	}

	var portfolio domain.Portfolio
	err := s.accountRepo.MutateAccount(ctx, accountID, func(account *domain.Account) ([]domain.Transaction, error) {
		next := account.Portfolio.Clone()
		next.Balance = next.Balance.Add(req.Amount)

		account.Portfolio = next
		account.LastUpdatedAt = time.Now().UTC()
		portfolio = next.Clone()
		return nil, nil
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("%w: persisting deposit: %s", apperrors.ErrPersistence, err)
	}

	logger.Info("Funds deposited",
		slog.String("amount", req.Amount.String()),
		slog.String("new_balance", portfolio.Balance.String()))
	return &portfolio, nil
}
