package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/boldtrade/boldtrade_backend/internal/apperrors"
	"github.com/boldtrade/boldtrade_backend/internal/core/domain"
	portsrepo "github.com/boldtrade/boldtrade_backend/internal/core/ports/repositories"
	portssvc "github.com/boldtrade/boldtrade_backend/internal/core/ports/services"
	"github.com/boldtrade/boldtrade_backend/internal/dto"
	"github.com/boldtrade/boldtrade_backend/internal/middleware"
	"github.com/boldtrade/boldtrade_backend/internal/utils/pagination"
)

// ledgerService owns the cash balance, holdings and trade log of an account.
// Every mutation reads the current snapshot, computes the new one on a clone,
// and hands it to the repository as a single atomic write.
type ledgerService struct {
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.LedgerSvcFacade {
	return &ledgerService{accountRepo: accountRepo}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// canonicalAsset normalizes an asset symbol. Symbols are case-insensitive by
// convention; the ledger stores them upper-case.
func canonicalAsset(asset string) string {
	return strings.ToUpper(strings.TrimSpace(asset))
}

// validateTrade rejects malformed trade input before any balance or holdings
// check is made.
func validateTrade(asset string, quantity, unitPrice decimal.Decimal, kind domain.TradeKind) error {
	if asset == "" {
		return fmt.Errorf("%w: asset symbol is required", apperrors.ErrValidation)
	}
	if kind != domain.Buy && kind != domain.Sell {
		return fmt.Errorf("%w: unknown trade kind %q", apperrors.ErrValidation, kind)
	}
	if !quantity.IsPositive() {
		return fmt.Errorf("%w: quantity must be positive, got %s", apperrors.ErrValidation, quantity)
	}
	if !unitPrice.IsPositive() {
		return fmt.Errorf("%w: unit price must be positive, got %s", apperrors.ErrValidation, unitPrice)
	}
	return nil
}

// applyToPortfolio computes the post-trade portfolio. It works on a clone and
// never touches the account's current portfolio, so a rejected trade leaves
// no trace. Holdings that a sell reduces to the dust threshold or below are
// removed rather than kept at zero.
func applyToPortfolio(p domain.Portfolio, asset string, quantity, unitPrice decimal.Decimal, kind domain.TradeKind) (domain.Portfolio, error) {
	next := p.Clone()
	total := quantity.Mul(unitPrice)

	switch kind {
	case domain.Buy:
		if next.Balance.LessThan(total) {
			return domain.Portfolio{}, fmt.Errorf("%w: trade total %s exceeds balance %s", apperrors.ErrInsufficientFunds, total, next.Balance)
		}
		next.Balance = next.Balance.Sub(total)
		next.Holdings[asset] = next.HoldingQuantity(asset).Add(quantity)
	case domain.Sell:
		held := next.HoldingQuantity(asset)
		if held.LessThan(quantity) {
			return domain.Portfolio{}, fmt.Errorf("%w: %s quantity %s exceeds held %s", apperrors.ErrInsufficientHoldings, asset, quantity, held)
		}
		next.Balance = next.Balance.Add(total)
		remaining := held.Sub(quantity)
		if remaining.LessThanOrEqual(domain.DustEpsilon) {
			delete(next.Holdings, asset)
		} else {
			next.Holdings[asset] = remaining
		}
	}

	return next, nil
}

// ApplyTrade implements portssvc.LedgerSvcFacade. The whole
// read-compute-write cycle runs inside MutateAccount, so a concurrent trade
// against the same account sees this one's balance rather than a stale read.
func (s *ledgerService) ApplyTrade(ctx context.Context, accountID string, req dto.ApplyTradeRequest) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if accountID == "" {
		return nil, apperrors.ErrUnauthorized
	}

	asset := canonicalAsset(req.Asset)
	if err := validateTrade(asset, req.Quantity, req.UnitPrice, req.Kind); err != nil {
		return nil, err
	}

	var txn domain.Transaction
	err := s.accountRepo.MutateAccount(ctx, accountID, func(account *domain.Account) ([]domain.Transaction, error) {
		nextPortfolio, err := applyToPortfolio(account.Portfolio, asset, req.Quantity, req.UnitPrice, req.Kind)
		if err != nil {
			return nil, err
		}

		now := time.Now().UTC()
		txn = domain.Transaction{
			TransactionID: uuid.NewString(),
			AccountID:     account.AccountID,
			Kind:          req.Kind,
			Asset:         asset,
			Quantity:      req.Quantity,
			UnitPrice:     req.UnitPrice,
			Total:         req.Quantity.Mul(req.UnitPrice),
			CreatedAt:     now,
		}

		account.Portfolio = nextPortfolio
		account.LastUpdatedAt = now
		return []domain.Transaction{txn}, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			return nil, apperrors.ErrUnauthorized
		case errors.Is(err, apperrors.ErrInsufficientFunds), errors.Is(err, apperrors.ErrInsufficientHoldings):
			logger.Warn("Trade rejected",
				slog.String("asset", asset),
				slog.String("kind", string(req.Kind)),
				slog.String("error", err.Error()))
			return nil, err
		default:
			return nil, fmt.Errorf("%w: applying trade: %s", apperrors.ErrPersistence, err)
		}
	}

	logger.Info("Trade applied",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("kind", string(txn.Kind)),
		slog.String("asset", txn.Asset),
		slog.String("total", txn.Total.String()))
	return &txn, nil
}

// Exchange implements portssvc.LedgerSvcFacade. It is an explicit two-phase
// sell-then-buy with a defined rollback contract: if the buy leg fails after
// the sell leg persisted, the sold quantity is re-credited via an inverse buy
// of the source asset at the same price. A compensation that itself fails
// leaves the account inconsistent and is reported as ErrCompensationFailed,
// never as an ordinary trade failure.
func (s *ledgerService) Exchange(ctx context.Context, accountID string, req dto.ExchangeRequest) ([]domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	fromAsset := canonicalAsset(req.FromAsset)
	toAsset := canonicalAsset(req.ToAsset)
	if fromAsset == toAsset {
		return nil, fmt.Errorf("%w: cannot exchange %s for itself", apperrors.ErrValidation, fromAsset)
	}
	if !req.ToPrice.IsPositive() {
		return nil, fmt.Errorf("%w: target price must be positive, got %s", apperrors.ErrValidation, req.ToPrice)
	}

	sellTxn, err := s.ApplyTrade(ctx, accountID, dto.ApplyTradeRequest{
		Kind:      domain.Sell,
		Asset:     fromAsset,
		Quantity:  req.Quantity,
		UnitPrice: req.FromPrice,
	})
	if err != nil {
		return nil, err
	}

	derivedQuantity := req.Quantity.Mul(req.FromPrice).Div(req.ToPrice)
	buyTxn, err := s.ApplyTrade(ctx, accountID, dto.ApplyTradeRequest{
		Kind:      domain.Buy,
		Asset:     toAsset,
		Quantity:  derivedQuantity,
		UnitPrice: req.ToPrice,
	})
	if err == nil {
		return []domain.Transaction{*buyTxn, *sellTxn}, nil
	}

	// Buy leg failed after the sell leg persisted: roll back by re-buying
	// the sold quantity at the sell price. The sell just credited exactly
	// that amount, so the compensating buy cannot fail on funds; only a
	// persistence failure can stop it.
	logger.Warn("Exchange buy leg failed, compensating",
		slog.String("from_asset", fromAsset),
		slog.String("to_asset", toAsset),
		slog.String("error", err.Error()))

	if _, compErr := s.ApplyTrade(ctx, accountID, dto.ApplyTradeRequest{
		Kind:      domain.Buy,
		Asset:     fromAsset,
		Quantity:  req.Quantity,
		UnitPrice: req.FromPrice,
	}); compErr != nil {
		logger.Error("Exchange compensation failed, account needs reconciliation",
			slog.String("account_id", accountID),
			slog.String("sell_transaction_id", sellTxn.TransactionID),
			slog.String("error", compErr.Error()))
		return nil, fmt.Errorf("%w: buy leg: %s; compensation: %s", apperrors.ErrCompensationFailed, err, compErr)
	}

	return nil, err
}

// GetPortfolio implements portssvc.LedgerSvcFacade.
func (s *ledgerService) GetPortfolio(ctx context.Context, accountID string) (*domain.Portfolio, error) {
	if accountID == "" {
		return nil, apperrors.ErrUnauthorized
	}
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	portfolio := account.Portfolio.Clone()
	return &portfolio, nil
}

// ListTransactions implements portssvc.LedgerSvcFacade. The log is returned
// newest first; the cursor carries the timestamp and ID of the last entry on
// the page, so entries sharing a timestamp are not skipped across pages.
func (s *ledgerService) ListTransactions(ctx context.Context, accountID string, params dto.ListTransactionsParams) ([]domain.Transaction, string, error) {
	if accountID == "" {
		return nil, "", apperrors.ErrUnauthorized
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	var before time.Time
	var beforeID string
	if params.NextToken != "" {
		decoded, decodedID, err := pagination.DecodeDateBasedToken(params.NextToken)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %s", apperrors.ErrValidation, err)
		}
		before = decoded
		beforeID = decodedID
	}

	// Fetch one extra row to know whether another page exists.
	txns, err := s.accountRepo.ListTransactions(ctx, accountID, limit+1, before, beforeID)
	if err != nil {
		return nil, "", fmt.Errorf("%w: listing transactions: %s", apperrors.ErrPersistence, err)
	}

	nextToken := ""
	if len(txns) > limit {
		txns = txns[:limit]
		last := txns[limit-1]
		nextToken = pagination.EncodeDateBasedToken(last.CreatedAt, last.TransactionID)
	}
	return txns, nextToken, nil
}
