package services_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/boldtrade/boldtrade_backend/internal/adapters/database/memory"
	"github.com/boldtrade/boldtrade_backend/internal/apperrors"
	"github.com/boldtrade/boldtrade_backend/internal/core/domain"
	portsrepo "github.com/boldtrade/boldtrade_backend/internal/core/ports/repositories"
	portssvc "github.com/boldtrade/boldtrade_backend/internal/core/ports/services"
	"github.com/boldtrade/boldtrade_backend/internal/core/services"
	"github.com/boldtrade/boldtrade_backend/internal/dto"
)

// flakyMutateRepo wraps a real repository and fails MutateAccount from the
// configured call number onward, so tests can break the buy leg or the
// compensation of an exchange.
type flakyMutateRepo struct {
	portsrepo.AccountRepositoryFacade
	calls    int
	failFrom int // 1-based call number at which mutations start failing
	failTo   int // last failing call number, 0 means fail forever
}

func (r *flakyMutateRepo) MutateAccount(ctx context.Context, accountID string, fn func(*domain.Account) ([]domain.Transaction, error)) error {
	r.calls++
	if r.calls >= r.failFrom && (r.failTo == 0 || r.calls <= r.failTo) {
		return fmt.Errorf("simulated write failure on call %d", r.calls)
	}
	return r.AccountRepositoryFacade.MutateAccount(ctx, accountID, fn)
}

// --- Test Suite Setup ---

type LedgerServiceTestSuite struct {
	suite.Suite
	repo      portsrepo.AccountRepositoryFacade
	service   portssvc.LedgerSvcFacade
	accountID string
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.repo = memory.NewAccountRepository()
	suite.service = services.NewLedgerService(suite.repo)
	suite.accountID = suite.seedAccount(decimal.NewFromInt(10000), nil)
}

// seedAccount stores an account with the given balance and holdings and
// returns its ID.
func (suite *LedgerServiceTestSuite) seedAccount(balance decimal.Decimal, holdings map[string]decimal.Decimal) string {
	now := time.Now().UTC()
	account := domain.Account{
		AccountID:    uuid.NewString(),
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "irrelevant",
		Portfolio:    domain.NewPortfolio(balance),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	for asset, qty := range holdings {
		account.Portfolio.Holdings[asset] = qty
	}
	suite.Require().NoError(suite.repo.SaveAccount(context.Background(), account))
	return account.AccountID
}

func (suite *LedgerServiceTestSuite) portfolio() domain.Portfolio {
	account, err := suite.repo.FindAccountByID(context.Background(), suite.accountID)
	suite.Require().NoError(err)
	return account.Portfolio
}

func (suite *LedgerServiceTestSuite) transactions() []domain.Transaction {
	txns, err := suite.repo.ListTransactions(context.Background(), suite.accountID, 100, time.Time{}, "")
	suite.Require().NoError(err)
	return txns
}

// appendTransaction stores a transaction with a controlled timestamp without
// going through a trade.
func (suite *LedgerServiceTestSuite) appendTransaction(txn domain.Transaction) {
	err := suite.repo.MutateAccount(context.Background(), suite.accountID, func(*domain.Account) ([]domain.Transaction, error) {
		return []domain.Transaction{txn}, nil
	})
	suite.Require().NoError(err)
}

// --- ApplyTrade ---

func (suite *LedgerServiceTestSuite) TestApplyTrade_BuySuccess() {
	txn, err := suite.service.ApplyTrade(context.Background(), suite.accountID, dto.ApplyTradeRequest{
		Kind:      domain.Buy,
		Asset:     "BTC",
		Quantity:  decimal.RequireFromString("0.1"),
		UnitPrice: decimal.NewFromInt(45000),
	})

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.Equal(domain.Buy, txn.Kind)
	suite.True(txn.Total.Equal(decimal.NewFromInt(4500)), "total was %s", txn.Total)

	p := suite.portfolio()
	suite.True(p.Balance.Equal(decimal.NewFromInt(5500)), "balance was %s", p.Balance)
	suite.True(p.Holdings["BTC"].Equal(decimal.RequireFromString("0.1")))

	txns := suite.transactions()
	suite.Require().Len(txns, 1)
	suite.Equal(txn.TransactionID, txns[0].TransactionID)
}

func (suite *LedgerServiceTestSuite) TestApplyTrade_BuyInsufficientFunds() {
	_, err := suite.service.ApplyTrade(context.Background(), suite.accountID, dto.ApplyTradeRequest{
		Kind:      domain.Buy,
		Asset:     "BTC",
		Quantity:  decimal.NewFromInt(1),
		UnitPrice: decimal.NewFromInt(45000),
	})

	suite.Require().ErrorIs(err, apperrors.ErrInsufficientFunds)

	// A rejected trade must leave the account untouched.
	p := suite.portfolio()
	suite.True(p.Balance.Equal(decimal.NewFromInt(10000)))
	suite.Empty(p.Holdings)
	suite.Empty(suite.transactions())
}

func (suite *LedgerServiceTestSuite) TestApplyTrade_SellToZeroRemovesHolding() {
	suite.accountID = suite.seedAccount(decimal.NewFromInt(100), map[string]decimal.Decimal{
		"ETH": decimal.NewFromInt(2),
	})

	_, err := suite.service.ApplyTrade(context.Background(), suite.accountID, dto.ApplyTradeRequest{
		Kind:      domain.Sell,
		Asset:     "ETH",
		Quantity:  decimal.NewFromInt(2),
		UnitPrice: decimal.NewFromInt(3000),
	})

	suite.Require().NoError(err)
	p := suite.portfolio()
	suite.True(p.Balance.Equal(decimal.NewFromInt(6100)), "balance was %s", p.Balance)
	suite.NotContains(p.Holdings, "ETH")
}

func (suite *LedgerServiceTestSuite) TestApplyTrade_SellDustSwept() {
	held := decimal.RequireFromString("0.1000000001") // 1e-10 above the sale
	suite.accountID = suite.seedAccount(decimal.NewFromInt(0), map[string]decimal.Decimal{
		"BTC": held,
	})

	_, err := suite.service.ApplyTrade(context.Background(), suite.accountID, dto.ApplyTradeRequest{
		Kind:      domain.Sell,
		Asset:     "BTC",
		Quantity:  decimal.RequireFromString("0.1"),
		UnitPrice: decimal.NewFromInt(45000),
	})

	suite.Require().NoError(err)
	p := suite.portfolio()
	// The remainder is at or below the dust threshold and gets swept; the
	// balance is credited only for the quantity actually sold.
	suite.NotContains(p.Holdings, "BTC")
	suite.True(p.Balance.Equal(decimal.NewFromInt(4500)), "balance was %s", p.Balance)
}

func (suite *LedgerServiceTestSuite) TestApplyTrade_SellWithoutHoldings() {
	_, err := suite.service.ApplyTrade(context.Background(), suite.accountID, dto.ApplyTradeRequest{
		Kind:      domain.Sell,
		Asset:     "BTC",
		Quantity:  decimal.NewFromInt(1),
		UnitPrice: decimal.NewFromInt(45000),
	})

	suite.Require().ErrorIs(err, apperrors.ErrInsufficientHoldings)
	suite.Empty(suite.transactions())
}

func (suite *LedgerServiceTestSuite) TestApplyTrade_RejectsNonPositiveInput() {
	cases := []dto.ApplyTradeRequest{
		{Kind: domain.Buy, Asset: "BTC", Quantity: decimal.Zero, UnitPrice: decimal.NewFromInt(1)},
		{Kind: domain.Buy, Asset: "BTC", Quantity: decimal.NewFromInt(-1), UnitPrice: decimal.NewFromInt(1)},
		{Kind: domain.Buy, Asset: "BTC", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.Zero},
		{Kind: domain.Sell, Asset: "BTC", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(-45000)},
		{Kind: "HOLD", Asset: "BTC", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(1)},
		{Kind: domain.Buy, Asset: "   ", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(1)},
	}

	for _, req := range cases {
		_, err := suite.service.ApplyTrade(context.Background(), suite.accountID, req)
		suite.ErrorIs(err, apperrors.ErrValidation, "req %+v", req)
	}
	suite.Empty(suite.transactions())
}

func (suite *LedgerServiceTestSuite) TestApplyTrade_CanonicalizesAsset() {
	_, err := suite.service.ApplyTrade(context.Background(), suite.accountID, dto.ApplyTradeRequest{
		Kind:      domain.Buy,
		Asset:     " btc ",
		Quantity:  decimal.RequireFromString("0.1"),
		UnitPrice: decimal.NewFromInt(45000),
	})

	suite.Require().NoError(err)
	p := suite.portfolio()
	suite.Contains(p.Holdings, "BTC")
	suite.NotContains(p.Holdings, "btc")
}

func (suite *LedgerServiceTestSuite) TestApplyTrade_UnknownAccount() {
	_, err := suite.service.ApplyTrade(context.Background(), uuid.NewString(), dto.ApplyTradeRequest{
		Kind:      domain.Buy,
		Asset:     "BTC",
		Quantity:  decimal.NewFromInt(1),
		UnitPrice: decimal.NewFromInt(1),
	})
	suite.Require().ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *LedgerServiceTestSuite) TestApplyTrade_EmptyAccountID() {
	_, err := suite.service.ApplyTrade(context.Background(), "", dto.ApplyTradeRequest{
		Kind:      domain.Buy,
		Asset:     "BTC",
		Quantity:  decimal.NewFromInt(1),
		UnitPrice: decimal.NewFromInt(1),
	})
	suite.Require().ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *LedgerServiceTestSuite) TestApplyTrade_PersistenceFailure() {
	flaky := &flakyMutateRepo{AccountRepositoryFacade: suite.repo, failFrom: 1}
	service := services.NewLedgerService(flaky)

	_, err := service.ApplyTrade(context.Background(), suite.accountID, dto.ApplyTradeRequest{
		Kind:      domain.Buy,
		Asset:     "BTC",
		Quantity:  decimal.RequireFromString("0.1"),
		UnitPrice: decimal.NewFromInt(45000),
	})

	suite.Require().ErrorIs(err, apperrors.ErrPersistence)
	p := suite.portfolio()
	suite.True(p.Balance.Equal(decimal.NewFromInt(10000)))
	suite.Empty(suite.transactions())
}

// --- Exchange ---

func (suite *LedgerServiceTestSuite) TestExchange_Success() {
	suite.accountID = suite.seedAccount(decimal.NewFromInt(1000), map[string]decimal.Decimal{
		"BTC": decimal.RequireFromString("0.1"),
	})

	txns, err := suite.service.Exchange(context.Background(), suite.accountID, dto.ExchangeRequest{
		FromAsset: "BTC",
		ToAsset:   "ETH",
		Quantity:  decimal.RequireFromString("0.1"),
		FromPrice: decimal.NewFromInt(45000),
		ToPrice:   decimal.NewFromInt(3000),
	})

	suite.Require().NoError(err)
	suite.Require().Len(txns, 2)
	// Newest first: the buy leg precedes the sell leg.
	suite.Equal(domain.Buy, txns[0].Kind)
	suite.Equal("ETH", txns[0].Asset)
	suite.Equal(domain.Sell, txns[1].Kind)
	suite.Equal("BTC", txns[1].Asset)

	p := suite.portfolio()
	// 0.1 BTC * 45000 / 3000 = 1.5 ETH; cash balance is back where it started.
	suite.True(p.Holdings["ETH"].Equal(decimal.RequireFromString("1.5")), "ETH was %s", p.Holdings["ETH"])
	suite.NotContains(p.Holdings, "BTC")
	suite.True(p.Balance.Equal(decimal.NewFromInt(1000)), "balance was %s", p.Balance)
	suite.Len(suite.transactions(), 2)
}

func (suite *LedgerServiceTestSuite) TestExchange_SameAssetRejected() {
	_, err := suite.service.Exchange(context.Background(), suite.accountID, dto.ExchangeRequest{
		FromAsset: "btc",
		ToAsset:   "BTC",
		Quantity:  decimal.NewFromInt(1),
		FromPrice: decimal.NewFromInt(1),
		ToPrice:   decimal.NewFromInt(1),
	})
	suite.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestExchange_SellLegFails() {
	_, err := suite.service.Exchange(context.Background(), suite.accountID, dto.ExchangeRequest{
		FromAsset: "BTC",
		ToAsset:   "ETH",
		Quantity:  decimal.NewFromInt(1),
		FromPrice: decimal.NewFromInt(45000),
		ToPrice:   decimal.NewFromInt(3000),
	})

	suite.Require().ErrorIs(err, apperrors.ErrInsufficientHoldings)
	suite.Empty(suite.transactions())
}

func (suite *LedgerServiceTestSuite) TestExchange_BuyLegFailureIsCompensated() {
	suite.accountID = suite.seedAccount(decimal.NewFromInt(1000), map[string]decimal.Decimal{
		"BTC": decimal.RequireFromString("0.1"),
	})

	// Call 1 is the sell leg, call 2 the buy leg, call 3 the compensation.
	flaky := &flakyMutateRepo{AccountRepositoryFacade: suite.repo, failFrom: 2, failTo: 2}
	service := services.NewLedgerService(flaky)

	_, err := service.Exchange(context.Background(), suite.accountID, dto.ExchangeRequest{
		FromAsset: "BTC",
		ToAsset:   "ETH",
		Quantity:  decimal.RequireFromString("0.1"),
		FromPrice: decimal.NewFromInt(45000),
		ToPrice:   decimal.NewFromInt(3000),
	})

	suite.Require().ErrorIs(err, apperrors.ErrPersistence)
	suite.NotErrorIs(err, apperrors.ErrCompensationFailed)

	// The compensation restored the sold holding and the cash balance.
	p := suite.portfolio()
	suite.True(p.Holdings["BTC"].Equal(decimal.RequireFromString("0.1")), "BTC was %s", p.Holdings["BTC"])
	suite.NotContains(p.Holdings, "ETH")
	suite.True(p.Balance.Equal(decimal.NewFromInt(1000)), "balance was %s", p.Balance)
}

func (suite *LedgerServiceTestSuite) TestExchange_CompensationFailureSurfaced() {
	suite.accountID = suite.seedAccount(decimal.NewFromInt(1000), map[string]decimal.Decimal{
		"BTC": decimal.RequireFromString("0.1"),
	})

	// Both the buy leg and the compensating buy fail to persist.
	flaky := &flakyMutateRepo{AccountRepositoryFacade: suite.repo, failFrom: 2}
	service := services.NewLedgerService(flaky)

	_, err := service.Exchange(context.Background(), suite.accountID, dto.ExchangeRequest{
		FromAsset: "BTC",
		ToAsset:   "ETH",
		Quantity:  decimal.RequireFromString("0.1"),
		FromPrice: decimal.NewFromInt(45000),
		ToPrice:   decimal.NewFromInt(3000),
	})

	suite.Require().ErrorIs(err, apperrors.ErrCompensationFailed)
}

// --- GetPortfolio / ListTransactions ---

func (suite *LedgerServiceTestSuite) TestGetPortfolio_ReturnsCopy() {
	p, err := suite.service.GetPortfolio(context.Background(), suite.accountID)
	suite.Require().NoError(err)

	p.Holdings["BTC"] = decimal.NewFromInt(999)
	p.Balance = decimal.Zero

	stored := suite.portfolio()
	suite.True(stored.Balance.Equal(decimal.NewFromInt(10000)))
	suite.Empty(stored.Holdings)
}

func (suite *LedgerServiceTestSuite) TestListTransactions_NewestFirstPaged() {
	ctx := context.Background()

	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		suite.appendTransaction(domain.Transaction{
			TransactionID: uuid.NewString(),
			AccountID:     suite.accountID,
			Kind:          domain.Buy,
			Asset:         "BTC",
			Quantity:      decimal.NewFromInt(1),
			UnitPrice:     decimal.NewFromInt(int64(i + 1)),
			Total:         decimal.NewFromInt(int64(i + 1)),
			CreatedAt:     base.Add(time.Duration(i) * time.Minute),
		})
	}

	page1, token, err := suite.service.ListTransactions(ctx, suite.accountID, dto.ListTransactionsParams{Limit: 2})
	suite.Require().NoError(err)
	suite.Require().Len(page1, 2)
	suite.Require().NotEmpty(token)
	suite.True(page1[0].CreatedAt.After(page1[1].CreatedAt))

	page2, token2, err := suite.service.ListTransactions(ctx, suite.accountID, dto.ListTransactionsParams{Limit: 2, NextToken: token})
	suite.Require().NoError(err)
	suite.Require().Len(page2, 1)
	suite.Empty(token2)
	suite.True(page1[1].CreatedAt.After(page2[0].CreatedAt))
}

// Trades on the same account must serialize: each one's read has to see the
// previous one's write, or concurrent buys lose balance deductions.
func (suite *LedgerServiceTestSuite) TestApplyTrade_ConcurrentBuysSerialize() {
	suite.accountID = suite.seedAccount(decimal.NewFromInt(100000), nil)

	const workers = 50
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = suite.service.ApplyTrade(context.Background(), suite.accountID, dto.ApplyTradeRequest{
				Kind:      domain.Buy,
				Asset:     "BTC",
				Quantity:  decimal.NewFromInt(1),
				UnitPrice: decimal.NewFromInt(100),
			})
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		suite.Require().NoError(err, "trade %d", i)
	}

	p := suite.portfolio()
	suite.True(p.Balance.Equal(decimal.NewFromInt(95000)), "balance was %s", p.Balance)
	suite.True(p.Holdings["BTC"].Equal(decimal.NewFromInt(50)), "BTC was %s", p.Holdings["BTC"])
	suite.Len(suite.transactions(), workers)
}

// Transactions sharing a timestamp must not be skipped at a page boundary;
// the cursor breaks the tie on transaction ID.
func (suite *LedgerServiceTestSuite) TestListTransactions_SameTimestampBoundary() {
	ctx := context.Background()
	when := time.Now().UTC().Add(-time.Hour)

	ids := make(map[string]bool)
	for i := 0; i < 3; i++ {
		id := uuid.NewString()
		ids[id] = true
		suite.appendTransaction(domain.Transaction{
			TransactionID: id,
			AccountID:     suite.accountID,
			Kind:          domain.Buy,
			Asset:         "BTC",
			Quantity:      decimal.NewFromInt(1),
			UnitPrice:     decimal.NewFromInt(100),
			Total:         decimal.NewFromInt(100),
			CreatedAt:     when,
		})
	}

	seen := make(map[string]bool)
	token := ""
	for page := 0; page < 3; page++ {
		txns, next, err := suite.service.ListTransactions(ctx, suite.accountID, dto.ListTransactionsParams{Limit: 1, NextToken: token})
		suite.Require().NoError(err)
		suite.Require().Len(txns, 1)
		suite.False(seen[txns[0].TransactionID], "transaction returned twice")
		seen[txns[0].TransactionID] = true
		token = next
	}
	suite.Empty(token)
	suite.Equal(ids, seen)
}

func (suite *LedgerServiceTestSuite) TestListTransactions_BadToken() {
	_, _, err := suite.service.ListTransactions(context.Background(), suite.accountID, dto.ListTransactionsParams{
		NextToken: "not-a-token",
	})
	suite.Require().ErrorIs(err, apperrors.ErrValidation)
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
