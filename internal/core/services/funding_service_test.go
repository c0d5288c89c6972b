package services_test

import (
	"context"
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

type FundingServiceTestSuite struct {
	suite.Suite
	repo      portsrepo.AccountRepositoryFacade
	service   portssvc.FundingSvcFacade
	accountID string
}

func (suite *FundingServiceTestSuite) SetupTest() {
	suite.repo = memory.NewAccountRepository()
	suite.service = services.NewFundingService(suite.repo, decimal.NewFromInt(50000))

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:    uuid.NewString(),
		Email:        "trader@example.com",
		PasswordHash: "irrelevant",
		Portfolio:    domain.NewPortfolio(decimal.NewFromInt(10000)),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	suite.Require().NoError(suite.repo.SaveAccount(context.Background(), account))
	suite.accountID = account.AccountID
}

func validDepositRequest() dto.DepositRequest {
	return dto.DepositRequest{
		Amount:         decimal.NewFromInt(2500),
		CardNumber:     "4242 4242 4242 4242",
		ExpiryDate:     "12/39",
		CVC:            "123",
		CardHolder:     "A Trader",
		BillingAddress: "1 Demo Street",
	}
}

func (suite *FundingServiceTestSuite) TestDeposit_Success() {
	portfolio, err := suite.service.Deposit(context.Background(), suite.accountID, validDepositRequest())

	suite.Require().NoError(err)
	suite.True(portfolio.Balance.Equal(decimal.NewFromInt(12500)), "balance was %s", portfolio.Balance)

	// Deposits are not trades and never enter the trade log.
	txns, err := suite.repo.ListTransactions(context.Background(), suite.accountID, 10, time.Time{}, "")
	suite.Require().NoError(err)
	suite.Empty(txns)
}

func (suite *FundingServiceTestSuite) TestDeposit_RejectsInvalidInput() {
	cases := map[string]func(*dto.DepositRequest){
		"zero amount":       func(r *dto.DepositRequest) { r.Amount = decimal.Zero },
		"negative amount":   func(r *dto.DepositRequest) { r.Amount = decimal.NewFromInt(-10) },
		"over maximum":      func(r *dto.DepositRequest) { r.Amount = decimal.NewFromInt(50001) },
		"short card number": func(r *dto.DepositRequest) { r.CardNumber = "1234" },
		"letters in card":   func(r *dto.DepositRequest) { r.CardNumber = "4242abcd42424242" },
		"bad expiry format": func(r *dto.DepositRequest) { r.ExpiryDate = "13/39" },
		"expired card":      func(r *dto.DepositRequest) { r.ExpiryDate = "01/20" },
		"bad cvc":           func(r *dto.DepositRequest) { r.CVC = "12" },
		"blank cardholder":  func(r *dto.DepositRequest) { r.CardHolder = "   " },
	}

	for name, mutate := range cases {
		req := validDepositRequest()
		mutate(&req)
		_, err := suite.service.Deposit(context.Background(), suite.accountID, req)
		suite.ErrorIs(err, apperrors.ErrValidation, "case %q", name)
	}

	// None of the rejected deposits touched the balance.
	account, err := suite.repo.FindAccountByID(context.Background(), suite.accountID)
	suite.Require().NoError(err)
	suite.True(account.Portfolio.Balance.Equal(decimal.NewFromInt(10000)))
}

func (suite *FundingServiceTestSuite) TestDeposit_AmountAtMaximum() {
	req := validDepositRequest()
	req.Amount = decimal.NewFromInt(50000)

	portfolio, err := suite.service.Deposit(context.Background(), suite.accountID, req)
	suite.Require().NoError(err)
	suite.True(portfolio.Balance.Equal(decimal.NewFromInt(60000)))
}

func (suite *FundingServiceTestSuite) TestDeposit_UnknownAccount() {
	_, err := suite.service.Deposit(context.Background(), uuid.NewString(), validDepositRequest())
	suite.Require().ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *FundingServiceTestSuite) TestDeposit_EmptyAccountID() {
	_, err := suite.service.Deposit(context.Background(), "", validDepositRequest())
	suite.Require().ErrorIs(err, apperrors.ErrUnauthorized)
}

func TestFundingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(FundingServiceTestSuite))
}
