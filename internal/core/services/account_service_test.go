package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"github.com/boldtrade/boldtrade_backend/internal/adapters/database/memory"
	"github.com/boldtrade/boldtrade_backend/internal/apperrors"
	portsrepo "github.com/boldtrade/boldtrade_backend/internal/core/ports/repositories"
	portssvc "github.com/boldtrade/boldtrade_backend/internal/core/ports/services"
	"github.com/boldtrade/boldtrade_backend/internal/core/services"
	"github.com/boldtrade/boldtrade_backend/internal/dto"
)

type AccountServiceTestSuite struct {
	suite.Suite
	repo    portsrepo.AccountRepositoryFacade
	service portssvc.AccountSvcFacade
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.repo = memory.NewAccountRepository()
	suite.service = services.NewAccountService(suite.repo, decimal.NewFromInt(10000))
}

func validRegisterRequest() dto.RegisterRequest {
	return dto.RegisterRequest{
		Email:           "trader@example.com",
		Password:        "hunter22",
		ConfirmPassword: "hunter22",
	}
}

func (suite *AccountServiceTestSuite) TestRegister_Success() {
	account, err := suite.service.Register(context.Background(), validRegisterRequest())

	suite.Require().NoError(err)
	suite.Require().NotNil(account)
	suite.NotEmpty(account.AccountID)
	suite.Equal("trader@example.com", account.Email)

	// New accounts open with the demo balance and no holdings.
	suite.True(account.Portfolio.Balance.Equal(decimal.NewFromInt(10000)))
	suite.Empty(account.Portfolio.Holdings)

	// The password is stored hashed, never in the clear.
	suite.NotEqual("hunter22", account.PasswordHash)
	suite.NoError(bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte("hunter22")))
}

func (suite *AccountServiceTestSuite) TestRegister_PasswordMismatch() {
	req := validRegisterRequest()
	req.ConfirmPassword = "different"

	_, err := suite.service.Register(context.Background(), req)
	suite.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AccountServiceTestSuite) TestRegister_PasswordTooShort() {
	req := validRegisterRequest()
	req.Password = "short"
	req.ConfirmPassword = "short"

	_, err := suite.service.Register(context.Background(), req)
	suite.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AccountServiceTestSuite) TestRegister_DuplicateEmail() {
	_, err := suite.service.Register(context.Background(), validRegisterRequest())
	suite.Require().NoError(err)

	_, err = suite.service.Register(context.Background(), validRegisterRequest())
	suite.Require().ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *AccountServiceTestSuite) TestRegister_EmailMatchIsExact() {
	_, err := suite.service.Register(context.Background(), validRegisterRequest())
	suite.Require().NoError(err)

	// Same address in a different case registers a separate account.
	req := validRegisterRequest()
	req.Email = "Trader@example.com"
	account, err := suite.service.Register(context.Background(), req)
	suite.Require().NoError(err)
	suite.Equal("Trader@example.com", account.Email)
}

func (suite *AccountServiceTestSuite) TestAuthenticate_Success() {
	registered, err := suite.service.Register(context.Background(), validRegisterRequest())
	suite.Require().NoError(err)

	account, err := suite.service.Authenticate(context.Background(), "trader@example.com", "hunter22")
	suite.Require().NoError(err)
	suite.Equal(registered.AccountID, account.AccountID)
}

func (suite *AccountServiceTestSuite) TestAuthenticate_WrongPassword() {
	_, err := suite.service.Register(context.Background(), validRegisterRequest())
	suite.Require().NoError(err)

	_, err = suite.service.Authenticate(context.Background(), "trader@example.com", "wrong")
	suite.Require().ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *AccountServiceTestSuite) TestAuthenticate_UnknownEmail() {
	_, err := suite.service.Authenticate(context.Background(), "nobody@example.com", "hunter22")

	// Unknown email and wrong password are indistinguishable to the caller.
	suite.Require().ErrorIs(err, apperrors.ErrUnauthorized)
	suite.NotErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AccountServiceTestSuite) TestGetAccountByID_NotFound() {
	_, err := suite.service.GetAccountByID(context.Background(), "missing")
	suite.Require().ErrorIs(err, apperrors.ErrNotFound)
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
