package services

import (
	portsrepo "github.com/boldtrade/boldtrade_backend/internal/core/ports/repositories"
	portssvc "github.com/boldtrade/boldtrade_backend/internal/core/ports/services"
	"github.com/boldtrade/boldtrade_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, quoteProvider portssvc.QuoteProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Account = NewAccountService(repos.AccountRepo, cfg.StartingBalance)
	container.Ledger = NewLedgerService(repos.AccountRepo)
	container.Funding = NewFundingService(repos.AccountRepo, cfg.MaxDepositAmount)
	container.Pricing = NewPricingService(quoteProvider)
	container.Token = NewTokenService(cfg, repos.SessionRepo, repos.AccountRepo)

	return container
}
