package dto

import (
	"time"

	"github.com/boldtrade/boldtrade_backend/internal/core/domain"
)

// PortfolioResponse is the read view over an account's portfolio. Decimal
// values are serialized as strings to avoid float precision loss in clients.
type PortfolioResponse struct {
	Balance  string            `json:"balance"`
	Holdings map[string]string `json:"holdings"`
}

// AccountResponse is the public view of an account. The credential hash is
// never exposed.
type AccountResponse struct {
	AccountID string            `json:"accountID"`
	Email     string            `json:"email"`
	Portfolio PortfolioResponse `json:"portfolio"`
	CreatedAt time.Time         `json:"createdAt"`
}

// ToPortfolioResponse converts a domain portfolio to its response DTO.
func ToPortfolioResponse(p *domain.Portfolio) PortfolioResponse {
	holdings := make(map[string]string, len(p.Holdings))
	for asset, qty := range p.Holdings {
		holdings[asset] = qty.String()
	}
	return PortfolioResponse{
		Balance:  p.Balance.String(),
		Holdings: holdings,
	}
}

// ToAccountResponse converts a domain account to its response DTO.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID: a.AccountID,
		Email:     a.Email,
		Portfolio: ToPortfolioResponse(&a.Portfolio),
		CreatedAt: a.CreatedAt,
	}
}
