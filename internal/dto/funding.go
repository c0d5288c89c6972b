package dto

import "github.com/shopspring/decimal"

// DepositRequest carries the simulated card payment form. Card details are
// validated for shape only and never stored or charged.
type DepositRequest struct {
	Amount         decimal.Decimal `json:"amount" binding:"required"`
	CardNumber     string          `json:"cardNumber" binding:"required"`
	ExpiryDate     string          `json:"expiryDate" binding:"required"` // MM/YY
	CVC            string          `json:"cvc" binding:"required"`
	CardHolder     string          `json:"cardHolder" binding:"required"`
	BillingAddress string          `json:"billingAddress"`
}

// DepositResponse returns the credited portfolio.
type DepositResponse struct {
	Portfolio PortfolioResponse `json:"portfolio"`
}
