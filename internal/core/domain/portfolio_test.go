package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/boldtrade/boldtrade_backend/internal/core/domain"
)

func TestNewPortfolio(t *testing.T) {
	p := domain.NewPortfolio(decimal.NewFromInt(10000))

	assert.True(t, p.Balance.Equal(decimal.NewFromInt(10000)))
	assert.NotNil(t, p.Holdings)
	assert.Empty(t, p.Holdings)
}

func TestPortfolio_HoldingQuantity(t *testing.T) {
	p := domain.NewPortfolio(decimal.Zero)
	p.Holdings["BTC"] = decimal.RequireFromString("0.5")

	assert.True(t, p.HoldingQuantity("BTC").Equal(decimal.RequireFromString("0.5")))
	assert.True(t, p.HoldingQuantity("ETH").IsZero())
}

func TestPortfolio_CloneIsIndependent(t *testing.T) {
	p := domain.NewPortfolio(decimal.NewFromInt(100))
	p.Holdings["BTC"] = decimal.NewFromInt(1)

	clone := p.Clone()
	clone.Balance = decimal.Zero
	clone.Holdings["BTC"] = decimal.NewFromInt(2)
	clone.Holdings["ETH"] = decimal.NewFromInt(3)

	assert.True(t, p.Balance.Equal(decimal.NewFromInt(100)))
	assert.True(t, p.Holdings["BTC"].Equal(decimal.NewFromInt(1)))
	assert.NotContains(t, p.Holdings, "ETH")
}

func TestDustEpsilon(t *testing.T) {
	// Residue at or below the threshold counts as dust; anything above it is
	// a real holding.
	assert.True(t, decimal.New(1, -10).LessThanOrEqual(domain.DustEpsilon))
	assert.True(t, domain.DustEpsilon.LessThanOrEqual(domain.DustEpsilon))
	assert.False(t, decimal.New(2, -9).LessThanOrEqual(domain.DustEpsilon))
}
