package domain

import (
	"github.com/shopspring/decimal"
)

// DustEpsilon is the threshold below which a holding left over after a sell
// is considered rounding residue and removed outright. Decimal division on
// the exchange path can leave quantities like 1e-28 behind; anything at or
// below this bound is swept.
var DustEpsilon = decimal.New(1, -9) // 1e-9

// Portfolio holds the cash balance and asset holdings for one account.
// Invariants: Balance is never negative, and Holdings never contains an
// entry with a zero or negative quantity.
type Portfolio struct {
	Balance  decimal.Decimal            `json:"balance"`
	Holdings map[string]decimal.Decimal `json:"holdings"`
}

// NewPortfolio returns a portfolio with the given opening balance and no holdings.
func NewPortfolio(openingBalance decimal.Decimal) Portfolio {
	return Portfolio{
		Balance:  openingBalance,
		Holdings: make(map[string]decimal.Decimal),
	}
}

// HoldingQuantity returns the held quantity for an asset, or zero if the
// asset is not held.
func (p Portfolio) HoldingQuantity(asset string) decimal.Decimal {
	if qty, ok := p.Holdings[asset]; ok {
		return qty
	}
	return decimal.Zero
}

// Clone returns a deep copy of the portfolio. Services mutate a clone and
// hand the finished snapshot to the repository in one write, so a failed
// operation never leaves a half-updated portfolio behind.
func (p Portfolio) Clone() Portfolio {
	holdings := make(map[string]decimal.Decimal, len(p.Holdings))
	for asset, qty := range p.Holdings {
		holdings[asset] = qty
	}
	return Portfolio{
		Balance:  p.Balance,
		Holdings: holdings,
	}
}
