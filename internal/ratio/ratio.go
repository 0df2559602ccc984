// Package ratio provides the aggregate financial ratios of the dashboard:
// working capital requirement (BFR), days payable outstanding, cash ratio
// and current ratio. All functions are pure and total; a zero divisor
// yields zero instead of an error.
package ratio

import (
	"github.com/andresuchdata/paywatch/internal/domain"
	"github.com/shopspring/decimal"
)

var daysPerYear = decimal.NewFromInt(365)

// BFR computes the working capital requirement:
// stock + receivables - payables.
func BFR(stock, receivables, payables decimal.Decimal) decimal.Decimal {
	return stock.Add(receivables).Sub(payables)
}

// DPO computes days payable outstanding: payables / purchases * 365.
func DPO(payables, purchases decimal.Decimal) decimal.Decimal {
	if purchases.IsZero() {
		return decimal.Zero
	}
	return payables.Div(purchases).Mul(daysPerYear)
}

// CashRatio computes immediate liquidity: cash / payables.
func CashRatio(cash, payables decimal.Decimal) decimal.Decimal {
	if payables.IsZero() {
		return decimal.Zero
	}
	return cash.Div(payables)
}

// CurrentRatio computes short-term coverage:
// current assets / current liabilities.
func CurrentRatio(currentAssets, currentLiabilities decimal.Decimal) decimal.Decimal {
	if currentLiabilities.IsZero() {
		return decimal.Zero
	}
	return currentAssets.Div(currentLiabilities)
}

// Results bundles the four ratios computed from one set of inputs.
type Results struct {
	BFR          decimal.Decimal `json:"bfr"`
	DPO          decimal.Decimal `json:"dpo"`
	CashRatio    decimal.Decimal `json:"cash_ratio"`
	CurrentRatio decimal.Decimal `json:"current_ratio"`
}

// Compute evaluates all four ratios over a single input tuple.
func Compute(in domain.RatioInputs) Results {
	return Results{
		BFR:          BFR(in.Stock, in.Receivables, in.Payables),
		DPO:          DPO(in.Payables, in.Purchases),
		CashRatio:    CashRatio(in.Cash, in.Payables),
		CurrentRatio: CurrentRatio(in.CurrentAssets, in.CurrentLiabilities),
	}
}
