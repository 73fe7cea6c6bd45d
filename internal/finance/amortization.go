// Package finance holds the pure monetary arithmetic for the loan engine.
//
// Two interest conventions coexist here on purpose: InstallmentAmount is the
// standard reducing-balance annuity (EMI) figure shown to applicants, while
// TotalInterest is flat-rate and is what the repayment schedule actually splits.
// Callers must not assume InstallmentAmount * months == principal + TotalInterest.
package finance

import (
	"math"

	"github.com/shopspring/decimal"
)

var twelve = decimal.NewFromInt(12)

// InstallmentAmount computes the advisory monthly payment for a reducing-balance
// loan, rounded to 2 decimal places. With a zero rate it is an even split of the
// principal.
//
//	monthlyRate = annualRate/100/12
//	payment     = P * r * (1+r)^n / ((1+r)^n - 1)
func InstallmentAmount(principal decimal.Decimal, annualRatePercent decimal.Decimal, months int) decimal.Decimal {
	if months <= 0 {
		return decimal.Zero
	}
	if annualRatePercent.IsZero() {
		return principal.Div(decimal.NewFromInt(int64(months))).Round(2)
	}

	// float64 only for the power term, decimal for the monetary arithmetic
	monthlyRate, _ := annualRatePercent.Div(decimal.NewFromInt(100)).Div(twelve).Float64()
	factor := math.Pow(1+monthlyRate, float64(months))
	p, _ := principal.Float64()
	payment := p * monthlyRate * factor / (factor - 1)
	return decimal.NewFromFloat(payment).Round(2)
}

// TotalInterest computes flat-rate interest over the whole term, rounded to
// 2 decimal places: principal * (annualRate/100/12) * months. Zero rate yields
// zero interest.
func TotalInterest(principal decimal.Decimal, annualRatePercent decimal.Decimal, months int) decimal.Decimal {
	if months <= 0 || annualRatePercent.IsZero() {
		return decimal.Zero
	}
	monthlyRate := annualRatePercent.Div(decimal.NewFromInt(100)).Div(twelve)
	return principal.Mul(monthlyRate).Mul(decimal.NewFromInt(int64(months))).Round(2)
}
