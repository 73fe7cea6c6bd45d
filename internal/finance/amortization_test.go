package finance

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestInstallmentAmount_ZeroRate(t *testing.T) {
	got := InstallmentAmount(decimal.NewFromInt(12000), decimal.Zero, 12)

	if !got.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("expected 1000, got %s", got)
	}
}

func TestInstallmentAmount_WithRate(t *testing.T) {
	// 12000 at 12% over 12 months: standard EMI is 1066.19
	got := InstallmentAmount(decimal.NewFromInt(12000), decimal.NewFromInt(12), 12)

	expected := decimal.NewFromFloat(1066.19)
	if !got.Equal(expected) {
		t.Errorf("expected %s, got %s", expected, got)
	}
}

func TestInstallmentAmount_InvalidTerm(t *testing.T) {
	got := InstallmentAmount(decimal.NewFromInt(1000), decimal.NewFromInt(10), 0)

	if !got.IsZero() {
		t.Errorf("expected zero for zero term, got %s", got)
	}
}

func TestTotalInterest_FlatRate(t *testing.T) {
	// 12000 * (12/100/12) * 12 = 1200
	got := TotalInterest(decimal.NewFromInt(12000), decimal.NewFromInt(12), 12)

	if !got.Equal(decimal.NewFromInt(1200)) {
		t.Errorf("expected 1200, got %s", got)
	}
}

func TestTotalInterest_ZeroRate(t *testing.T) {
	got := TotalInterest(decimal.NewFromInt(12000), decimal.Zero, 12)

	if !got.IsZero() {
		t.Errorf("expected zero interest, got %s", got)
	}
}

func TestConventionsDiverge(t *testing.T) {
	// The EMI figure and the flat-rate schedule are different conventions.
	// EMI * months must NOT be assumed equal to principal + flat interest.
	principal := decimal.NewFromInt(12000)
	rate := decimal.NewFromInt(12)

	emiTotal := InstallmentAmount(principal, rate, 12).Mul(decimal.NewFromInt(12))
	flatTotal := principal.Add(TotalInterest(principal, rate, 12))

	if emiTotal.Equal(flatTotal) {
		t.Errorf("expected EMI total %s to differ from flat total %s", emiTotal, flatTotal)
	}
}
