package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"hrms/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type repaymentFixture struct {
	service    RepaymentService
	loans      *fakeLoanRepo
	repayments *fakeRepaymentRepo
	audits     *fakeAuditRepo
}

func newRepaymentFixture() *repaymentFixture {
	loans := newFakeLoanRepo()
	repayments := newFakeRepaymentRepo()
	audits := &fakeAuditRepo{}

	return &repaymentFixture{
		service:    NewRepaymentService(loans, repayments, audits, &fakeTxManager{}),
		loans:      loans,
		repayments: repayments,
		audits:     audits,
	}
}

// seedActiveLoan stores a 12000 at 12% flat, 12 month loan: total payable
// 13200, installments of 1100 (1000 principal + 100 interest).
func (f *repaymentFixture) seedActiveLoan() model.Loan {
	firstRepayment := time.Date(2026, 9, 25, 0, 0, 0, 0, time.UTC)
	return f.loans.add(model.Loan{
		LoanNumber:         "STL-2026-000001",
		LoanType:           model.LoanTypeStaffLoan,
		StaffID:            uuid.New(),
		Principal:          mustDecimal("12000"),
		AnnualInterestRate: mustDecimal("12"),
		TermMonths:         12,
		TotalInterest:      mustDecimal("1200"),
		TotalPayable:       mustDecimal("13200"),
		TotalPaid:          decimal.Zero,
		OutstandingBalance: mustDecimal("13200"),
		ApplicationDate:    firstRepayment.AddDate(0, -1, 0),
		FirstRepaymentDate: &firstRepayment,
		Status:             model.LoanStatusActive,
		DeductFromSalary:   true,
	})
}

func TestGenerateScheduleSplitsFlatInterest(t *testing.T) {
	f := newRepaymentFixture()
	loan := f.seedActiveLoan()

	rows, err := f.service.GenerateSchedule(context.Background(), loan.ID.String())
	if err != nil {
		t.Fatalf("GenerateSchedule failed: %v", err)
	}

	if len(rows) != 12 {
		t.Fatalf("expected 12 installments, got %d", len(rows))
	}

	sum := decimal.Zero
	for i, row := range rows {
		if row.InstallmentNumber != i+1 {
			t.Errorf("row %d: expected installment number %d, got %d", i, i+1, row.InstallmentNumber)
		}
		if row.PrincipalComponent != "1000.00" {
			t.Errorf("installment %d: expected principal 1000.00, got %s", row.InstallmentNumber, row.PrincipalComponent)
		}
		if row.InterestComponent != "100.00" {
			t.Errorf("installment %d: expected interest 100.00, got %s", row.InstallmentNumber, row.InterestComponent)
		}
		if row.Status != model.RepaymentStatusScheduled {
			t.Errorf("installment %d: expected status scheduled, got %s", row.InstallmentNumber, row.Status)
		}
		sum = sum.Add(mustDecimal(row.TotalAmount))
	}

	if !sum.Equal(mustDecimal("13200")) {
		t.Errorf("installments must sum to total payable 13200, got %s", sum)
	}

	// Due dates step monthly from the first repayment date anchor
	if rows[0].DueDate != "2026-10-25" {
		t.Errorf("expected first due date 2026-10-25, got %s", rows[0].DueDate)
	}
	if rows[11].DueDate != "2027-09-25" {
		t.Errorf("expected last due date 2027-09-25, got %s", rows[11].DueDate)
	}
	if rows[11].RunningBalance != "0.00" {
		t.Errorf("expected final running balance 0.00, got %s", rows[11].RunningBalance)
	}
}

func TestGenerateScheduleReplacesPriorRows(t *testing.T) {
	f := newRepaymentFixture()
	loan := f.seedActiveLoan()

	first, err := f.service.GenerateSchedule(context.Background(), loan.ID.String())
	if err != nil {
		t.Fatalf("first GenerateSchedule failed: %v", err)
	}

	oldIDs := make(map[string]bool)
	for _, row := range first {
		oldIDs[row.ID] = true
	}

	second, err := f.service.GenerateSchedule(context.Background(), loan.ID.String())
	if err != nil {
		t.Fatalf("second GenerateSchedule failed: %v", err)
	}

	if len(second) != 12 {
		t.Fatalf("regeneration must keep 12 installments, got %d", len(second))
	}
	for _, row := range second {
		if oldIDs[row.ID] {
			t.Errorf("installment %d kept its old id after regeneration", row.InstallmentNumber)
		}
	}

	stored, _ := f.repayments.ListByLoan(context.Background(), loan.ID)
	if len(stored) != 12 {
		t.Errorf("expected 12 stored rows after regeneration, got %d", len(stored))
	}
}

func TestGenerateScheduleUnknownLoan(t *testing.T) {
	f := newRepaymentFixture()

	_, err := f.service.GenerateSchedule(context.Background(), uuid.NewString())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRecordPaymentAppliesToEarliestOpenInstallment(t *testing.T) {
	f := newRepaymentFixture()
	loan := f.seedActiveLoan()
	if _, err := f.service.GenerateSchedule(context.Background(), loan.ID.String()); err != nil {
		t.Fatalf("GenerateSchedule failed: %v", err)
	}

	result, err := f.service.RecordPayment(context.Background(), loan.ID.String(), RecordPaymentRequest{
		Amount:    "1100",
		Reference: "RCPT-1",
		Method:    "cash",
	})
	if err != nil {
		t.Fatalf("RecordPayment failed: %v", err)
	}

	if result.Installment.InstallmentNumber != 1 {
		t.Errorf("expected payment on installment 1, got %d", result.Installment.InstallmentNumber)
	}
	if result.Installment.Status != model.RepaymentStatusPaid {
		t.Errorf("expected installment paid, got %s", result.Installment.Status)
	}
	if result.TotalPaid != "1100.00" {
		t.Errorf("expected total paid 1100.00, got %s", result.TotalPaid)
	}
	if result.OutstandingBalance != "12100.00" {
		t.Errorf("expected outstanding 12100.00, got %s", result.OutstandingBalance)
	}
	if result.LoanStatus != model.LoanStatusActive {
		t.Errorf("expected loan to stay active, got %s", result.LoanStatus)
	}
	if f.audits.countAction(model.ActionRecordRepayment) != 1 {
		t.Errorf("expected one RECORD_REPAYMENT audit entry")
	}
}

func TestRecordPaymentPartialThenSettled(t *testing.T) {
	f := newRepaymentFixture()
	loan := f.seedActiveLoan()
	if _, err := f.service.GenerateSchedule(context.Background(), loan.ID.String()); err != nil {
		t.Fatalf("GenerateSchedule failed: %v", err)
	}

	result, err := f.service.RecordPayment(context.Background(), loan.ID.String(), RecordPaymentRequest{Amount: "400"})
	if err != nil {
		t.Fatalf("partial payment failed: %v", err)
	}
	if result.Installment.Status != model.RepaymentStatusPartiallyPaid {
		t.Errorf("expected partially_paid, got %s", result.Installment.Status)
	}

	// A partially paid installment stays the earliest open one
	result, err = f.service.RecordPayment(context.Background(), loan.ID.String(), RecordPaymentRequest{Amount: "700"})
	if err != nil {
		t.Fatalf("settling payment failed: %v", err)
	}
	if result.Installment.InstallmentNumber != 1 {
		t.Errorf("expected second payment on installment 1, got %d", result.Installment.InstallmentNumber)
	}
	if result.Installment.Status != model.RepaymentStatusPaid {
		t.Errorf("expected paid after settling, got %s", result.Installment.Status)
	}
	if result.Installment.PaidAmount != "1100.00" {
		t.Errorf("expected paid amount 1100.00, got %s", result.Installment.PaidAmount)
	}
}

func TestRecordPaymentOverpaymentAllowed(t *testing.T) {
	f := newRepaymentFixture()
	loan := f.seedActiveLoan()
	if _, err := f.service.GenerateSchedule(context.Background(), loan.ID.String()); err != nil {
		t.Fatalf("GenerateSchedule failed: %v", err)
	}

	// No cap: the amount may exceed the installment's remainder
	result, err := f.service.RecordPayment(context.Background(), loan.ID.String(), RecordPaymentRequest{Amount: "2000"})
	if err != nil {
		t.Fatalf("overpayment must be accepted: %v", err)
	}

	if result.Installment.Status != model.RepaymentStatusPaid {
		t.Errorf("expected installment paid, got %s", result.Installment.Status)
	}
	if result.Installment.PaidAmount != "2000.00" {
		t.Errorf("expected paid amount 2000.00, got %s", result.Installment.PaidAmount)
	}
	if result.TotalPaid != "2000.00" {
		t.Errorf("expected loan total paid 2000.00, got %s", result.TotalPaid)
	}
	if result.OutstandingBalance != "11200.00" {
		t.Errorf("expected outstanding 11200.00, got %s", result.OutstandingBalance)
	}
}

func TestRecordPaymentCompletesLoan(t *testing.T) {
	f := newRepaymentFixture()
	loan := f.seedActiveLoan()
	if _, err := f.service.GenerateSchedule(context.Background(), loan.ID.String()); err != nil {
		t.Fatalf("GenerateSchedule failed: %v", err)
	}

	result, err := f.service.RecordPayment(context.Background(), loan.ID.String(), RecordPaymentRequest{Amount: "13200"})
	if err != nil {
		t.Fatalf("full settlement failed: %v", err)
	}

	if result.LoanStatus != model.LoanStatusCompleted {
		t.Errorf("expected loan completed, got %s", result.LoanStatus)
	}
	if result.OutstandingBalance != "0.00" {
		t.Errorf("expected outstanding 0.00, got %s", result.OutstandingBalance)
	}
}

func TestRecordPaymentRequiresActiveOrDisbursedLoan(t *testing.T) {
	f := newRepaymentFixture()
	loan := f.seedActiveLoan()
	loan.Status = model.LoanStatusPending
	f.loans.loans[loan.ID] = loan

	_, err := f.service.RecordPayment(context.Background(), loan.ID.String(), RecordPaymentRequest{Amount: "100"})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict on pending loan, got %v", err)
	}

	stored, _ := f.loans.FindByID(context.Background(), loan.ID)
	if !stored.TotalPaid.IsZero() {
		t.Errorf("rejected payment must not mutate loan totals")
	}
}

func TestRecordPaymentUnknownLoan(t *testing.T) {
	f := newRepaymentFixture()

	_, err := f.service.RecordPayment(context.Background(), uuid.NewString(), RecordPaymentRequest{Amount: "100"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRecordPaymentNoOpenInstallment(t *testing.T) {
	f := newRepaymentFixture()
	loan := f.seedActiveLoan()
	if _, err := f.service.GenerateSchedule(context.Background(), loan.ID.String()); err != nil {
		t.Fatalf("GenerateSchedule failed: %v", err)
	}

	for id, row := range f.repayments.rows {
		row.Status = model.RepaymentStatusPaid
		f.repayments.rows[id] = row
	}

	_, err := f.service.RecordPayment(context.Background(), loan.ID.String(), RecordPaymentRequest{Amount: "100"})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict when nothing is open, got %v", err)
	}
}

func TestRecordPaymentRejectsForeignInstallment(t *testing.T) {
	f := newRepaymentFixture()
	loan := f.seedActiveLoan()
	if _, err := f.service.GenerateSchedule(context.Background(), loan.ID.String()); err != nil {
		t.Fatalf("GenerateSchedule failed: %v", err)
	}

	other := f.seedActiveLoan()
	rows, _ := f.service.GenerateSchedule(context.Background(), other.ID.String())

	_, err := f.service.RecordPayment(context.Background(), loan.ID.String(), RecordPaymentRequest{
		InstallmentID: rows[0].ID,
		Amount:        "100",
	})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict for an installment of another loan, got %v", err)
	}
}

func TestRecordPaymentValidatesAmount(t *testing.T) {
	f := newRepaymentFixture()
	loan := f.seedActiveLoan()

	for _, amount := range []string{"", "abc", "0", "-50"} {
		_, err := f.service.RecordPayment(context.Background(), loan.ID.String(), RecordPaymentRequest{Amount: amount})
		if !errors.Is(err, ErrValidation) {
			t.Errorf("amount %q: expected ErrValidation, got %v", amount, err)
		}
	}
}

func TestRecordPayrollDeductionStampsPayrollFields(t *testing.T) {
	f := newRepaymentFixture()
	loan := f.seedActiveLoan()
	if _, err := f.service.GenerateSchedule(context.Background(), loan.ID.String()); err != nil {
		t.Fatalf("GenerateSchedule failed: %v", err)
	}

	rows, _ := f.repayments.ListByLoan(context.Background(), loan.ID)
	target := rows[0]

	err := f.service.RecordPayrollDeduction(context.Background(), loan.ID, target.ID, mustDecimal("1100"), "RUN-2026-10", "2026-10")
	if err != nil {
		t.Fatalf("RecordPayrollDeduction failed: %v", err)
	}

	updated, _ := f.repayments.FindByID(context.Background(), target.ID)
	if updated.Status != model.RepaymentStatusPaid {
		t.Errorf("expected installment paid, got %s", updated.Status)
	}
	if updated.PaymentMethod != model.PaymentMethodSalaryDeduction {
		t.Errorf("expected salary_deduction method, got %s", updated.PaymentMethod)
	}
	if updated.PayrollMonth != "2026-10" {
		t.Errorf("expected payroll month 2026-10, got %s", updated.PayrollMonth)
	}
	if updated.PayrollReference != "RUN-2026-10" {
		t.Errorf("expected payroll reference RUN-2026-10, got %s", updated.PayrollReference)
	}
}
