package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PayrollExportRow is one salary-deductible installment due in a payroll month,
// joined with staff and branch identity. Ordered by staff number then loan number.
type PayrollExportRow struct {
	RepaymentID       uuid.UUID       `json:"repayment_id"`
	LoanID            uuid.UUID       `json:"loan_id"`
	LoanNumber        string          `json:"loan_number"`
	LoanType          string          `json:"loan_type"`
	StaffID           uuid.UUID       `json:"staff_id"`
	StaffNumber       string          `json:"staff_number"`
	StaffName         string          `json:"staff_name"`
	BranchName        string          `json:"branch_name"`
	InstallmentNumber int             `json:"installment_number"`
	DueDate           time.Time       `json:"due_date"`
	TotalAmount       decimal.Decimal `json:"total_amount"`
	PaidAmount        decimal.Decimal `json:"paid_amount"`
	DeductionAmount   decimal.Decimal `json:"deduction_amount"` // total - paid - waived
	MonthlySalary     decimal.Decimal `json:"monthly_salary"`
}

// PayrollRowResult is the per-installment outcome of a payroll batch run
type PayrollRowResult struct {
	RepaymentID       uuid.UUID       `json:"repayment_id"`
	LoanNumber        string          `json:"loan_number"`
	StaffNumber       string          `json:"staff_number"`
	InstallmentNumber int             `json:"installment_number"`
	Amount            decimal.Decimal `json:"amount"`
	Success           bool            `json:"success"`
	Error             string          `json:"error,omitempty"`
}

// PayrollBatchResult reports a whole payroll run. The batch itself always
// succeeds; failures are visible per row.
type PayrollBatchResult struct {
	Month     string             `json:"month"`
	Reference string             `json:"reference"`
	Processed int                `json:"processed"`
	Failed    int                `json:"failed"`
	Results   []PayrollRowResult `json:"results"`
}

// BranchPayrollSummary aggregates a month's deductions per branch
type BranchPayrollSummary struct {
	BranchName     string          `json:"branch_name"`
	StaffCount     int64           `json:"staff_count"`
	LoanCount      int64           `json:"loan_count"`
	TotalDeduction decimal.Decimal `json:"total_deduction"`
}

// LoanStats is the portfolio dashboard aggregate
type LoanStats struct {
	CountByStatus    map[string]int64 `json:"count_by_status"`
	TotalDisbursed   decimal.Decimal  `json:"total_disbursed"`
	TotalOutstanding decimal.Decimal  `json:"total_outstanding"`
	TotalCollected   decimal.Decimal  `json:"total_collected"`
	OverdueCount     int64            `json:"overdue_count"`
	GeneratedAt      time.Time        `json:"generated_at"`
}
