package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RepaymentStatus enum constants
const (
	RepaymentStatusScheduled     = "scheduled"
	RepaymentStatusPending       = "pending"
	RepaymentStatusPaid          = "paid"
	RepaymentStatusPartiallyPaid = "partially_paid"
	RepaymentStatusOverdue       = "overdue"
	RepaymentStatusWaived        = "waived"
)

// PaymentMethodSalaryDeduction marks repayments applied by the payroll batch
const PaymentMethodSalaryDeduction = "salary_deduction"

// OpenRepaymentStatuses are the statuses a payment can still be applied against,
// in the order the recorder considers them.
var OpenRepaymentStatuses = []string{RepaymentStatusScheduled, RepaymentStatusPending, RepaymentStatusOverdue, RepaymentStatusPartiallyPaid}

// LoanRepayment is one scheduled installment of a loan. Rows are deleted and
// regenerated wholesale when the schedule is rebuilt, never soft-retained.
type LoanRepayment struct {
	ID     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	LoanID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_loan_installment;constraint:OnDelete:CASCADE" json:"loan_id"`
	Loan   *Loan     `gorm:"foreignKey:LoanID" json:"loan,omitempty"`

	InstallmentNumber int       `gorm:"not null;uniqueIndex:idx_loan_installment" json:"installment_number"`
	DueDate           time.Time `gorm:"not null;index" json:"due_date"`

	PrincipalComponent decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"principal_component"`
	InterestComponent  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"interest_component"`
	TotalAmount        decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"total_amount"`
	PaidAmount         decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"paid_amount"`
	WaivedAmount       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"waived_amount"`

	// Loan-level payable balance after this installment, floored at zero
	RunningBalance decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"running_balance"`

	Status string `gorm:"type:varchar(20);not null;default:'scheduled';index" json:"status"`

	// Payment metadata once settled
	PaymentDate      *time.Time `json:"payment_date"`
	PaymentReference string     `gorm:"type:varchar(100)" json:"payment_reference"`
	PaymentMethod    string     `gorm:"type:varchar(50)" json:"payment_method"`
	Notes            string     `gorm:"type:text" json:"notes"`
	PayrollMonth     string     `gorm:"type:varchar(7);index" json:"payroll_month"` // YYYY-MM when deducted from salary
	PayrollReference string     `gorm:"type:varchar(100)" json:"payroll_reference"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Outstanding returns total - paid - waived for this installment
func (r *LoanRepayment) Outstanding() decimal.Decimal {
	return r.TotalAmount.Sub(r.PaidAmount).Sub(r.WaivedAmount)
}

// IsSettled reports whether nothing more can be collected on this installment
func (r *LoanRepayment) IsSettled() bool {
	return r.Status == RepaymentStatusPaid || r.Status == RepaymentStatusWaived
}

// IsOverdue reports whether the installment is unpaid past its due date
func (r *LoanRepayment) IsOverdue(now time.Time) bool {
	return !r.IsSettled() && r.DueDate.Before(now)
}

// DaysOverdue returns the number of whole days past due, 0 when not overdue
func (r *LoanRepayment) DaysOverdue(now time.Time) int {
	if !r.IsOverdue(now) {
		return 0
	}
	return int(now.Sub(r.DueDate).Hours() / 24)
}
