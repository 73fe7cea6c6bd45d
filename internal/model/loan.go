package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LoanType enum constants
const (
	LoanTypeSalaryAdvance = "salary_advance"
	LoanTypeStaffLoan     = "staff_loan"
	LoanTypeEmergencyLoan = "emergency_loan"
)

// LoanStatus enum constants
const (
	LoanStatusDraft      = "draft"
	LoanStatusPending    = "pending"
	LoanStatusApproved   = "approved"
	LoanStatusRejected   = "rejected"
	LoanStatusDisbursed  = "disbursed"
	LoanStatusActive     = "active"
	LoanStatusCompleted  = "completed"
	LoanStatusDefaulted  = "defaulted"
	LoanStatusCancelled  = "cancelled"
	LoanStatusWrittenOff = "written_off"
)

// LoanNumberPrefixes maps loan types to the prefix used in loan numbers
var LoanNumberPrefixes = map[string]string{
	LoanTypeSalaryAdvance: "SAL",
	LoanTypeStaffLoan:     "STL",
	LoanTypeEmergencyLoan: "EMG",
}

// OpenLoanStatuses are the statuses that count as an in-flight staff loan for the
// one-active-loan-per-staff rule.
var OpenLoanStatuses = []string{LoanStatusPending, LoanStatusApproved, LoanStatusDisbursed, LoanStatusActive}

// Loan is the aggregate for one loan application and its full lifecycle.
// Running totals obey: outstanding_balance == max(0, total_payable - total_paid).
// Loans are never physically deleted.
type Loan struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	LoanNumber string    `gorm:"type:varchar(30);uniqueIndex;not null" json:"loan_number"`
	LoanType   string    `gorm:"type:varchar(20);not null;index" json:"loan_type"`

	StaffID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"staff_id"`
	Staff       *Staff     `gorm:"foreignKey:StaffID" json:"staff,omitempty"`
	GuarantorID *uuid.UUID `gorm:"type:uuid;index" json:"guarantor_id"`
	Guarantor   *Staff     `gorm:"foreignKey:GuarantorID" json:"guarantor,omitempty"`

	// Terms
	Principal          decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"principal"`
	AnnualInterestRate decimal.Decimal `gorm:"type:decimal(10,4);not null;default:0" json:"annual_interest_rate"` // percent
	TermMonths         int             `gorm:"not null" json:"term_months"`
	TotalInterest      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"total_interest"`
	TotalPayable       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"total_payable"`
	MonthlyInstallment decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"monthly_installment"` // advisory EMI, see finance package

	// Running totals
	TotalPaid          decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"total_paid"`
	OutstandingBalance decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"outstanding_balance"`

	// Lifecycle dates
	ApplicationDate    time.Time  `gorm:"not null" json:"application_date"`
	ApprovalDate       *time.Time `json:"approval_date"`
	DisbursementDate   *time.Time `json:"disbursement_date"`
	FirstRepaymentDate *time.Time `json:"first_repayment_date"`
	MaturityDate       *time.Time `json:"maturity_date"`

	Status string `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`

	// Correlation id of the external approval workflow instance, empty until the
	// engine acknowledged the registration.
	ApprovalInstanceID string `gorm:"type:varchar(100);index" json:"approval_instance_id"`

	// Disbursement metadata
	DisbursedBy           *uuid.UUID `gorm:"type:uuid" json:"disbursed_by"`
	DisbursementReference string     `gorm:"type:varchar(100)" json:"disbursement_reference"`
	DisbursementMethod    string     `gorm:"type:varchar(50)" json:"disbursement_method"`

	// Salary deduction policy
	DeductFromSalary    bool            `gorm:"default:true" json:"deduct_from_salary"`
	MaxDeductionPercent decimal.Decimal `gorm:"type:decimal(10,4);not null;default:33.33" json:"max_deduction_percent"`

	// Audit
	CreatedBy       *uuid.UUID `gorm:"type:uuid" json:"created_by"`
	ApprovedBy      *uuid.UUID `gorm:"type:uuid" json:"approved_by"`
	Approver        *Staff     `gorm:"foreignKey:ApprovedBy" json:"approver,omitempty"`
	ApprovalComment string     `gorm:"type:text" json:"approval_comment"`
	RejectionReason string     `gorm:"type:text" json:"rejection_reason"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsOpen reports whether the loan still counts against the one-active-staff-loan rule
func (l *Loan) IsOpen() bool {
	switch l.Status {
	case LoanStatusPending, LoanStatusApproved, LoanStatusDisbursed, LoanStatusActive:
		return true
	}
	return false
}

// IsDecided reports whether the external approval already resolved this loan
func (l *Loan) IsDecided() bool {
	return l.Status != LoanStatusPending
}
