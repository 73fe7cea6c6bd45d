package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"hrms/internal/model"
	"hrms/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// --- DTOs ---

type RecordPaymentRequest struct {
	InstallmentID string `json:"installment_id"` // Optional; earliest open installment when empty
	Amount        string `json:"amount" binding:"required"`
	Reference     string `json:"reference"`
	Method        string `json:"method"`
	Notes         string `json:"notes"`
	RecordedBy    string `json:"-"`

	// Set by the payroll batch, not by API callers
	payrollMonth     string
	payrollReference string
}

type RepaymentResponse struct {
	ID                 string  `json:"id"`
	LoanID             string  `json:"loan_id"`
	InstallmentNumber  int     `json:"installment_number"`
	DueDate            string  `json:"due_date"`
	PrincipalComponent string  `json:"principal_component"`
	InterestComponent  string  `json:"interest_component"`
	TotalAmount        string  `json:"total_amount"`
	PaidAmount         string  `json:"paid_amount"`
	WaivedAmount       string  `json:"waived_amount"`
	Outstanding        string  `json:"outstanding"`
	RunningBalance     string  `json:"running_balance"`
	Status             string  `json:"status"`
	PaymentDate        *string `json:"payment_date"`
	PaymentReference   string  `json:"payment_reference,omitempty"`
	PaymentMethod      string  `json:"payment_method,omitempty"`
	PayrollMonth       string  `json:"payroll_month,omitempty"`
	DaysOverdue        int     `json:"days_overdue"`
}

type PaymentResult struct {
	Installment        RepaymentResponse `json:"installment"`
	LoanStatus         string            `json:"loan_status"`
	TotalPaid          string            `json:"total_paid"`
	OutstandingBalance string            `json:"outstanding_balance"`
}

// --- Interface ---

type RepaymentService interface {
	// GenerateSchedule rebuilds the full installment schedule for a loan inside
	// its own transaction. Existing rows are deleted and replaced.
	GenerateSchedule(ctx context.Context, loanID string) ([]RepaymentResponse, error)
	// GenerateForLoan is the in-transaction variant used during disbursement;
	// the caller owns the transaction and holds the loan row lock.
	GenerateForLoan(txCtx context.Context, loan *model.Loan) ([]model.LoanRepayment, error)
	RecordPayment(ctx context.Context, loanID string, req RecordPaymentRequest) (PaymentResult, error)
	RecordPayrollDeduction(ctx context.Context, loanID, installmentID uuid.UUID, amount decimal.Decimal, payrollReference, payrollMonth string) error
	ListByLoan(ctx context.Context, loanID string) ([]RepaymentResponse, error)
	ListOverdue(ctx context.Context) ([]RepaymentResponse, error)
}

type repaymentService struct {
	loanRepo      repository.LoanRepository
	repaymentRepo repository.RepaymentRepository
	auditRepo     repository.AuditRepository
	txManager     repository.TransactionManager
}

func NewRepaymentService(
	loanRepo repository.LoanRepository,
	repaymentRepo repository.RepaymentRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
) RepaymentService {
	return &repaymentService{
		loanRepo:      loanRepo,
		repaymentRepo: repaymentRepo,
		auditRepo:     auditRepo,
		txManager:     txManager,
	}
}

// --- Implementation ---

func (s *repaymentService) GenerateSchedule(ctx context.Context, loanID string) ([]RepaymentResponse, error) {
	id, err := uuid.Parse(loanID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid loan id", ErrValidation)
	}

	var rows []model.LoanRepayment
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		loan, findErr := s.loanRepo.FindByIDForUpdate(txCtx, id)
		if findErr != nil {
			if errors.Is(findErr, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: loan %s", ErrNotFound, loanID)
			}
			return fmt.Errorf("failed to load loan: %w", findErr)
		}

		var genErr error
		rows, genErr = s.GenerateForLoan(txCtx, loan)
		return genErr
	})

	if err != nil {
		return nil, err
	}

	result := make([]RepaymentResponse, 0, len(rows))
	for _, r := range rows {
		result = append(result, toRepaymentResponse(r))
	}
	return result, nil
}

// GenerateForLoan splits principal and flat-rate interest evenly across the
// term. Due dates step monthly from the anchor date: first repayment date,
// else disbursement date, else approval date, else now. The running balance is
// seeded from total payable and floored at zero.
func (s *repaymentService) GenerateForLoan(txCtx context.Context, loan *model.Loan) ([]model.LoanRepayment, error) {
	if loan.TermMonths <= 0 {
		return nil, fmt.Errorf("%w: loan has no term", ErrValidation)
	}

	if err := s.repaymentRepo.DeleteByLoan(txCtx, loan.ID); err != nil {
		return nil, fmt.Errorf("failed to clear existing schedule: %w", err)
	}

	anchor := time.Now()
	switch {
	case loan.FirstRepaymentDate != nil:
		anchor = *loan.FirstRepaymentDate
	case loan.DisbursementDate != nil:
		anchor = *loan.DisbursementDate
	case loan.ApprovalDate != nil:
		anchor = *loan.ApprovalDate
	}

	months := decimal.NewFromInt(int64(loan.TermMonths))
	principalComponent := loan.Principal.Div(months).Round(2)
	interestComponent := loan.TotalInterest.Div(months).Round(2)
	totalAmount := principalComponent.Add(interestComponent)

	running := loan.TotalPayable
	rows := make([]model.LoanRepayment, 0, loan.TermMonths)
	for i := 1; i <= loan.TermMonths; i++ {
		running = running.Sub(totalAmount)
		if running.IsNegative() {
			running = decimal.Zero
		}

		rows = append(rows, model.LoanRepayment{
			LoanID:             loan.ID,
			InstallmentNumber:  i,
			DueDate:            anchor.AddDate(0, i, 0),
			PrincipalComponent: principalComponent,
			InterestComponent:  interestComponent,
			TotalAmount:        totalAmount,
			PaidAmount:         decimal.Zero,
			WaivedAmount:       decimal.Zero,
			RunningBalance:     running,
			Status:             model.RepaymentStatusScheduled,
		})
	}

	if err := s.repaymentRepo.CreateBatch(txCtx, rows); err != nil {
		return nil, fmt.Errorf("failed to create schedule: %w", err)
	}

	audit := &model.AuditLog{
		Action:     model.ActionGenerateSchedule,
		EntityID:   loan.ID.String(),
		EntityName: loan.LoanNumber,
		Details:    fmt.Sprintf(`{"installments": %d}`, len(rows)),
	}
	if err := s.auditRepo.Log(txCtx, audit); err != nil {
		return nil, fmt.Errorf("failed to write audit log: %w", err)
	}

	return rows, nil
}

// RecordPayment applies a payment to one installment and reconciles the loan
// totals in the same transaction. No overpayment cap is enforced: the amount
// may exceed the installment's remainder.
func (s *repaymentService) RecordPayment(ctx context.Context, loanID string, req RecordPaymentRequest) (PaymentResult, error) {
	id, err := uuid.Parse(loanID)
	if err != nil {
		return PaymentResult{}, fmt.Errorf("%w: invalid loan id", ErrValidation)
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || !amount.IsPositive() {
		return PaymentResult{}, fmt.Errorf("%w: amount must be a positive amount", ErrValidation)
	}

	var recorderID *uuid.UUID
	if req.RecordedBy != "" {
		if parsed, parseErr := uuid.Parse(req.RecordedBy); parseErr == nil {
			recorderID = &parsed
		}
	}

	var loan *model.Loan
	var installment *model.LoanRepayment
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		var findErr error
		loan, findErr = s.loanRepo.FindByIDForUpdate(txCtx, id)
		if findErr != nil {
			if errors.Is(findErr, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: loan %s", ErrNotFound, loanID)
			}
			return fmt.Errorf("failed to load loan: %w", findErr)
		}

		if loan.Status != model.LoanStatusActive && loan.Status != model.LoanStatusDisbursed {
			return fmt.Errorf("%w: loan is %s, payments require an active or disbursed loan", ErrConflict, loan.Status)
		}

		if req.InstallmentID != "" {
			installmentID, parseErr := uuid.Parse(req.InstallmentID)
			if parseErr != nil {
				return fmt.Errorf("%w: invalid installment id", ErrValidation)
			}
			installment, findErr = s.repaymentRepo.FindByID(txCtx, installmentID)
			if findErr != nil {
				if errors.Is(findErr, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: installment %s", ErrNotFound, req.InstallmentID)
				}
				return fmt.Errorf("failed to load installment: %w", findErr)
			}
			if installment.LoanID != loan.ID {
				return fmt.Errorf("%w: installment does not belong to loan %s", ErrConflict, loan.LoanNumber)
			}
		} else {
			installment, findErr = s.repaymentRepo.FindNextOpen(txCtx, loan.ID)
			if findErr != nil {
				if errors.Is(findErr, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: no pending repayments for loan %s", ErrConflict, loan.LoanNumber)
				}
				return fmt.Errorf("failed to find open installment: %w", findErr)
			}
		}

		now := time.Now()
		installment.PaidAmount = installment.PaidAmount.Add(amount)
		installment.PaymentDate = &now
		installment.PaymentReference = req.Reference
		installment.PaymentMethod = req.Method
		installment.Notes = req.Notes
		installment.PayrollMonth = req.payrollMonth
		installment.PayrollReference = req.payrollReference

		if installment.PaidAmount.GreaterThanOrEqual(installment.TotalAmount) {
			installment.Status = model.RepaymentStatusPaid
		} else {
			installment.Status = model.RepaymentStatusPartiallyPaid
		}

		if updateErr := s.repaymentRepo.Update(txCtx, installment); updateErr != nil {
			return fmt.Errorf("failed to update installment: %w", updateErr)
		}

		// Loan-level reconciliation: outstanding == max(0, payable - paid)
		loan.TotalPaid = loan.TotalPaid.Add(amount)
		loan.OutstandingBalance = loan.TotalPayable.Sub(loan.TotalPaid)
		if loan.OutstandingBalance.LessThanOrEqual(decimal.Zero) {
			loan.OutstandingBalance = decimal.Zero
			loan.Status = model.LoanStatusCompleted
		}

		if updateErr := s.loanRepo.Update(txCtx, loan); updateErr != nil {
			return fmt.Errorf("failed to update loan totals: %w", updateErr)
		}

		details, _ := json.Marshal(map[string]interface{}{
			"installment_number": installment.InstallmentNumber,
			"amount":             amount.StringFixed(2),
			"method":             req.Method,
			"reference":          req.Reference,
		})
		audit := &model.AuditLog{
			StaffID:    recorderID,
			Action:     model.ActionRecordRepayment,
			EntityID:   loan.ID.String(),
			EntityName: loan.LoanNumber,
			Details:    string(details),
		}
		if auditErr := s.auditRepo.Log(txCtx, audit); auditErr != nil {
			return fmt.Errorf("failed to write audit log: %w", auditErr)
		}

		return nil
	})

	if err != nil {
		return PaymentResult{}, err
	}

	return PaymentResult{
		Installment:        toRepaymentResponse(*installment),
		LoanStatus:         loan.Status,
		TotalPaid:          loan.TotalPaid.StringFixed(2),
		OutstandingBalance: loan.OutstandingBalance.StringFixed(2),
	}, nil
}

// RecordPayrollDeduction is the payroll batch entry point: a RecordPayment with
// the method fixed to salary_deduction and the payroll month stamped on the row.
func (s *repaymentService) RecordPayrollDeduction(ctx context.Context, loanID, installmentID uuid.UUID, amount decimal.Decimal, payrollReference, payrollMonth string) error {
	_, err := s.RecordPayment(ctx, loanID.String(), RecordPaymentRequest{
		InstallmentID:    installmentID.String(),
		Amount:           amount.String(),
		Reference:        payrollReference,
		Method:           model.PaymentMethodSalaryDeduction,
		Notes:            "Payroll deduction for " + payrollMonth,
		payrollMonth:     payrollMonth,
		payrollReference: payrollReference,
	})
	return err
}

func (s *repaymentService) ListByLoan(ctx context.Context, loanID string) ([]RepaymentResponse, error) {
	id, err := uuid.Parse(loanID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid loan id", ErrValidation)
	}

	rows, err := s.repaymentRepo.ListByLoan(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch schedule: %w", err)
	}

	result := make([]RepaymentResponse, 0, len(rows))
	for _, r := range rows {
		result = append(result, toRepaymentResponse(r))
	}
	return result, nil
}

func (s *repaymentService) ListOverdue(ctx context.Context) ([]RepaymentResponse, error) {
	rows, err := s.repaymentRepo.ListOverdue(ctx, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch overdue installments: %w", err)
	}

	result := make([]RepaymentResponse, 0, len(rows))
	for _, r := range rows {
		result = append(result, toRepaymentResponse(r))
	}
	return result, nil
}

// --- Helpers ---

func toRepaymentResponse(r model.LoanRepayment) RepaymentResponse {
	now := time.Now()
	resp := RepaymentResponse{
		ID:                 r.ID.String(),
		LoanID:             r.LoanID.String(),
		InstallmentNumber:  r.InstallmentNumber,
		DueDate:            r.DueDate.Format("2006-01-02"),
		PrincipalComponent: r.PrincipalComponent.StringFixed(2),
		InterestComponent:  r.InterestComponent.StringFixed(2),
		TotalAmount:        r.TotalAmount.StringFixed(2),
		PaidAmount:         r.PaidAmount.StringFixed(2),
		WaivedAmount:       r.WaivedAmount.StringFixed(2),
		Outstanding:        r.Outstanding().StringFixed(2),
		RunningBalance:     r.RunningBalance.StringFixed(2),
		Status:             r.Status,
		PaymentReference:   r.PaymentReference,
		PaymentMethod:      r.PaymentMethod,
		PayrollMonth:       r.PayrollMonth,
		DaysOverdue:        r.DaysOverdue(now),
	}

	if r.PaymentDate != nil {
		s := r.PaymentDate.Format(time.RFC3339)
		resp.PaymentDate = &s
	}

	return resp
}
