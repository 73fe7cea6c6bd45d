package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"hrms/internal/approval"
	"hrms/internal/finance"
	"hrms/internal/model"
	"hrms/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Type-dependent default annual rates (percent), applied when the application
// does not carry an explicit rate.
var defaultAnnualRates = map[string]decimal.Decimal{
	model.LoanTypeSalaryAdvance: decimal.Zero,
	model.LoanTypeStaffLoan:     decimal.NewFromInt(5),
	model.LoanTypeEmergencyLoan: decimal.NewFromInt(8),
}

const approvalFlowCode = "staff_loan_approval"

// --- DTOs ---

type ApplyLoanRequest struct {
	StaffID             string  `json:"staff_id" binding:"required"`
	LoanType            string  `json:"loan_type" binding:"required,oneof=salary_advance staff_loan emergency_loan"`
	Principal           string  `json:"principal" binding:"required"` // Decimal string
	AnnualInterestRate  *string `json:"annual_interest_rate"`         // Decimal string, type default when omitted
	TermMonths          int     `json:"term_months" binding:"required"`
	GuarantorID         string  `json:"guarantor_id"`
	DeductFromSalary    *bool   `json:"deduct_from_salary"`
	MaxDeductionPercent string  `json:"max_deduction_percent"`
	CreatedBy           string  `json:"-"` // From JWT, set by handler
}

type DisburseLoanRequest struct {
	Reference          string `json:"reference" binding:"required"`
	Method             string `json:"method" binding:"required"`
	FirstRepaymentDate string `json:"first_repayment_date"` // YYYY-MM-DD, defaults to the 25th of next month
	DisbursedBy        string `json:"-"`
}

type LoanResponse struct {
	ID                 string  `json:"id"`
	LoanNumber         string  `json:"loan_number"`
	LoanType           string  `json:"loan_type"`
	StaffID            string  `json:"staff_id"`
	StaffName          string  `json:"staff_name,omitempty"`
	GuarantorID        *string `json:"guarantor_id"`
	Principal          string  `json:"principal"`
	AnnualInterestRate string  `json:"annual_interest_rate"`
	TermMonths         int     `json:"term_months"`
	TotalInterest      string  `json:"total_interest"`
	TotalPayable       string  `json:"total_payable"`
	MonthlyInstallment string  `json:"monthly_installment"`
	TotalPaid          string  `json:"total_paid"`
	OutstandingBalance string  `json:"outstanding_balance"`
	Status             string  `json:"status"`
	ApprovalInstanceID string  `json:"approval_instance_id,omitempty"`
	ApplicationDate    string  `json:"application_date"`
	ApprovalDate       *string `json:"approval_date"`
	DisbursementDate   *string `json:"disbursement_date"`
	FirstRepaymentDate *string `json:"first_repayment_date"`
	MaturityDate       *string `json:"maturity_date"`
	DeductFromSalary   bool    `json:"deduct_from_salary"`
	RejectionReason    string  `json:"rejection_reason,omitempty"`
	ApprovalComment    string  `json:"approval_comment,omitempty"`
	CreatedAt          string  `json:"created_at"`
}

// --- Interface ---

type LoanService interface {
	Apply(ctx context.Context, req ApplyLoanRequest) (LoanResponse, error)
	Cancel(ctx context.Context, loanID, requesterID string) (LoanResponse, error)
	Disburse(ctx context.Context, loanID string, req DisburseLoanRequest) (LoanResponse, error)
	HandleApprovalCompleted(ctx context.Context, event approval.CompletedEvent) error
	GetByID(ctx context.Context, id string) (LoanResponse, error)
	ListByStaff(ctx context.Context, staffID string) ([]LoanResponse, error)
	ListPendingApproval(ctx context.Context) ([]LoanResponse, error)
	List(ctx context.Context, filter repository.LoanFilter) ([]LoanResponse, int64, error)
}

type loanService struct {
	loanRepo  repository.LoanRepository
	staffRepo repository.StaffRepository
	auditRepo repository.AuditRepository
	txManager repository.TransactionManager
	engine    approval.Engine
	scheduler RepaymentService
	notifier  Notifier
}

func NewLoanService(
	loanRepo repository.LoanRepository,
	staffRepo repository.StaffRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	engine approval.Engine,
	scheduler RepaymentService,
	notifier Notifier,
) LoanService {
	return &loanService{
		loanRepo:  loanRepo,
		staffRepo: staffRepo,
		auditRepo: auditRepo,
		txManager: txManager,
		engine:    engine,
		scheduler: scheduler,
		notifier:  notifier,
	}
}

// --- Implementation ---

// Apply validates business rules, persists the loan as pending in one
// transaction, then registers it with the external approval engine. The
// registration is best-effort: its failure is logged and the committed loan
// stays pending with an empty correlation id for manual follow-up.
func (s *loanService) Apply(ctx context.Context, req ApplyLoanRequest) (LoanResponse, error) {
	staffID, err := uuid.Parse(req.StaffID)
	if err != nil {
		return LoanResponse{}, fmt.Errorf("%w: invalid staff_id", ErrValidation)
	}

	principal, err := decimal.NewFromString(req.Principal)
	if err != nil || !principal.IsPositive() {
		return LoanResponse{}, fmt.Errorf("%w: principal must be a positive amount", ErrValidation)
	}

	if req.TermMonths < 1 || req.TermMonths > 60 {
		return LoanResponse{}, fmt.Errorf("%w: term_months must be between 1 and 60", ErrValidation)
	}

	defaultRate, ok := defaultAnnualRates[req.LoanType]
	if !ok {
		return LoanResponse{}, fmt.Errorf("%w: unknown loan_type %q", ErrValidation, req.LoanType)
	}

	rate := defaultRate
	if req.AnnualInterestRate != nil {
		parsed, parseErr := decimal.NewFromString(*req.AnnualInterestRate)
		if parseErr != nil || parsed.IsNegative() {
			return LoanResponse{}, fmt.Errorf("%w: annual_interest_rate must be a non-negative percentage", ErrValidation)
		}
		rate = parsed
	}

	var guarantorID *uuid.UUID
	if req.GuarantorID != "" {
		parsed, parseErr := uuid.Parse(req.GuarantorID)
		if parseErr != nil {
			return LoanResponse{}, fmt.Errorf("%w: invalid guarantor_id", ErrValidation)
		}
		if parsed == staffID {
			return LoanResponse{}, fmt.Errorf("%w: guarantor must not be the applicant", ErrConflict)
		}
		guarantorID = &parsed
	}

	totalInterest := finance.TotalInterest(principal, rate, req.TermMonths)
	totalPayable := principal.Add(totalInterest)

	now := time.Now()
	loan := model.Loan{
		LoanType:           req.LoanType,
		StaffID:            staffID,
		GuarantorID:        guarantorID,
		Principal:          principal,
		AnnualInterestRate: rate,
		TermMonths:         req.TermMonths,
		TotalInterest:      totalInterest,
		TotalPayable:       totalPayable,
		MonthlyInstallment: finance.InstallmentAmount(principal, rate, req.TermMonths),
		OutstandingBalance: totalPayable,
		ApplicationDate:    now,
		Status:             model.LoanStatusPending,
		DeductFromSalary:   true,
	}
	if req.DeductFromSalary != nil {
		loan.DeductFromSalary = *req.DeductFromSalary
	}
	if req.MaxDeductionPercent != "" {
		maxPct, parseErr := decimal.NewFromString(req.MaxDeductionPercent)
		if parseErr != nil || maxPct.IsNegative() {
			return LoanResponse{}, fmt.Errorf("%w: max_deduction_percent must be a non-negative percentage", ErrValidation)
		}
		loan.MaxDeductionPercent = maxPct
	}
	if req.CreatedBy != "" {
		if creatorID, parseErr := uuid.Parse(req.CreatedBy); parseErr == nil {
			loan.CreatedBy = &creatorID
		}
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		staff, findErr := s.staffRepo.FindByID(txCtx, staffID)
		if findErr != nil {
			return fmt.Errorf("%w: staff %s", ErrNotFound, staffID)
		}

		if guarantorID != nil {
			if _, findErr := s.staffRepo.FindByID(txCtx, *guarantorID); findErr != nil {
				return fmt.Errorf("%w: guarantor %s", ErrNotFound, *guarantorID)
			}
		}

		// One open staff loan per staff member
		if req.LoanType == model.LoanTypeStaffLoan {
			open, countErr := s.loanRepo.CountOpenStaffLoans(txCtx, staffID)
			if countErr != nil {
				return fmt.Errorf("failed to check open loans: %w", countErr)
			}
			if open > 0 {
				return fmt.Errorf("%w: staff %s already has an open staff loan", ErrConflict, staff.StaffNumber)
			}
		}

		// One salary advance per staff per calendar month
		if req.LoanType == model.LoanTypeSalaryAdvance {
			monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
			advances, countErr := s.loanRepo.CountSalaryAdvancesBetween(txCtx, staffID, monthStart, monthStart.AddDate(0, 1, 0))
			if countErr != nil {
				return fmt.Errorf("failed to check salary advances: %w", countErr)
			}
			if advances > 0 {
				return fmt.Errorf("%w: staff %s already has a salary advance this month", ErrConflict, staff.StaffNumber)
			}
		}

		loanNumber, genErr := s.generateLoanNumber(txCtx, req.LoanType)
		if genErr != nil {
			return genErr
		}
		loan.LoanNumber = loanNumber

		if createErr := s.loanRepo.Create(txCtx, &loan); createErr != nil {
			return fmt.Errorf("failed to create loan: %w", createErr)
		}

		details, _ := json.Marshal(map[string]interface{}{
			"loan_number": loan.LoanNumber,
			"loan_type":   loan.LoanType,
			"principal":   loan.Principal.StringFixed(2),
			"term_months": loan.TermMonths,
		})
		audit := &model.AuditLog{
			StaffID:    loan.CreatedBy,
			Action:     model.ActionApplyLoan,
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
		return LoanResponse{}, err
	}

	// Best-effort registration with the external approval engine. The loan is
	// already committed; failure here must not roll it back.
	s.registerApproval(ctx, &loan)

	s.notify("loan.applied", loan.LoanNumber)

	return toLoanResponse(loan), nil
}

func (s *loanService) registerApproval(ctx context.Context, loan *model.Loan) {
	instanceID, err := s.engine.InitiateApproval(ctx, approval.InitiateRequest{
		TargetType:  approval.TargetTypeStaffLoan,
		TargetID:    loan.ID.String(),
		FlowCode:    approvalFlowCode,
		InitiatorID: loan.StaffID.String(),
		IsUrgent:    loan.LoanType == model.LoanTypeEmergencyLoan,
	})
	if err != nil {
		log.Printf("approval registration failed for loan %s: %v", loan.LoanNumber, err)
		return
	}

	// Column-level update only: the engine may already have delivered its
	// decision by webhook, so saving the whole pre-commit row could clobber
	// the decided status back to pending.
	loan.ApprovalInstanceID = instanceID
	if err := s.loanRepo.SetApprovalInstanceID(ctx, loan.ID, instanceID); err != nil {
		log.Printf("failed to store approval instance id for loan %s: %v", loan.LoanNumber, err)
	}
}

// Cancel moves a pending or draft loan to cancelled. Only the loan owner may
// cancel. Any registered approval instance is cancelled best-effort afterwards.
func (s *loanService) Cancel(ctx context.Context, loanID, requesterID string) (LoanResponse, error) {
	id, err := uuid.Parse(loanID)
	if err != nil {
		return LoanResponse{}, fmt.Errorf("%w: invalid loan id", ErrValidation)
	}
	requester, err := uuid.Parse(requesterID)
	if err != nil {
		return LoanResponse{}, fmt.Errorf("%w: invalid requester id", ErrValidation)
	}

	var loan *model.Loan
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		var findErr error
		loan, findErr = s.loanRepo.FindByIDForUpdate(txCtx, id)
		if findErr != nil {
			if errors.Is(findErr, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: loan %s", ErrNotFound, loanID)
			}
			return fmt.Errorf("failed to load loan: %w", findErr)
		}

		if loan.StaffID != requester {
			return fmt.Errorf("%w: only the loan owner can cancel", ErrConflict)
		}
		if loan.Status != model.LoanStatusPending && loan.Status != model.LoanStatusDraft {
			return fmt.Errorf("%w: loan is %s, only pending or draft loans can be cancelled", ErrConflict, loan.Status)
		}

		loan.Status = model.LoanStatusCancelled
		if updateErr := s.loanRepo.Update(txCtx, loan); updateErr != nil {
			return fmt.Errorf("failed to cancel loan: %w", updateErr)
		}

		audit := &model.AuditLog{
			StaffID:    &requester,
			Action:     model.ActionCancelLoan,
			EntityID:   loan.ID.String(),
			EntityName: loan.LoanNumber,
		}
		if auditErr := s.auditRepo.Log(txCtx, audit); auditErr != nil {
			return fmt.Errorf("failed to write audit log: %w", auditErr)
		}

		return nil
	})

	if err != nil {
		return LoanResponse{}, err
	}

	if loan.ApprovalInstanceID != "" {
		if cancelErr := s.engine.CancelApproval(ctx, loan.ApprovalInstanceID); cancelErr != nil {
			log.Printf("approval cancellation failed for loan %s: %v", loan.LoanNumber, cancelErr)
		}
	}

	return toLoanResponse(*loan), nil
}

// HandleApprovalCompleted applies the engine's asynchronous decision to the
// loan. Events for other target types are ignored, and a duplicate event for
// an already-decided loan is a safe no-op.
func (s *loanService) HandleApprovalCompleted(ctx context.Context, event approval.CompletedEvent) error {
	if event.TargetType != approval.TargetTypeStaffLoan {
		return nil
	}

	id, err := uuid.Parse(event.TargetID)
	if err != nil {
		return fmt.Errorf("%w: invalid target_id %q", ErrValidation, event.TargetID)
	}

	var loan *model.Loan
	var duplicate bool
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		var findErr error
		loan, findErr = s.loanRepo.FindByIDForUpdate(txCtx, id)
		if findErr != nil {
			if errors.Is(findErr, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: loan %s", ErrNotFound, event.TargetID)
			}
			return fmt.Errorf("failed to load loan: %w", findErr)
		}

		// Duplicate delivery tolerance: the decision already landed
		if loan.IsDecided() {
			duplicate = true
			return nil
		}

		var approverID *uuid.UUID
		if event.ApproverID != "" {
			if parsed, parseErr := uuid.Parse(event.ApproverID); parseErr == nil {
				approverID = &parsed
			}
		}

		now := time.Now()
		action := ""
		switch event.Status {
		case approval.DecisionApproved:
			loan.Status = model.LoanStatusApproved
			loan.ApprovalDate = &now
			loan.ApprovedBy = approverID
			loan.ApprovalComment = event.Comment
			action = model.ActionApproveLoan
		case approval.DecisionRejected:
			loan.Status = model.LoanStatusRejected
			loan.ApprovedBy = approverID
			loan.RejectionReason = event.Comment
			action = model.ActionRejectLoan
		default:
			return fmt.Errorf("%w: unknown approval status %q", ErrValidation, event.Status)
		}

		if updateErr := s.loanRepo.Update(txCtx, loan); updateErr != nil {
			return fmt.Errorf("failed to update loan: %w", updateErr)
		}

		details, _ := json.Marshal(map[string]interface{}{
			"status":  event.Status,
			"comment": event.Comment,
		})
		audit := &model.AuditLog{
			StaffID:    approverID,
			Action:     action,
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
		return err
	}

	if !duplicate {
		s.notify("loan."+event.Status, loan.LoanNumber)
	}

	return nil
}

// Disburse releases funds on an approved loan: disbursement metadata and dates
// are set, the repayment schedule is generated, and the loan lands on active.
// Everything runs in one transaction with the loan row locked.
func (s *loanService) Disburse(ctx context.Context, loanID string, req DisburseLoanRequest) (LoanResponse, error) {
	id, err := uuid.Parse(loanID)
	if err != nil {
		return LoanResponse{}, fmt.Errorf("%w: invalid loan id", ErrValidation)
	}

	var firstRepayment time.Time
	if req.FirstRepaymentDate != "" {
		firstRepayment, err = time.Parse("2006-01-02", req.FirstRepaymentDate)
		if err != nil {
			return LoanResponse{}, fmt.Errorf("%w: first_repayment_date must be YYYY-MM-DD", ErrValidation)
		}
	} else {
		// Default: the 25th of next month
		now := time.Now()
		firstRepayment = time.Date(now.Year(), now.Month(), 25, 0, 0, 0, 0, now.Location()).AddDate(0, 1, 0)
	}

	var disburserID *uuid.UUID
	if req.DisbursedBy != "" {
		if parsed, parseErr := uuid.Parse(req.DisbursedBy); parseErr == nil {
			disburserID = &parsed
		}
	}

	var loan *model.Loan
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		var findErr error
		loan, findErr = s.loanRepo.FindByIDForUpdate(txCtx, id)
		if findErr != nil {
			if errors.Is(findErr, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: loan %s", ErrNotFound, loanID)
			}
			return fmt.Errorf("failed to load loan: %w", findErr)
		}

		if loan.Status != model.LoanStatusApproved {
			return fmt.Errorf("%w: loan is %s, only approved loans can be disbursed", ErrConflict, loan.Status)
		}

		now := time.Now()
		maturity := firstRepayment.AddDate(0, loan.TermMonths, 0)

		loan.Status = model.LoanStatusDisbursed
		loan.DisbursementDate = &now
		loan.FirstRepaymentDate = &firstRepayment
		loan.MaturityDate = &maturity
		loan.DisbursedBy = disburserID
		loan.DisbursementReference = req.Reference
		loan.DisbursementMethod = req.Method

		if updateErr := s.loanRepo.Update(txCtx, loan); updateErr != nil {
			return fmt.Errorf("failed to update loan: %w", updateErr)
		}

		if _, genErr := s.scheduler.GenerateForLoan(txCtx, loan); genErr != nil {
			return fmt.Errorf("failed to generate repayment schedule: %w", genErr)
		}

		loan.Status = model.LoanStatusActive
		if updateErr := s.loanRepo.Update(txCtx, loan); updateErr != nil {
			return fmt.Errorf("failed to activate loan: %w", updateErr)
		}

		details, _ := json.Marshal(map[string]interface{}{
			"reference":            req.Reference,
			"method":               req.Method,
			"first_repayment_date": firstRepayment.Format("2006-01-02"),
			"maturity_date":        maturity.Format("2006-01-02"),
		})
		audit := &model.AuditLog{
			StaffID:    disburserID,
			Action:     model.ActionDisburseLoan,
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
		return LoanResponse{}, err
	}

	s.notify("loan.disbursed", loan.LoanNumber)

	return toLoanResponse(*loan), nil
}

func (s *loanService) GetByID(ctx context.Context, id string) (LoanResponse, error) {
	loanID, err := uuid.Parse(id)
	if err != nil {
		return LoanResponse{}, fmt.Errorf("%w: invalid loan id", ErrValidation)
	}

	loan, err := s.loanRepo.FindByID(ctx, loanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LoanResponse{}, fmt.Errorf("%w: loan %s", ErrNotFound, id)
		}
		return LoanResponse{}, fmt.Errorf("failed to load loan: %w", err)
	}

	return toLoanResponse(*loan), nil
}

func (s *loanService) ListByStaff(ctx context.Context, staffID string) ([]LoanResponse, error) {
	id, err := uuid.Parse(staffID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid staff id", ErrValidation)
	}

	loans, err := s.loanRepo.ListByStaff(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch loans: %w", err)
	}

	result := make([]LoanResponse, 0, len(loans))
	for _, l := range loans {
		result = append(result, toLoanResponse(l))
	}
	return result, nil
}

func (s *loanService) ListPendingApproval(ctx context.Context) ([]LoanResponse, error) {
	loans, err := s.loanRepo.ListByStatus(ctx, model.LoanStatusPending)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pending loans: %w", err)
	}

	result := make([]LoanResponse, 0, len(loans))
	for _, l := range loans {
		result = append(result, toLoanResponse(l))
	}
	return result, nil
}

func (s *loanService) List(ctx context.Context, filter repository.LoanFilter) ([]LoanResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}

	loans, total, err := s.loanRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch loans: %w", err)
	}

	result := make([]LoanResponse, 0, len(loans))
	for _, l := range loans {
		result = append(result, toLoanResponse(l))
	}
	return result, total, nil
}

// generateLoanNumber builds a type-prefixed human readable reference like
// STL-2026-493027, retrying on the unlikely random collision.
func (s *loanService) generateLoanNumber(ctx context.Context, loanType string) (string, error) {
	prefix := model.LoanNumberPrefixes[loanType]

	// Advisory lock on the prefix so concurrent applications cannot pick the
	// same candidate; held until the surrounding transaction ends
	if err := s.loanRepo.LockNumberSpace(ctx, prefix); err != nil {
		return "", fmt.Errorf("failed to lock loan number space: %w", err)
	}

	year := time.Now().Year()

	for attempt := 0; attempt < 5; attempt++ {
		candidate := fmt.Sprintf("%s-%d-%06d", prefix, year, rand.Intn(1000000))
		_, err := s.loanRepo.FindByNumber(ctx, candidate)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return candidate, nil
		}
		if err != nil {
			return "", fmt.Errorf("failed to check loan number: %w", err)
		}
	}

	return "", fmt.Errorf("failed to generate a unique loan number")
}

func (s *loanService) notify(event string, loanNumber string) {
	if s.notifier == nil {
		return
	}
	s.notifier.BroadcastEvent(event, map[string]string{"loan_number": loanNumber})
}

// --- Helpers ---

func toLoanResponse(l model.Loan) LoanResponse {
	resp := LoanResponse{
		ID:                 l.ID.String(),
		LoanNumber:         l.LoanNumber,
		LoanType:           l.LoanType,
		StaffID:            l.StaffID.String(),
		Principal:          l.Principal.StringFixed(2),
		AnnualInterestRate: l.AnnualInterestRate.StringFixed(2),
		TermMonths:         l.TermMonths,
		TotalInterest:      l.TotalInterest.StringFixed(2),
		TotalPayable:       l.TotalPayable.StringFixed(2),
		MonthlyInstallment: l.MonthlyInstallment.StringFixed(2),
		TotalPaid:          l.TotalPaid.StringFixed(2),
		OutstandingBalance: l.OutstandingBalance.StringFixed(2),
		Status:             l.Status,
		ApprovalInstanceID: l.ApprovalInstanceID,
		ApplicationDate:    l.ApplicationDate.Format(time.RFC3339),
		DeductFromSalary:   l.DeductFromSalary,
		RejectionReason:    l.RejectionReason,
		ApprovalComment:    l.ApprovalComment,
		CreatedAt:          l.CreatedAt.Format(time.RFC3339),
	}

	if l.Staff != nil {
		resp.StaffName = l.Staff.FullName
	}
	if l.GuarantorID != nil {
		s := l.GuarantorID.String()
		resp.GuarantorID = &s
	}
	if l.ApprovalDate != nil {
		s := l.ApprovalDate.Format(time.RFC3339)
		resp.ApprovalDate = &s
	}
	if l.DisbursementDate != nil {
		s := l.DisbursementDate.Format(time.RFC3339)
		resp.DisbursementDate = &s
	}
	if l.FirstRepaymentDate != nil {
		s := l.FirstRepaymentDate.Format("2006-01-02")
		resp.FirstRepaymentDate = &s
	}
	if l.MaturityDate != nil {
		s := l.MaturityDate.Format("2006-01-02")
		resp.MaturityDate = &s
	}

	return resp
}
