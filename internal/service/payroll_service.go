package service

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"hrms/internal/model"
	"hrms/internal/repository"
)

// --- Interface ---

type PayrollService interface {
	// ExportForMonth lists every salary-deductible installment due in the month
	// (YYYY-MM), ordered by staff number then loan number.
	ExportForMonth(ctx context.Context, month string) ([]model.PayrollExportRow, error)
	// ProcessDeductions applies the month's export as independent repayments.
	// Each row runs in its own transaction: one failing loan never blocks the
	// rest of payroll, and the batch result reports every row.
	ProcessDeductions(ctx context.Context, month, payrollReference string) (model.PayrollBatchResult, error)
	SummaryByBranch(ctx context.Context, month string) ([]model.BranchPayrollSummary, error)
}

type payrollService struct {
	repaymentRepo    repository.RepaymentRepository
	repaymentService RepaymentService
	auditRepo        repository.AuditRepository
	notifier         Notifier
}

func NewPayrollService(
	repaymentRepo repository.RepaymentRepository,
	repaymentService RepaymentService,
	auditRepo repository.AuditRepository,
	notifier Notifier,
) PayrollService {
	return &payrollService{
		repaymentRepo:    repaymentRepo,
		repaymentService: repaymentService,
		auditRepo:        auditRepo,
		notifier:         notifier,
	}
}

// --- Implementation ---

func monthBounds(month string) (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01", month)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: month must be YYYY-MM", ErrValidation)
	}
	return start, start.AddDate(0, 1, 0), nil
}

func (s *payrollService) ExportForMonth(ctx context.Context, month string) ([]model.PayrollExportRow, error) {
	from, to, err := monthBounds(month)
	if err != nil {
		return nil, err
	}

	rows, err := s.repaymentRepo.ExportPayrollForMonth(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to export payroll for %s: %w", month, err)
	}
	return rows, nil
}

func (s *payrollService) ProcessDeductions(ctx context.Context, month, payrollReference string) (model.PayrollBatchResult, error) {
	rows, err := s.ExportForMonth(ctx, month)
	if err != nil {
		return model.PayrollBatchResult{}, err
	}

	result := model.PayrollBatchResult{
		Month:     month,
		Reference: payrollReference,
		Results:   make([]model.PayrollRowResult, 0, len(rows)),
	}

	for _, row := range rows {
		rowResult := model.PayrollRowResult{
			RepaymentID:       row.RepaymentID,
			LoanNumber:        row.LoanNumber,
			StaffNumber:       row.StaffNumber,
			InstallmentNumber: row.InstallmentNumber,
			Amount:            row.DeductionAmount,
		}

		// Each deduction is its own transaction; a failure here is recorded
		// on the row and the batch keeps going.
		deductErr := s.repaymentService.RecordPayrollDeduction(ctx, row.LoanID, row.RepaymentID, row.DeductionAmount, payrollReference, month)
		if deductErr != nil {
			rowResult.Success = false
			rowResult.Error = deductErr.Error()
			result.Failed++
			log.Printf("payroll %s: deduction failed for loan %s installment %d: %v",
				month, row.LoanNumber, row.InstallmentNumber, deductErr)
		} else {
			rowResult.Success = true
			result.Processed++
		}

		result.Results = append(result.Results, rowResult)
	}

	audit := &model.AuditLog{
		Action:     model.ActionProcessPayroll,
		EntityID:   payrollReference,
		EntityName: month,
		Details:    fmt.Sprintf(`{"processed": %d, "failed": %d}`, result.Processed, result.Failed),
	}
	if auditErr := s.auditRepo.Log(ctx, audit); auditErr != nil {
		log.Printf("payroll %s: failed to write audit log: %v", month, auditErr)
	}

	if s.notifier != nil {
		s.notifier.BroadcastEvent("payroll.processed", result)
	}

	return result, nil
}

func (s *payrollService) SummaryByBranch(ctx context.Context, month string) ([]model.BranchPayrollSummary, error) {
	rows, err := s.ExportForMonth(ctx, month)
	if err != nil {
		return nil, err
	}

	type branchAgg struct {
		summary model.BranchPayrollSummary
		staff   map[string]struct{}
		loans   map[string]struct{}
	}

	byBranch := make(map[string]*branchAgg)
	for _, row := range rows {
		agg, ok := byBranch[row.BranchName]
		if !ok {
			agg = &branchAgg{
				summary: model.BranchPayrollSummary{BranchName: row.BranchName},
				staff:   make(map[string]struct{}),
				loans:   make(map[string]struct{}),
			}
			byBranch[row.BranchName] = agg
		}
		agg.staff[row.StaffNumber] = struct{}{}
		agg.loans[row.LoanNumber] = struct{}{}
		agg.summary.TotalDeduction = agg.summary.TotalDeduction.Add(row.DeductionAmount)
	}

	summaries := make([]model.BranchPayrollSummary, 0, len(byBranch))
	for _, agg := range byBranch {
		agg.summary.StaffCount = int64(len(agg.staff))
		agg.summary.LoanCount = int64(len(agg.loans))
		summaries = append(summaries, agg.summary)
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].BranchName < summaries[j].BranchName
	})

	return summaries, nil
}
