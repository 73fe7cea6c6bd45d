package repository

import (
	"context"
	"time"

	"hrms/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RepaymentRepository interface {
	CreateBatch(ctx context.Context, repayments []model.LoanRepayment) error
	Update(ctx context.Context, repayment *model.LoanRepayment) error
	DeleteByLoan(ctx context.Context, loanID uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.LoanRepayment, error)
	// FindNextOpen returns the earliest installment a payment can be applied
	// against, ordered by due date.
	FindNextOpen(ctx context.Context, loanID uuid.UUID) (*model.LoanRepayment, error)
	ListByLoan(ctx context.Context, loanID uuid.UUID) ([]model.LoanRepayment, error)
	ListOverdue(ctx context.Context, asOf time.Time) ([]model.LoanRepayment, error)
	ExportPayrollForMonth(ctx context.Context, from, to time.Time) ([]model.PayrollExportRow, error)
}

type repaymentRepository struct {
	db *gorm.DB
}

func NewRepaymentRepository(db *gorm.DB) RepaymentRepository {
	return &repaymentRepository{db: db}
}

func (r *repaymentRepository) CreateBatch(ctx context.Context, repayments []model.LoanRepayment) error {
	if len(repayments) == 0 {
		return nil
	}
	return GetDB(ctx, r.db).Create(&repayments).Error
}

func (r *repaymentRepository) Update(ctx context.Context, repayment *model.LoanRepayment) error {
	return GetDB(ctx, r.db).Save(repayment).Error
}

func (r *repaymentRepository) DeleteByLoan(ctx context.Context, loanID uuid.UUID) error {
	return GetDB(ctx, r.db).Where("loan_id = ?", loanID).Delete(&model.LoanRepayment{}).Error
}

func (r *repaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.LoanRepayment, error) {
	var repayment model.LoanRepayment
	if err := GetDB(ctx, r.db).First(&repayment, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &repayment, nil
}

func (r *repaymentRepository) FindNextOpen(ctx context.Context, loanID uuid.UUID) (*model.LoanRepayment, error) {
	var repayment model.LoanRepayment
	if err := GetDB(ctx, r.db).
		Where("loan_id = ? AND status IN ?", loanID, model.OpenRepaymentStatuses).
		Order("due_date ASC").
		First(&repayment).Error; err != nil {
		return nil, err
	}
	return &repayment, nil
}

func (r *repaymentRepository) ListByLoan(ctx context.Context, loanID uuid.UUID) ([]model.LoanRepayment, error) {
	var repayments []model.LoanRepayment
	if err := GetDB(ctx, r.db).
		Where("loan_id = ?", loanID).
		Order("installment_number ASC").
		Find(&repayments).Error; err != nil {
		return nil, err
	}
	return repayments, nil
}

func (r *repaymentRepository) ListOverdue(ctx context.Context, asOf time.Time) ([]model.LoanRepayment, error) {
	var repayments []model.LoanRepayment
	if err := GetDB(ctx, r.db).
		Joins("JOIN loans ON loans.id = loan_repayments.loan_id").
		Where("loan_repayments.due_date < ? AND loan_repayments.status NOT IN ?", asOf,
			[]string{model.RepaymentStatusPaid, model.RepaymentStatusWaived}).
		Where("loans.status IN ?", []string{model.LoanStatusActive, model.LoanStatusDisbursed}).
		Order("loan_repayments.due_date ASC").
		Find(&repayments).Error; err != nil {
		return nil, err
	}
	return repayments, nil
}

func (r *repaymentRepository) ExportPayrollForMonth(ctx context.Context, from, to time.Time) ([]model.PayrollExportRow, error) {
	var rows []model.PayrollExportRow
	err := GetDB(ctx, r.db).Table("loan_repayments").
		Select(`loan_repayments.id as repayment_id,
			loans.id as loan_id,
			loans.loan_number,
			loans.loan_type,
			staffs.id as staff_id,
			staffs.staff_number,
			staffs.full_name as staff_name,
			COALESCE(branches.name, '') as branch_name,
			loan_repayments.installment_number,
			loan_repayments.due_date,
			loan_repayments.total_amount,
			loan_repayments.paid_amount,
			loan_repayments.total_amount - loan_repayments.paid_amount - loan_repayments.waived_amount as deduction_amount,
			staffs.monthly_salary`).
		Joins("JOIN loans ON loans.id = loan_repayments.loan_id").
		Joins("JOIN staffs ON staffs.id = loans.staff_id").
		Joins("LEFT JOIN branches ON branches.id = staffs.branch_id").
		Where("loan_repayments.due_date >= ? AND loan_repayments.due_date < ?", from, to).
		Where("loan_repayments.status IN ?", []string{model.RepaymentStatusScheduled, model.RepaymentStatusPending, model.RepaymentStatusOverdue}).
		Where("loans.status IN ? AND loans.deduct_from_salary = ?", []string{model.LoanStatusActive, model.LoanStatusDisbursed}, true).
		Order("staffs.staff_number ASC, loans.loan_number ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
