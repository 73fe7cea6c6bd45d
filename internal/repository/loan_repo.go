package repository

import (
	"context"
	"time"

	"hrms/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LoanFilter narrows List queries
type LoanFilter struct {
	Status   string
	LoanType string
	StaffID  *uuid.UUID
	Page     int
	Limit    int
}

type LoanRepository interface {
	Create(ctx context.Context, loan *model.Loan) error
	Update(ctx context.Context, loan *model.Loan) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Loan, error)
	// FindByIDForUpdate locks the loan row for the duration of the surrounding
	// transaction. Schedule generation and repayment recording both go through
	// this so concurrent read-modify-write on the same loan is serialized.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Loan, error)
	FindByNumber(ctx context.Context, loanNumber string) (*model.Loan, error)
	// LockNumberSpace serializes loan number generation for one prefix within
	// the surrounding transaction.
	LockNumberSpace(ctx context.Context, prefix string) error
	// SetApprovalInstanceID stores the engine correlation id without touching
	// any other column; the loan may already have been decided by the time the
	// registration call returns.
	SetApprovalInstanceID(ctx context.Context, id uuid.UUID, instanceID string) error
	List(ctx context.Context, filter LoanFilter) ([]model.Loan, int64, error)
	ListByStaff(ctx context.Context, staffID uuid.UUID) ([]model.Loan, error)
	ListByStatus(ctx context.Context, status string) ([]model.Loan, error)
	CountOpenStaffLoans(ctx context.Context, staffID uuid.UUID) (int64, error)
	CountSalaryAdvancesBetween(ctx context.Context, staffID uuid.UUID, from, to time.Time) (int64, error)
}

type loanRepository struct {
	db *gorm.DB
}

func NewLoanRepository(db *gorm.DB) LoanRepository {
	return &loanRepository{db: db}
}

func (r *loanRepository) Create(ctx context.Context, loan *model.Loan) error {
	return GetDB(ctx, r.db).Create(loan).Error
}

func (r *loanRepository) Update(ctx context.Context, loan *model.Loan) error {
	return GetDB(ctx, r.db).Save(loan).Error
}

func (r *loanRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Loan, error) {
	var loan model.Loan
	if err := GetDB(ctx, r.db).Preload("Staff").Preload("Guarantor").First(&loan, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &loan, nil
}

func (r *loanRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Loan, error) {
	var loan model.Loan
	if err := GetDB(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&loan, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &loan, nil
}

func (r *loanRepository) FindByNumber(ctx context.Context, loanNumber string) (*model.Loan, error) {
	var loan model.Loan
	if err := GetDB(ctx, r.db).First(&loan, "loan_number = ?", loanNumber).Error; err != nil {
		return nil, err
	}
	return &loan, nil
}

// Advisory lock to prevent concurrent duplicate loan numbers
func (r *loanRepository) LockNumberSpace(ctx context.Context, prefix string) error {
	return GetDB(ctx, r.db).Exec("SELECT pg_advisory_xact_lock(hashtext(?))", prefix).Error
}

func (r *loanRepository) SetApprovalInstanceID(ctx context.Context, id uuid.UUID, instanceID string) error {
	return GetDB(ctx, r.db).Model(&model.Loan{}).
		Where("id = ?", id).
		Update("approval_instance_id", instanceID).Error
}

func (r *loanRepository) List(ctx context.Context, filter LoanFilter) ([]model.Loan, int64, error) {
	db := GetDB(ctx, r.db)
	query := db.Model(&model.Loan{})

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.LoanType != "" {
		query = query.Where("loan_type = ?", filter.LoanType)
	}
	if filter.StaffID != nil {
		query = query.Where("staff_id = ?", *filter.StaffID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	var loans []model.Loan
	if err := query.Preload("Staff").
		Order("created_at DESC").
		Offset(offset).
		Limit(filter.Limit).
		Find(&loans).Error; err != nil {
		return nil, 0, err
	}

	return loans, total, nil
}

func (r *loanRepository) ListByStaff(ctx context.Context, staffID uuid.UUID) ([]model.Loan, error) {
	var loans []model.Loan
	if err := GetDB(ctx, r.db).
		Where("staff_id = ?", staffID).
		Order("created_at DESC").
		Find(&loans).Error; err != nil {
		return nil, err
	}
	return loans, nil
}

func (r *loanRepository) ListByStatus(ctx context.Context, status string) ([]model.Loan, error) {
	var loans []model.Loan
	if err := GetDB(ctx, r.db).Preload("Staff").
		Where("status = ?", status).
		Order("application_date ASC").
		Find(&loans).Error; err != nil {
		return nil, err
	}
	return loans, nil
}

func (r *loanRepository) CountOpenStaffLoans(ctx context.Context, staffID uuid.UUID) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.Loan{}).
		Where("staff_id = ? AND loan_type = ? AND status IN ?", staffID, model.LoanTypeStaffLoan, model.OpenLoanStatuses).
		Count(&count).Error
	return count, err
}

func (r *loanRepository) CountSalaryAdvancesBetween(ctx context.Context, staffID uuid.UUID, from, to time.Time) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.Loan{}).
		Where("staff_id = ? AND loan_type = ? AND status NOT IN ? AND application_date >= ? AND application_date < ?",
			staffID, model.LoanTypeSalaryAdvance,
			[]string{model.LoanStatusRejected, model.LoanStatusCancelled}, from, to).
		Count(&count).Error
	return count, err
}
