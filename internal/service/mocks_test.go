package service

import (
	"context"
	"sort"
	"time"

	"hrms/internal/approval"
	"hrms/internal/model"
	"hrms/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// In-memory fakes for the repository and engine interfaces. They mimic the
// persistence semantics the services rely on: gorm.ErrRecordNotFound on misses
// and value-copy storage so only Update persists mutations.

type fakeTxManager struct{}

func (f *fakeTxManager) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	return fn(ctx)
}

// --- Staff ---

type fakeStaffRepo struct {
	staffs map[uuid.UUID]model.Staff
}

func newFakeStaffRepo() *fakeStaffRepo {
	return &fakeStaffRepo{staffs: make(map[uuid.UUID]model.Staff)}
}

func (f *fakeStaffRepo) add(staff model.Staff) model.Staff {
	if staff.ID == uuid.Nil {
		staff.ID = uuid.New()
	}
	f.staffs[staff.ID] = staff
	return staff
}

func (f *fakeStaffRepo) Create(ctx context.Context, staff *model.Staff) error {
	*staff = f.add(*staff)
	return nil
}

func (f *fakeStaffRepo) Update(ctx context.Context, staff *model.Staff) error {
	f.staffs[staff.ID] = *staff
	return nil
}

func (f *fakeStaffRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Staff, error) {
	staff, ok := f.staffs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &staff, nil
}

func (f *fakeStaffRepo) FindByEmail(ctx context.Context, email string) (*model.Staff, error) {
	for _, staff := range f.staffs {
		if staff.Email == email {
			s := staff
			return &s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeStaffRepo) FindByStaffNumber(ctx context.Context, staffNumber string) (*model.Staff, error) {
	for _, staff := range f.staffs {
		if staff.StaffNumber == staffNumber {
			s := staff
			return &s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeStaffRepo) List(ctx context.Context, page, limit int) ([]model.Staff, int64, error) {
	staffs := make([]model.Staff, 0, len(f.staffs))
	for _, s := range f.staffs {
		staffs = append(staffs, s)
	}
	return staffs, int64(len(staffs)), nil
}

// --- Loans ---

type fakeLoanRepo struct {
	loans     map[uuid.UUID]model.Loan
	updateErr error

	lockedPrefixes []string
	// Pretend the next N generated loan numbers are already taken
	numberCollisions int
	numberLookups    int
}

func newFakeLoanRepo() *fakeLoanRepo {
	return &fakeLoanRepo{loans: make(map[uuid.UUID]model.Loan)}
}

func (f *fakeLoanRepo) add(loan model.Loan) model.Loan {
	if loan.ID == uuid.Nil {
		loan.ID = uuid.New()
	}
	f.loans[loan.ID] = loan
	return loan
}

func (f *fakeLoanRepo) Create(ctx context.Context, loan *model.Loan) error {
	*loan = f.add(*loan)
	return nil
}

func (f *fakeLoanRepo) Update(ctx context.Context, loan *model.Loan) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.loans[loan.ID] = *loan
	return nil
}

func (f *fakeLoanRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Loan, error) {
	loan, ok := f.loans[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &loan, nil
}

func (f *fakeLoanRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Loan, error) {
	return f.FindByID(ctx, id)
}

func (f *fakeLoanRepo) FindByNumber(ctx context.Context, loanNumber string) (*model.Loan, error) {
	f.numberLookups++
	if f.numberCollisions > 0 {
		f.numberCollisions--
		return &model.Loan{ID: uuid.New(), LoanNumber: loanNumber}, nil
	}
	for _, loan := range f.loans {
		if loan.LoanNumber == loanNumber {
			l := loan
			return &l, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLoanRepo) LockNumberSpace(ctx context.Context, prefix string) error {
	f.lockedPrefixes = append(f.lockedPrefixes, prefix)
	return nil
}

func (f *fakeLoanRepo) SetApprovalInstanceID(ctx context.Context, id uuid.UUID, instanceID string) error {
	loan, ok := f.loans[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	loan.ApprovalInstanceID = instanceID
	f.loans[id] = loan
	return nil
}

func (f *fakeLoanRepo) List(ctx context.Context, filter repository.LoanFilter) ([]model.Loan, int64, error) {
	var loans []model.Loan
	for _, loan := range f.loans {
		if filter.Status != "" && loan.Status != filter.Status {
			continue
		}
		if filter.LoanType != "" && loan.LoanType != filter.LoanType {
			continue
		}
		if filter.StaffID != nil && loan.StaffID != *filter.StaffID {
			continue
		}
		loans = append(loans, loan)
	}
	return loans, int64(len(loans)), nil
}

func (f *fakeLoanRepo) ListByStaff(ctx context.Context, staffID uuid.UUID) ([]model.Loan, error) {
	var loans []model.Loan
	for _, loan := range f.loans {
		if loan.StaffID == staffID {
			loans = append(loans, loan)
		}
	}
	return loans, nil
}

func (f *fakeLoanRepo) ListByStatus(ctx context.Context, status string) ([]model.Loan, error) {
	var loans []model.Loan
	for _, loan := range f.loans {
		if loan.Status == status {
			loans = append(loans, loan)
		}
	}
	return loans, nil
}

func (f *fakeLoanRepo) CountOpenStaffLoans(ctx context.Context, staffID uuid.UUID) (int64, error) {
	var count int64
	for _, loan := range f.loans {
		if loan.StaffID == staffID && loan.LoanType == model.LoanTypeStaffLoan && loan.IsOpen() {
			count++
		}
	}
	return count, nil
}

func (f *fakeLoanRepo) CountSalaryAdvancesBetween(ctx context.Context, staffID uuid.UUID, from, to time.Time) (int64, error) {
	var count int64
	for _, loan := range f.loans {
		if loan.StaffID != staffID || loan.LoanType != model.LoanTypeSalaryAdvance {
			continue
		}
		if loan.Status == model.LoanStatusRejected || loan.Status == model.LoanStatusCancelled {
			continue
		}
		if !loan.ApplicationDate.Before(from) && loan.ApplicationDate.Before(to) {
			count++
		}
	}
	return count, nil
}

// --- Repayments ---

type fakeRepaymentRepo struct {
	rows       map[uuid.UUID]model.LoanRepayment
	exportRows []model.PayrollExportRow
}

func newFakeRepaymentRepo() *fakeRepaymentRepo {
	return &fakeRepaymentRepo{rows: make(map[uuid.UUID]model.LoanRepayment)}
}

func (f *fakeRepaymentRepo) CreateBatch(ctx context.Context, repayments []model.LoanRepayment) error {
	for i := range repayments {
		if repayments[i].ID == uuid.Nil {
			repayments[i].ID = uuid.New()
		}
		f.rows[repayments[i].ID] = repayments[i]
	}
	return nil
}

func (f *fakeRepaymentRepo) Update(ctx context.Context, repayment *model.LoanRepayment) error {
	f.rows[repayment.ID] = *repayment
	return nil
}

func (f *fakeRepaymentRepo) DeleteByLoan(ctx context.Context, loanID uuid.UUID) error {
	for id, row := range f.rows {
		if row.LoanID == loanID {
			delete(f.rows, id)
		}
	}
	return nil
}

func (f *fakeRepaymentRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.LoanRepayment, error) {
	row, ok := f.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &row, nil
}

func (f *fakeRepaymentRepo) FindNextOpen(ctx context.Context, loanID uuid.UUID) (*model.LoanRepayment, error) {
	var next *model.LoanRepayment
	for _, row := range f.rows {
		if row.LoanID != loanID {
			continue
		}
		open := false
		for _, status := range model.OpenRepaymentStatuses {
			if row.Status == status {
				open = true
				break
			}
		}
		if !open {
			continue
		}
		r := row
		if next == nil || r.DueDate.Before(next.DueDate) {
			next = &r
		}
	}
	if next == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return next, nil
}

func (f *fakeRepaymentRepo) ListByLoan(ctx context.Context, loanID uuid.UUID) ([]model.LoanRepayment, error) {
	var rows []model.LoanRepayment
	for _, row := range f.rows {
		if row.LoanID == loanID {
			rows = append(rows, row)
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].InstallmentNumber < rows[j].InstallmentNumber
	})
	return rows, nil
}

func (f *fakeRepaymentRepo) ListOverdue(ctx context.Context, asOf time.Time) ([]model.LoanRepayment, error) {
	var rows []model.LoanRepayment
	for _, row := range f.rows {
		if row.IsOverdue(asOf) {
			rows = append(rows, row)
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].DueDate.Before(rows[j].DueDate)
	})
	return rows, nil
}

func (f *fakeRepaymentRepo) ExportPayrollForMonth(ctx context.Context, from, to time.Time) ([]model.PayrollExportRow, error) {
	return f.exportRows, nil
}

// --- Audit ---

type fakeAuditRepo struct {
	entries []model.AuditLog
}

func (f *fakeAuditRepo) Log(ctx context.Context, entry *model.AuditLog) error {
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeAuditRepo) List(ctx context.Context, page, limit int) ([]model.AuditLog, int64, error) {
	return f.entries, int64(len(f.entries)), nil
}

func (f *fakeAuditRepo) countAction(action string) int {
	count := 0
	for _, entry := range f.entries {
		if entry.Action == action {
			count++
		}
	}
	return count
}

// --- Approval engine ---

type fakeEngine struct {
	instanceID  string
	initiateErr error
	cancelErr   error
	initiated   []approval.InitiateRequest
	cancelled   []string
	// Runs before InitiateApproval returns; lets tests race the webhook
	// against the registration call
	onInitiate func()
}

func (f *fakeEngine) InitiateApproval(ctx context.Context, req approval.InitiateRequest) (string, error) {
	f.initiated = append(f.initiated, req)
	if f.onInitiate != nil {
		f.onInitiate()
	}
	if f.initiateErr != nil {
		return "", f.initiateErr
	}
	if f.instanceID == "" {
		return "apr-1", nil
	}
	return f.instanceID, nil
}

func (f *fakeEngine) CancelApproval(ctx context.Context, instanceID string) error {
	f.cancelled = append(f.cancelled, instanceID)
	return f.cancelErr
}

// --- Notifier ---

type fakeNotifier struct {
	events []string
}

func (f *fakeNotifier) BroadcastEvent(event string, payload interface{}) {
	f.events = append(f.events, event)
}

func (f *fakeNotifier) has(event string) bool {
	for _, e := range f.events {
		if e == event {
			return true
		}
	}
	return false
}

// --- Shared helpers ---

func mustDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}
