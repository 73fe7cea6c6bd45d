package service

import (
	"context"
	"errors"
	"testing"

	"hrms/internal/model"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeBranchRepo struct {
	branches map[uuid.UUID]model.Branch
}

func newFakeBranchRepo() *fakeBranchRepo {
	return &fakeBranchRepo{branches: make(map[uuid.UUID]model.Branch)}
}

func (f *fakeBranchRepo) Create(ctx context.Context, branch *model.Branch) error {
	if branch.ID == uuid.Nil {
		branch.ID = uuid.New()
	}
	f.branches[branch.ID] = *branch
	return nil
}

func (f *fakeBranchRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Branch, error) {
	branch, ok := f.branches[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &branch, nil
}

func (f *fakeBranchRepo) List(ctx context.Context) ([]model.Branch, error) {
	branches := make([]model.Branch, 0, len(f.branches))
	for _, b := range f.branches {
		branches = append(branches, b)
	}
	return branches, nil
}

func newStaffServiceForTest() (StaffService, *fakeStaffRepo, *fakeBranchRepo) {
	staffs := newFakeStaffRepo()
	branches := newFakeBranchRepo()
	return NewStaffService(staffs, branches, &fakeAuditRepo{}), staffs, branches
}

func TestCreateStaffRejectsDuplicates(t *testing.T) {
	svc, _, _ := newStaffServiceForTest()

	req := CreateStaffRequest{
		StaffNumber: "EMP001",
		FullName:    "Ada Test",
		Email:       "ada@example.com",
		Password:    "secret123",
		Role:        "staff",
	}

	if _, err := svc.CreateStaff(context.Background(), req); err != nil {
		t.Fatalf("first CreateStaff failed: %v", err)
	}

	if _, err := svc.CreateStaff(context.Background(), req); !errors.Is(err, ErrConflict) {
		t.Errorf("expected ErrConflict on duplicate email, got %v", err)
	}

	req.Email = "other@example.com"
	if _, err := svc.CreateStaff(context.Background(), req); !errors.Is(err, ErrConflict) {
		t.Errorf("expected ErrConflict on duplicate staff number, got %v", err)
	}
}

func TestCreateStaffHashesPassword(t *testing.T) {
	svc, staffs, _ := newStaffServiceForTest()

	resp, err := svc.CreateStaff(context.Background(), CreateStaffRequest{
		StaffNumber:   "EMP001",
		FullName:      "Ada Test",
		Email:         "ada@example.com",
		Password:      "secret123",
		Role:          "hr",
		MonthlySalary: "3500.50",
	})
	if err != nil {
		t.Fatalf("CreateStaff failed: %v", err)
	}

	if resp.MonthlySalary != "3500.50" {
		t.Errorf("expected salary 3500.50, got %s", resp.MonthlySalary)
	}

	stored, err := staffs.FindByEmail(context.Background(), "ada@example.com")
	if err != nil {
		t.Fatalf("staff not persisted: %v", err)
	}
	if stored.Password == "secret123" {
		t.Fatalf("password must not be stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("secret123")); err != nil {
		t.Errorf("stored hash does not match the password: %v", err)
	}
}

func TestCreateStaffUnknownBranch(t *testing.T) {
	svc, _, _ := newStaffServiceForTest()

	_, err := svc.CreateStaff(context.Background(), CreateStaffRequest{
		StaffNumber: "EMP001",
		FullName:    "Ada Test",
		Email:       "ada@example.com",
		Password:    "secret123",
		Role:        "staff",
		BranchID:    uuid.NewString(),
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown branch, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	svc, staffs, _ := newStaffServiceForTest()

	if _, err := svc.CreateStaff(context.Background(), CreateStaffRequest{
		StaffNumber: "EMP001",
		FullName:    "Ada Test",
		Email:       "ada@example.com",
		Password:    "secret123",
		Role:        "staff",
	}); err != nil {
		t.Fatalf("CreateStaff failed: %v", err)
	}

	token, err := svc.Login(context.Background(), LoginRequest{Email: "ada@example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if token.Token == "" {
		t.Errorf("expected a signed token")
	}

	if _, err := svc.Login(context.Background(), LoginRequest{Email: "ada@example.com", Password: "wrong"}); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation for wrong password, got %v", err)
	}
	if _, err := svc.Login(context.Background(), LoginRequest{Email: "nobody@example.com", Password: "secret123"}); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation for unknown email, got %v", err)
	}

	// Deactivated accounts cannot log in
	stored, _ := staffs.FindByEmail(context.Background(), "ada@example.com")
	stored.IsActive = false
	staffs.staffs[stored.ID] = *stored

	if _, err := svc.Login(context.Background(), LoginRequest{Email: "ada@example.com", Password: "secret123"}); !errors.Is(err, ErrConflict) {
		t.Errorf("expected ErrConflict for deactivated account, got %v", err)
	}
}
