package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"hrms/internal/model"
	"hrms/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// --- DTOs ---

type CreateStaffRequest struct {
	StaffNumber   string `json:"staff_number" binding:"required"`
	FullName      string `json:"full_name" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	Phone         string `json:"phone"`
	Password      string `json:"password" binding:"required,min=6"`
	Role          string `json:"role" binding:"required,oneof=admin hr staff"`
	BranchID      string `json:"branch_id"`
	MonthlySalary string `json:"monthly_salary"` // Decimal string
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type StaffResponse struct {
	ID            string `json:"id"`
	StaffNumber   string `json:"staff_number"`
	FullName      string `json:"full_name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Role          string `json:"role"`
	BranchName    string `json:"branch_name,omitempty"`
	MonthlySalary string `json:"monthly_salary"`
	IsActive      bool   `json:"is_active"`
	CreatedAt     string `json:"created_at"`
}

type CreateBranchRequest struct {
	Code string `json:"code" binding:"required"`
	Name string `json:"name" binding:"required"`
}

// --- Interface ---

type StaffService interface {
	CreateStaff(ctx context.Context, req CreateStaffRequest) (StaffResponse, error)
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)
	GetByID(ctx context.Context, id string) (StaffResponse, error)
	ListStaff(ctx context.Context, page, limit int) ([]StaffResponse, int64, error)
	CreateBranch(ctx context.Context, req CreateBranchRequest) (*model.Branch, error)
	ListBranches(ctx context.Context) ([]model.Branch, error)
}

type staffService struct {
	staffRepo  repository.StaffRepository
	branchRepo repository.BranchRepository
	auditRepo  repository.AuditRepository
}

func NewStaffService(staffRepo repository.StaffRepository, branchRepo repository.BranchRepository, auditRepo repository.AuditRepository) StaffService {
	return &staffService{staffRepo: staffRepo, branchRepo: branchRepo, auditRepo: auditRepo}
}

// --- Implementation ---

func (s *staffService) CreateStaff(ctx context.Context, req CreateStaffRequest) (StaffResponse, error) {
	if _, err := s.staffRepo.FindByEmail(ctx, req.Email); err == nil {
		return StaffResponse{}, fmt.Errorf("%w: email already exists", ErrConflict)
	}
	if _, err := s.staffRepo.FindByStaffNumber(ctx, req.StaffNumber); err == nil {
		return StaffResponse{}, fmt.Errorf("%w: staff number already exists", ErrConflict)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return StaffResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	staff := model.Staff{
		StaffNumber: req.StaffNumber,
		FullName:    req.FullName,
		Email:       req.Email,
		Phone:       req.Phone,
		Password:    string(hashedPassword),
		Role:        req.Role,
		IsActive:    true,
	}

	if req.BranchID != "" {
		branchID, parseErr := uuid.Parse(req.BranchID)
		if parseErr != nil {
			return StaffResponse{}, fmt.Errorf("%w: invalid branch_id", ErrValidation)
		}
		if _, findErr := s.branchRepo.FindByID(ctx, branchID); findErr != nil {
			return StaffResponse{}, fmt.Errorf("%w: branch %s", ErrNotFound, req.BranchID)
		}
		staff.BranchID = &branchID
	}

	if req.MonthlySalary != "" {
		salary, parseErr := decimal.NewFromString(req.MonthlySalary)
		if parseErr != nil || salary.IsNegative() {
			return StaffResponse{}, fmt.Errorf("%w: monthly_salary must be a non-negative amount", ErrValidation)
		}
		staff.MonthlySalary = salary
	}

	if err := s.staffRepo.Create(ctx, &staff); err != nil {
		return StaffResponse{}, fmt.Errorf("failed to create staff: %w", err)
	}

	audit := &model.AuditLog{
		Action:     model.ActionCreateStaff,
		EntityID:   staff.ID.String(),
		EntityName: staff.StaffNumber,
	}
	if auditErr := s.auditRepo.Log(ctx, audit); auditErr != nil {
		return StaffResponse{}, fmt.Errorf("failed to write audit log: %w", auditErr)
	}

	return toStaffResponse(staff), nil
}

func (s *staffService) Login(ctx context.Context, req LoginRequest) (TokenResponse, error) {
	staff, err := s.staffRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return TokenResponse{}, fmt.Errorf("%w: invalid email or password", ErrValidation)
	}

	if !staff.IsActive {
		return TokenResponse{}, fmt.Errorf("%w: account is deactivated", ErrConflict)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(staff.Password), []byte(req.Password)); err != nil {
		return TokenResponse{}, fmt.Errorf("%w: invalid email or password", ErrValidation)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  staff.ID.String(),
		"role": staff.Role,
		"exp":  time.Now().Add(24 * time.Hour).Unix(),
	})

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "default_super_secret_key"
	}

	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return TokenResponse{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return TokenResponse{Token: tokenString}, nil
}

func (s *staffService) GetByID(ctx context.Context, id string) (StaffResponse, error) {
	staffID, err := uuid.Parse(id)
	if err != nil {
		return StaffResponse{}, fmt.Errorf("%w: invalid staff id", ErrValidation)
	}

	staff, err := s.staffRepo.FindByID(ctx, staffID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return StaffResponse{}, fmt.Errorf("%w: staff %s", ErrNotFound, id)
		}
		return StaffResponse{}, fmt.Errorf("failed to load staff: %w", err)
	}

	return toStaffResponse(*staff), nil
}

func (s *staffService) ListStaff(ctx context.Context, page, limit int) ([]StaffResponse, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	staffs, total, err := s.staffRepo.List(ctx, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch staff: %w", err)
	}

	result := make([]StaffResponse, 0, len(staffs))
	for _, st := range staffs {
		result = append(result, toStaffResponse(st))
	}
	return result, total, nil
}

func (s *staffService) CreateBranch(ctx context.Context, req CreateBranchRequest) (*model.Branch, error) {
	branch := model.Branch{Code: req.Code, Name: req.Name}
	if err := s.branchRepo.Create(ctx, &branch); err != nil {
		return nil, fmt.Errorf("failed to create branch: %w", err)
	}
	return &branch, nil
}

func (s *staffService) ListBranches(ctx context.Context) ([]model.Branch, error) {
	branches, err := s.branchRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch branches: %w", err)
	}
	return branches, nil
}

// --- Helpers ---

func toStaffResponse(staff model.Staff) StaffResponse {
	resp := StaffResponse{
		ID:            staff.ID.String(),
		StaffNumber:   staff.StaffNumber,
		FullName:      staff.FullName,
		Email:         staff.Email,
		Phone:         staff.Phone,
		Role:          staff.Role,
		MonthlySalary: staff.MonthlySalary.StringFixed(2),
		IsActive:      staff.IsActive,
		CreatedAt:     staff.CreatedAt.Format(time.RFC3339),
	}
	if staff.Branch != nil {
		resp.BranchName = staff.Branch.Name
	}
	return resp
}
