package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Staff represents an employee record. Staff members also act as the
// authentication principal for the back office.
type Staff struct {
	ID            uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	StaffNumber   string          `gorm:"type:varchar(20);uniqueIndex;not null" json:"staff_number"`
	FullName      string          `gorm:"type:varchar(255);not null" json:"full_name"`
	Email         string          `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Phone         string          `gorm:"type:varchar(20)" json:"phone"`
	Password      string          `gorm:"type:varchar(255);not null" json:"-"` // Omit password from JSON requests/responses
	Role          string          `gorm:"type:varchar(50);not null;default:'staff'" json:"role"` // admin, hr, staff
	BranchID      *uuid.UUID      `gorm:"type:uuid;index" json:"branch_id"`
	Branch        *Branch         `gorm:"foreignKey:BranchID" json:"branch,omitempty"`
	MonthlySalary decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"monthly_salary"`
	IsActive      bool            `gorm:"default:true" json:"is_active"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"-"` // GORM soft delete
}

// Branch is an office location staff are attached to
type Branch struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Code      string    `gorm:"type:varchar(20);uniqueIndex;not null" json:"code"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
