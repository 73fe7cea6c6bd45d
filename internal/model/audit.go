package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActionApplyLoan        = "APPLY_LOAN"
	ActionCancelLoan       = "CANCEL_LOAN"
	ActionApproveLoan      = "APPROVE_LOAN"
	ActionRejectLoan       = "REJECT_LOAN"
	ActionDisburseLoan     = "DISBURSE_LOAN"
	ActionGenerateSchedule = "GENERATE_SCHEDULE"
	ActionRecordRepayment  = "RECORD_REPAYMENT"
	ActionProcessPayroll   = "PROCESS_PAYROLL"
	ActionCreateStaff      = "CREATE_STAFF"
)

// AuditLog tracks Who, What, and When for critical system changes
type AuditLog struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	StaffID    *uuid.UUID `gorm:"type:uuid;index" json:"staff_id"` // Nullable gracefully if automated job
	Staff      *Staff     `gorm:"foreignKey:StaffID" json:"staff"`
	Action     string     `gorm:"type:varchar(50);not null;index" json:"action"`
	EntityID   string     `gorm:"type:varchar(50);index" json:"entity_id"`        // Reference string (uuid/loan number)
	EntityName string     `gorm:"type:varchar(255)" json:"entity_name,omitempty"` // Human readable name
	Details    string     `gorm:"type:jsonb" json:"details"`                      // Serialized JSON payload of the action
	CreatedAt  time.Time  `gorm:"index" json:"created_at"`
}
