package auditlog

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActionCreateLeaveRequest  = "CREATE_LEAVE_REQUEST"
	ActionUpdateLeaveRequest  = "UPDATE_LEAVE_REQUEST"
	ActionApproveLeaveRequest = "APPROVE_LEAVE_REQUEST"
	ActionRejectLeaveRequest  = "REJECT_LEAVE_REQUEST"
	ActionCancelLeaveRequest  = "CANCEL_LEAVE_REQUEST"
	ActionDeleteLeaveRequest  = "DELETE_LEAVE_REQUEST"
	ActionRestoreLeaveRequest = "RESTORE_LEAVE_REQUEST"
	ActionBulkUpdateLeave     = "BULK_UPDATE_LEAVE_REQUESTS"
	ActionCarryOverBalances   = "CARRY_OVER_LEAVE_BALANCES"
	ActionServerShutdown      = "SERVER_SHUTDOWN"
)

// AuditLog rows are append-only: nothing in this service updates or deletes
// them once written.
type AuditLog struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID       *uuid.UUID `gorm:"type:uuid;index"`
	Action       string     `gorm:"type:varchar(60);not null;index"`
	ResourceType string     `gorm:"type:varchar(40);not null"`
	ResourceID   *uuid.UUID `gorm:"type:uuid;index"`
	Details      []byte     `gorm:"type:jsonb"`
	CreatedAt    time.Time
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
