package leaverequest

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"leavehub/internal/identity"
)

const (
	StatusDraft    = "DRAFT"
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
	StatusCanceled = "CANCELLED"
)

const (
	TypeVacation    = "VACATION"
	TypeSick        = "SICK"
	TypePersonal    = "PERSONAL"
	TypeMaternity   = "MATERNITY"
	TypePaternity   = "PATERNITY"
	TypeBereavement = "BEREAVEMENT"
	TypeUnpaid      = "UNPAID"
	TypeOther       = "OTHER"
)

const (
	HalfDayMorning   = "MORNING"
	HalfDayAfternoon = "AFTERNOON"
)

type LeaveRequest struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_requests_user_dates"`

	LeaveType   string     `gorm:"type:varchar(30);not null;default:'VACATION'"`
	StartDate   time.Time  `gorm:"type:date;not null;index:idx_leave_requests_user_dates"`
	EndDate     time.Time  `gorm:"type:date;not null;index:idx_leave_requests_user_dates"`
	IsHalfDay   bool       `gorm:"not null;default:false"`
	HalfDayType *string    `gorm:"type:varchar(20)"`
	TotalDays   float64    `gorm:"type:numeric(5,1);not null;default:1"`
	Reason      string     `gorm:"type:text"`

	Status           string     `gorm:"type:varchar(20);not null;default:'PENDING';index:idx_leave_requests_status"`
	ApproverID       *uuid.UUID `gorm:"type:uuid"`
	ApprovedAt       *time.Time
	RejectedAt       *time.Time
	RejectionReason  *string `gorm:"type:text"`
	ApprovalComments *string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index:idx_leave_requests_deleted_at"`

	// Owner is joined for read paths that attach requester info.
	Owner *identity.User `gorm:"foreignKey:UserID;references:ID"`
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}

// ComputeTotalDays derives the billed day count from the date range: the
// inclusive calendar day count, halved for half-day requests. Callers never
// get to supply this value directly.
func ComputeTotalDays(startDate, endDate time.Time, isHalfDay bool) float64 {
	days := float64(int(endDate.Sub(startDate).Hours()/24) + 1)
	if isHalfDay {
		days /= 2
	}
	return days
}

// isAllowedStatusTransition is the single source of truth for the state
// machine. APPROVED, REJECTED and CANCELLED are terminal.
func isAllowedStatusTransition(currentStatus, targetStatus string) bool {
	if currentStatus == targetStatus {
		return false
	}

	switch currentStatus {
	case StatusDraft:
		return targetStatus == StatusPending ||
			targetStatus == StatusApproved ||
			targetStatus == StatusRejected ||
			targetStatus == StatusCanceled
	case StatusPending:
		return targetStatus == StatusApproved ||
			targetStatus == StatusRejected ||
			targetStatus == StatusCanceled
	default:
		return false
	}
}

func isValidLeaveType(v string) bool {
	switch v {
	case TypeVacation, TypeSick, TypePersonal, TypeMaternity,
		TypePaternity, TypeBereavement, TypeUnpaid, TypeOther:
		return true
	}
	return false
}
