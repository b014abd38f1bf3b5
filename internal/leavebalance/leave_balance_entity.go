package leavebalance

import (
	"time"

	"github.com/google/uuid"
)

// LeaveBalance is the per-user, per-leave-type, per-year allowance ledger.
// Carry-over is folded into TotalAllowance when the row is created;
// CarriedOver records how much of the allowance came from the previous year.
type LeaveBalance struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_balance_user_type_year"`
	LeaveType string    `gorm:"type:varchar(30);not null;uniqueIndex:uq_balance_user_type_year"`
	Year      int       `gorm:"not null;uniqueIndex:uq_balance_user_type_year"`

	TotalAllowance float64 `gorm:"type:numeric(5,1);not null;default:0"`
	UsedDays       float64 `gorm:"type:numeric(5,1);not null;default:0"`
	RemainingDays  float64 `gorm:"type:numeric(5,1);not null;default:0"`
	CarriedOver    float64 `gorm:"type:numeric(5,1);not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (LeaveBalance) TableName() string {
	return "leave_balances"
}

// recompute restores the ledger invariant after any mutation. Remaining is
// always derived, never trusted from partial updates.
func (b *LeaveBalance) recompute() {
	b.RemainingDays = b.TotalAllowance - b.UsedDays
}
