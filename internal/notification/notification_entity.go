package notification

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypeSuccess = "success"
	TypeError   = "error"
	TypeWarning = "warning"
	TypeInfo    = "info"
)

// DispatchedTopic is where the outbox worker publishes dispatched
// notifications for downstream delivery channels (mail, push).
const DispatchedTopic = "leavehub.notifications.dispatched"

// Notification rows are append-only except for the read marker.
type Notification struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index:idx_notifications_user_read"`
	Title     string     `gorm:"type:varchar(255);not null"`
	Message   string     `gorm:"type:text;not null"`
	Type      string     `gorm:"type:varchar(20);not null;default:'info'"`
	IsRead    bool       `gorm:"not null;default:false;index:idx_notifications_user_read"`
	ReadAt    *time.Time
	RelatedID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt time.Time
}

func (Notification) TableName() string {
	return "notifications"
}
