package identity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleEmployee   = "EMPLOYEE"
	RoleSupervisor = "SUPERVISOR"
	RoleHR         = "HR"
	RoleAdmin      = "ADMIN"
)

// User is the read-only directory row this service consumes from the identity
// provider. Credentials and session handling live outside this repo.
type User struct {
	ID           uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	Name         string     `gorm:"column:name;type:varchar(255)"`
	Email        string     `gorm:"column:email;type:text;not null;uniqueIndex"`
	Role         string     `gorm:"column:role;type:varchar(50);not null;default:'EMPLOYEE'"`
	DepartmentID *uuid.UUID `gorm:"column:department_id;type:uuid;index"`
	ManagerID    *uuid.UUID `gorm:"column:manager_id;type:uuid;index"`
	IsActive     bool       `gorm:"column:is_active;default:true"`

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (User) TableName() string {
	return "users"
}

// CanApprove reports whether the role carries approval authority.
func CanApprove(role string) bool {
	switch role {
	case RoleSupervisor, RoleAdmin, RoleHR:
		return true
	}
	return false
}

// CanDelete reports whether the role may soft-delete requests.
func CanDelete(role string) bool {
	return CanApprove(role)
}
