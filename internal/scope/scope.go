package scope

import (
	"leavehub/internal/identity"

	"gorm.io/gorm"
)

// Caller is the authenticated identity every read/write path is scoped by.
type Caller struct {
	ID           string
	Role         string
	DepartmentID string
}

// ForCaller returns the row-visibility predicate for the caller's role:
// employees see their own requests, supervisors see their own plus their
// direct reports', admin and HR see everything. The predicate is applied
// before any repository read or write.
func ForCaller(caller Caller) func(db *gorm.DB) *gorm.DB {
	switch caller.Role {
	case identity.RoleAdmin, identity.RoleHR:
		return func(db *gorm.DB) *gorm.DB {
			return db
		}
	case identity.RoleSupervisor:
		return func(db *gorm.DB) *gorm.DB {
			return db.Where(
				"user_id = ? OR user_id IN (?)",
				caller.ID,
				teamSubquery(db, caller.ID),
			)
		}
	default:
		return Personal(caller.ID)
	}
}

// Personal restricts to the caller's own requests.
func Personal(userID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ?", userID)
	}
}

// Team restricts to direct reports of the manager, excluding the manager's
// own requests: those belong to the personal scope, not the team view.
func Team(managerID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id IN (?)", teamSubquery(db, managerID))
	}
}

func teamSubquery(db *gorm.DB, managerID string) *gorm.DB {
	return db.Session(&gorm.Session{NewDB: true}).
		Model(&identity.User{}).
		Select("id").
		Where("manager_id = ?", managerID).
		Where("id <> ?", managerID)
}

// CanActOn reports whether the caller has approval/delete authority over the
// request owner. Admin and HR always do; a supervisor only over direct
// reports, which the caller resolves via the identity repository.
func CanActOn(caller Caller, ownerManagerID *string) bool {
	switch caller.Role {
	case identity.RoleAdmin, identity.RoleHR:
		return true
	case identity.RoleSupervisor:
		return ownerManagerID != nil && *ownerManagerID == caller.ID
	}
	return false
}
