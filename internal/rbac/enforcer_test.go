package rbac_test

import (
	"path/filepath"
	"testing"

	"leavehub/internal/rbac"

	"github.com/stretchr/testify/assert"
)

func newConfigEnforcer(t *testing.T) rbac.Enforcer {
	t.Helper()

	e, err := rbac.NewEnforcer(
		filepath.Join("..", "..", "configs", "rbac", "model.conf"),
		filepath.Join("..", "..", "configs", "rbac", "policy.csv"),
	)
	if err != nil {
		t.Fatalf("load rbac config: %v", err)
	}
	return e
}

func TestEnforcer_RolePermissions(t *testing.T) {
	e := newConfigEnforcer(t)

	tests := []struct {
		name     string
		role     string
		resource string
		action   string
		want     bool
	}{
		{"employee creates requests", "EMPLOYEE", "leave_request", "create", true},
		{"employee cannot approve", "EMPLOYEE", "leave_request", "approve", false},
		{"employee cannot delete", "EMPLOYEE", "leave_request", "delete", false},
		{"supervisor approves", "SUPERVISOR", "leave_request", "approve", true},
		{"supervisor deletes direct reports' requests", "SUPERVISOR", "leave_request", "delete", true},
		{"supervisor inherits employee create", "SUPERVISOR", "leave_request", "create", true},
		{"supervisor cannot manage balances", "SUPERVISOR", "leave_balance", "manage", false},
		{"hr manages balances", "HR", "leave_balance", "manage", true},
		{"hr inherits supervisor delete", "HR", "leave_request", "delete", true},
		{"hr reads audit trail", "HR", "audit_log", "read", true},
		{"admin inherits the full chain", "ADMIN", "leave_request", "delete", true},
		{"admin reads audit trail", "ADMIN", "audit_log", "read", true},
		{"unknown role gets nothing", "CONTRACTOR", "leave_request", "read", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			allowed, err := e.Enforce(tt.role, tt.resource, tt.action)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, allowed, "%s %s:%s", tt.role, tt.resource, tt.action)
		})
	}
}
