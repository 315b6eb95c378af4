package rbac_test

import (
	"testing"

	"leavehub/internal/rbac"

	"github.com/stretchr/testify/assert"
)

func TestEnforce_RoleMatrix(t *testing.T) {
	svc, err := rbac.NewService()
	assert.NoError(t, err)

	tests := []struct {
		name     string
		role     string
		resource string
		action   string
		allowed  bool
	}{
		{"employee can create request", rbac.RoleEmployee, "request", "create", true},
		{"employee can read balance", rbac.RoleEmployee, "balance", "read", true},
		{"employee cannot approve", rbac.RoleEmployee, "request", "approve", false},
		{"employee cannot update policy", rbac.RoleEmployee, "policy", "update", false},
		{"manager inherits create", rbac.RoleManager, "request", "create", true},
		{"manager can approve", rbac.RoleManager, "request", "approve", true},
		{"manager cannot admin cancel", rbac.RoleManager, "request", "admin_cancel", false},
		{"admin inherits approve", rbac.RoleAdmin, "request", "approve", true},
		{"admin can admin cancel", rbac.RoleAdmin, "request", "admin_cancel", true},
		{"admin can update policy", rbac.RoleAdmin, "policy", "update", true},
		{"admin can manage users", rbac.RoleAdmin, "user", "update", true},
		{"unknown role denied", "CONTRACTOR", "request", "create", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			allowed, err := svc.Enforce(rbac.EnforceRequest{
				Role:     tt.role,
				Resource: tt.resource,
				Action:   tt.action,
			})
			assert.NoError(t, err)
			assert.Equal(t, tt.allowed, allowed)
		})
	}
}
