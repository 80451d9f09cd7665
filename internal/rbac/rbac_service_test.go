package rbac_test

import (
	"testing"

	"github.com/sourabhverman/people-hub-pro/internal/domain"
	"github.com/sourabhverman/people-hub-pro/internal/rbac"

	"github.com/stretchr/testify/assert"
)

func enforce(t *testing.T, svc rbac.Service, role, resource, action string) bool {
	t.Helper()
	allowed, err := svc.Enforce(domain.EnforceRequest{Role: role, Resource: resource, Action: action})
	assert.NoError(t, err)
	return allowed
}

func TestService_Enforce(t *testing.T) {
	svc, err := rbac.NewService()
	assert.NoError(t, err)

	t.Run("employee baseline", func(t *testing.T) {
		assert.True(t, enforce(t, svc, domain.RoleEmployee, "leave", "create"))
		assert.True(t, enforce(t, svc, domain.RoleEmployee, "balance", "read"))
		assert.False(t, enforce(t, svc, domain.RoleEmployee, "leave", "decide"))
		assert.False(t, enforce(t, svc, domain.RoleEmployee, "payroll", "manage"))
	})

	t.Run("manager inherits employee and decides", func(t *testing.T) {
		assert.True(t, enforce(t, svc, domain.RoleManager, "leave", "create"))
		assert.True(t, enforce(t, svc, domain.RoleManager, "leave", "decide"))
		assert.True(t, enforce(t, svc, domain.RoleManager, "exit", "manager_approve"))
		assert.False(t, enforce(t, svc, domain.RoleManager, "exit", "hr_approve"))
	})

	t.Run("hr admin administers", func(t *testing.T) {
		assert.True(t, enforce(t, svc, domain.RoleHRAdmin, "leave", "decide"))
		assert.True(t, enforce(t, svc, domain.RoleHRAdmin, "exit", "hr_approve"))
		assert.True(t, enforce(t, svc, domain.RoleHRAdmin, "holiday", "manage"))
		assert.False(t, enforce(t, svc, domain.RoleHRAdmin, "rbac", "read"))
	})

	t.Run("super admin inherits everything", func(t *testing.T) {
		assert.True(t, enforce(t, svc, domain.RoleSuperAdmin, "leave", "decide"))
		assert.True(t, enforce(t, svc, domain.RoleSuperAdmin, "payroll", "manage"))
		assert.True(t, enforce(t, svc, domain.RoleSuperAdmin, "rbac", "read"))
	})

	t.Run("unknown role denied", func(t *testing.T) {
		assert.False(t, enforce(t, svc, "contractor", "leave", "create"))
	})
}
