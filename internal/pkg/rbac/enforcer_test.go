package rbac

import (
	"testing"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultEnforcer(t *testing.T) {
	e, err := NewDefaultEnforcer()
	require.NoError(t, err)

	tests := []struct {
		name       string
		role       user.Role
		permission user.Permission
		want       bool
	}{
		{"employee checks in", user.RoleEmployee, user.PermissionAttendanceCheck, true},
		{"employee applies for leave", user.RoleEmployee, user.PermissionLeaveCreate, true},
		{"employee cannot approve", user.RoleEmployee, user.PermissionLeaveApprove, false},
		{"employee cannot override", user.RoleEmployee, user.PermissionAttendanceOverride, false},
		{"employee cannot read audit", user.RoleEmployee, user.PermissionAuditView, false},
		{"admin approves", user.RoleAdmin, user.PermissionLeaveApprove, true},
		{"admin overrides", user.RoleAdmin, user.PermissionAttendanceOverride, true},
		{"admin inherits self service", user.RoleAdmin, user.PermissionAttendanceCheck, true},
		{"unknown role", user.Role("GUEST"), user.PermissionLeaveViewOwn, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.Can(tt.role, tt.permission)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewEnforcer_Empty(t *testing.T) {
	e, err := NewEnforcer(nil, nil)
	require.NoError(t, err)

	ok, err := e.Can(user.RoleAdmin, user.PermissionAuditView)
	require.NoError(t, err)
	assert.False(t, ok)
}
