package permissions_test

import (
	"testing"

	"github.com/DoyleJ11/user-manager/internal/permissions"
	"github.com/stretchr/testify/assert"
)

func TestIsAdmin(t *testing.T) {
	assert.False(t, permissions.IsAdmin(nil))
	assert.False(t, permissions.IsAdmin(&permissions.Actor{ID: "u1", Role: permissions.RoleUser}))
	assert.False(t, permissions.IsAdmin(&permissions.Actor{ID: "u1", Role: permissions.RoleRedacteur}))
	assert.True(t, permissions.IsAdmin(&permissions.Actor{ID: "u1", Role: permissions.RoleAdmin}))
}

func TestIsSelf(t *testing.T) {
	assert.False(t, permissions.IsSelf("", "x"))
	assert.False(t, permissions.IsSelf("x", ""))
	assert.False(t, permissions.IsSelf("x", "y"))
	assert.True(t, permissions.IsSelf("x", "x"))
}

func TestCanManageUser(t *testing.T) {
	admin := &permissions.Actor{ID: "admin1", Role: permissions.RoleAdmin}
	user := &permissions.Actor{ID: "u1", Role: permissions.RoleUser}

	// Admins manage any other account, never themselves.
	assert.True(t, permissions.CanManageUser(admin, "u1"))
	assert.False(t, permissions.CanManageUser(admin, admin.ID))
	assert.False(t, permissions.CanManageUser(user, "u2"))
	assert.False(t, permissions.CanManageUser(nil, "u1"))
}

func TestCanManageUser_TwoAdmins(t *testing.T) {
	admin1 := &permissions.Actor{ID: "admin1", Role: permissions.RoleAdmin}
	admin2 := &permissions.Actor{ID: "admin2", Role: permissions.RoleAdmin}

	assert.True(t, permissions.CanManageUser(admin1, admin2.ID))
	assert.False(t, permissions.CanManageUser(admin1, admin1.ID))
}

func TestCanEditOwn(t *testing.T) {
	user := &permissions.Actor{ID: "u1", Role: permissions.RoleUser}
	admin := &permissions.Actor{ID: "admin1", Role: permissions.RoleAdmin}

	assert.True(t, permissions.CanEditOwn(user, "u1"))
	assert.False(t, permissions.CanEditOwn(user, "u2"))
	// Role does not matter for own-profile edits; admins still fail on others.
	assert.True(t, permissions.CanEditOwn(admin, "admin1"))
	assert.False(t, permissions.CanEditOwn(admin, "u1"))
	assert.False(t, permissions.CanEditOwn(nil, "u1"))
}

func TestValidRole(t *testing.T) {
	for _, r := range permissions.Roles {
		assert.True(t, permissions.ValidRole(r))
	}
	assert.False(t, permissions.ValidRole("SUPERADMIN"))
	assert.False(t, permissions.ValidRole("admin"))
	assert.False(t, permissions.ValidRole(""))
}
