package authz

import (
	"testing"

	"github.com/stemsi/academy-backoffice/internal/model"
	"github.com/stretchr/testify/assert"
)

func moderator(grants ...model.Grant) *model.User {
	return &model.User{ID: "m", Role: model.RoleModerator, Permissions: grants}
}

func TestRequirePermissionReadOnlyModeratorIsAdmitted(t *testing.T) {
	// Coarse gate: any grant on the resource admits every verb.
	for _, r := range model.AllResources {
		u := moderator(model.Grant{Resource: r, Access: model.AccessRead})
		assert.NoError(t, RequirePermission(u, r), "resource %s", r)
		assert.True(t, CanRead(u, r))
		assert.False(t, CanWrite(u, r), "fine capability still distinguishes write")
	}
}

func TestRequirePermissionWriteOnlyModerator(t *testing.T) {
	u := moderator(model.Grant{Resource: model.ResourceCourses, Access: model.AccessWrite})
	assert.NoError(t, RequirePermission(u, model.ResourceCourses))
	assert.True(t, CanWrite(u, model.ResourceCourses))
	assert.False(t, CanRead(u, model.ResourceCourses), "write does not imply read")
}

func TestRequirePermissionModeratorWithoutGrant(t *testing.T) {
	u := moderator(model.Grant{Resource: model.ResourceStudents, Access: model.AccessWrite})
	for _, r := range model.AllResources {
		if r == model.ResourceStudents {
			continue
		}
		assert.ErrorIs(t, RequirePermission(u, r), ErrForbidden, "resource %s", r)
	}
	assert.ErrorIs(t, RequirePermission(moderator(), model.ResourceStudents), ErrForbidden)
}

func TestRequirePermissionAdminIgnoresPermissions(t *testing.T) {
	admins := []*model.User{
		{Role: model.RoleAdmin},
		{Role: model.RoleAdmin, Permissions: []model.Grant{{Resource: model.ResourceVendors, Access: model.AccessRead}}},
	}
	for _, u := range admins {
		for _, r := range model.AllResources {
			assert.NoError(t, RequirePermission(u, r))
			assert.True(t, CanWrite(u, r))
		}
	}
}

func TestRequirePermissionUnknownRoleOrNil(t *testing.T) {
	assert.ErrorIs(t, RequirePermission(nil, model.ResourceStudents), ErrForbidden)
	u := &model.User{Role: "guest", Permissions: []model.Grant{{Resource: model.ResourceStudents, Access: model.AccessRead}}}
	assert.ErrorIs(t, RequirePermission(u, model.ResourceStudents), ErrForbidden)
	assert.False(t, CanRead(u, model.ResourceStudents))
}

func TestRequireRole(t *testing.T) {
	admin := &model.User{Role: model.RoleAdmin}
	mod := moderator(model.Grant{Resource: model.ResourceStudents, Access: model.AccessWrite})

	assert.NoError(t, RequireRole(admin, model.RoleAdmin))
	assert.ErrorIs(t, RequireRole(mod, model.RoleAdmin), ErrForbidden)
	assert.NoError(t, RequireRole(mod, model.RoleAdmin, model.RoleModerator))
	assert.ErrorIs(t, RequireRole(nil, model.RoleAdmin), ErrForbidden)
}

func TestCapabilities(t *testing.T) {
	u := moderator(
		model.Grant{Resource: model.ResourceStudents, Access: model.AccessRead},
		model.Grant{Resource: model.ResourceReports, Access: model.AccessWrite},
	)
	caps := Capabilities(u)
	assert.Len(t, caps, len(model.AllResources))
	assert.Equal(t, Capability{Read: true}, caps[model.ResourceStudents])
	assert.Equal(t, Capability{Write: true}, caps[model.ResourceReports])
	assert.Equal(t, Capability{}, caps[model.ResourceVendors])
}
