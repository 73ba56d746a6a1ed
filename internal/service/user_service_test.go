package service

import (
	"context"
	"testing"

	"github.com/stemsi/academy-backoffice/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestUpdateUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.admin(t, "root@example.com")
	mod := f.moderator(t, "mod@example.com", readStudents)

	t.Run("keeping own email", func(t *testing.T) {
		u, err := f.userSvc.Update(ctx, mod.ID, model.UpdateUserRequest{Email: ptr("MOD@example.com"), Name: ptr("Renamed")})
		require.NoError(t, err)
		assert.Equal(t, "mod@example.com", u.Email)
		assert.Equal(t, "Renamed", u.Name)
	})

	t.Run("email of another identity", func(t *testing.T) {
		_, err := f.userSvc.Update(ctx, mod.ID, model.UpdateUserRequest{Email: ptr("root@example.com")})
		assert.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("password change", func(t *testing.T) {
		_, err := f.userSvc.Update(ctx, mod.ID, model.UpdateUserRequest{Password: ptr("changed-pass")})
		require.NoError(t, err)
		_, _, err = f.auth.Login(ctx, "mod@example.com", "changed-pass")
		assert.NoError(t, err)
		_, _, err = f.auth.Login(ctx, "mod@example.com", "secret123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("empty password", func(t *testing.T) {
		_, err := f.userSvc.Update(ctx, mod.ID, model.UpdateUserRequest{Password: ptr("")})
		assert.ErrorIs(t, err, ErrMissingFields)
		_, _, err = f.auth.Login(ctx, "mod@example.com", "changed-pass")
		assert.NoError(t, err, "password must be unchanged")
	})

	t.Run("moderator cannot lose every grant", func(t *testing.T) {
		_, err := f.userSvc.Update(ctx, mod.ID, model.UpdateUserRequest{Permissions: &[]model.Grant{}})
		assert.ErrorIs(t, err, ErrPermissionsRequired)
	})

	t.Run("promotion clears grants", func(t *testing.T) {
		u, err := f.userSvc.Update(ctx, mod.ID, model.UpdateUserRequest{Role: ptr(model.RoleAdmin)})
		require.NoError(t, err)
		assert.Equal(t, model.RoleAdmin, u.Role)
		assert.Empty(t, u.Permissions)
	})

	t.Run("demotion needs grants", func(t *testing.T) {
		_, err := f.userSvc.Update(ctx, mod.ID, model.UpdateUserRequest{Role: ptr(model.RoleModerator)})
		assert.ErrorIs(t, err, ErrPermissionsRequired)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := f.userSvc.Update(ctx, "00000000-0000-0000-0000-000000000000", model.UpdateUserRequest{Name: ptr("x")})
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestDeleteUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := f.admin(t, "root@example.com")
	mod := f.moderator(t, "mod@example.com", readStudents)

	assert.ErrorIs(t, f.userSvc.Delete(ctx, admin.ID, admin.ID), ErrCannotDeleteSelf)
	assert.ErrorIs(t, f.userSvc.Delete(ctx, mod.ID, mod.ID), ErrCannotDeleteSelf)
	assert.ErrorIs(t, f.userSvc.Delete(ctx, "ghost", "ghost"), ErrCannotDeleteSelf)

	_, err := f.users.GetByID(ctx, admin.ID)
	require.NoError(t, err)

	require.NoError(t, f.userSvc.Delete(ctx, admin.ID, mod.ID))
	assert.ErrorIs(t, f.userSvc.Delete(ctx, admin.ID, mod.ID), ErrUserNotFound)

	list, err := f.userSvc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
