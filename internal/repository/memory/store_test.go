package memory

import (
	"context"
	"testing"

	"github.com/stemsi/academy-backoffice/internal/model"
	"github.com/stemsi/academy-backoffice/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserStore(t *testing.T) {
	ctx := context.Background()
	s := NewUserStore()

	u := &model.User{Name: "Asha", Email: "asha@example.com", Role: model.RoleAdmin}
	require.NoError(t, s.Create(ctx, u))
	require.NotEmpty(t, u.ID)

	err := s.Create(ctx, &model.User{Name: "Dup", Email: "asha@example.com", Role: model.RoleAdmin})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	got, err := s.GetByEmail(ctx, "asha@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	taken, err := s.EmailTaken(ctx, "asha@example.com", u.ID)
	require.NoError(t, err)
	assert.False(t, taken, "own email must not count as taken")

	got.Name = "Asha K"
	require.NoError(t, s.Update(ctx, got))
	again, err := s.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Asha K", again.Name)

	require.NoError(t, s.Delete(ctx, u.ID))
	_, err = s.GetByID(ctx, u.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, u.ID), repository.ErrNotFound)
}

func TestUserStoreReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewUserStore()
	u := &model.User{
		Email:       "m@example.com",
		Role:        model.RoleModerator,
		Permissions: []model.Grant{{Resource: model.ResourceStudents, Access: model.AccessRead}},
	}
	require.NoError(t, s.Create(ctx, u))

	got, err := s.GetByID(ctx, u.ID)
	require.NoError(t, err)
	got.Permissions[0].Access = model.AccessWrite

	fresh, err := s.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AccessRead, fresh.Permissions[0].Access)
}

func TestDocumentStore(t *testing.T) {
	ctx := context.Background()
	s := NewDocumentStore(map[model.Resource][]string{model.ResourceCourses: {"code"}})

	a, err := s.Insert(ctx, model.ResourceCourses, map[string]interface{}{"title": "Go", "code": "GO-1", "fee": float64(1500)})
	require.NoError(t, err)
	_, err = s.Insert(ctx, model.ResourceCourses, map[string]interface{}{"title": "Rust", "code": "RS-1"})
	require.NoError(t, err)

	_, err = s.Insert(ctx, model.ResourceCourses, map[string]interface{}{"title": "Go again", "code": "GO-1"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	found, err := s.Find(ctx, model.ResourceCourses, map[string]string{"fee": "1500"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, a.ID, found[0].ID)

	all, err := s.Find(ctx, model.ResourceCourses, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	patched, err := s.Patch(ctx, model.ResourceCourses, a.ID, map[string]interface{}{"title": "Go 101"})
	require.NoError(t, err)
	assert.Equal(t, "Go 101", patched.Fields["title"])
	assert.Equal(t, "GO-1", patched.Fields["code"], "patch keeps untouched fields")

	_, err = s.Patch(ctx, model.ResourceCourses, a.ID, map[string]interface{}{"code": "RS-1"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	n, err := s.Count(ctx, model.ResourceCourses)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	require.NoError(t, s.Delete(ctx, model.ResourceCourses, a.ID))
	_, err = s.FindByID(ctx, model.ResourceCourses, a.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	byIDs, err := s.FindByIDs(ctx, model.ResourceCourses, []string{a.ID, "missing"})
	require.NoError(t, err)
	assert.Empty(t, byIDs)
}

func TestDocumentStoreFilterText(t *testing.T) {
	ctx := context.Background()
	s := NewDocumentStore(nil)

	v, err := s.Insert(ctx, model.ResourceVendors, map[string]interface{}{
		"name":     "Acme",
		"services": []string{"catering", "av"},
		"budget":   float64(1e21),
		"active":   true,
	})
	require.NoError(t, err)

	cases := []struct {
		name  string
		field string
		value string
		hit   bool
	}{
		{"list in jsonb layout", "services", `["catering", "av"]`, true},
		{"list in fmt layout", "services", "[catering av]", false},
		{"large number plain decimal", "budget", "1000000000000000000000", true},
		{"large number exponent", "budget", "1e+21", false},
		{"bool", "active", "true", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			found, err := s.Find(ctx, model.ResourceVendors, map[string]string{tc.field: tc.value})
			require.NoError(t, err)
			if tc.hit {
				require.Len(t, found, 1)
				assert.Equal(t, v.ID, found[0].ID)
			} else {
				assert.Empty(t, found)
			}
		})
	}
}
