package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stemsi/academy-backoffice/internal/config"
	"github.com/stemsi/academy-backoffice/internal/model"
	"github.com/stemsi/academy-backoffice/internal/repository/memory"
	"github.com/stemsi/academy-backoffice/internal/resource"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fixture struct {
	users     *memory.UserStore
	docs      *memory.DocumentStore
	auth      *AuthService
	userSvc   *UserService
	resources *ResourceService
	registry  *resource.Registry
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cfg := &config.Config{JWTSecret: "test-secret", BcryptCost: bcrypt.MinCost}
	registry := resource.Default()
	users := memory.NewUserStore()
	docs := memory.NewDocumentStore(registry.UniqueFields())
	log := zerolog.Nop()

	auth := NewAuthService(cfg, users, log)
	return &fixture{
		users:     users,
		docs:      docs,
		auth:      auth,
		userSvc:   NewUserService(users, auth, log),
		resources: NewResourceService(docs, registry, log),
		registry:  registry,
	}
}

func (f *fixture) admin(t *testing.T, email string) *model.User {
	t.Helper()
	u, err := f.auth.Register(context.Background(), model.RegisterRequest{
		Name: "Admin", Email: email, Password: "secret123", Role: model.RoleAdmin,
	})
	require.NoError(t, err)
	return u
}

func (f *fixture) moderator(t *testing.T, email string, grants ...model.Grant) *model.User {
	t.Helper()
	u, err := f.auth.Register(context.Background(), model.RegisterRequest{
		Name: "Mod", Email: email, Password: "secret123", Role: model.RoleModerator, Permissions: grants,
	})
	require.NoError(t, err)
	return u
}

func (f *fixture) schema(t *testing.T, name model.Resource) *resource.Schema {
	t.Helper()
	s, ok := f.registry.Get(name)
	require.True(t, ok)
	return s
}
