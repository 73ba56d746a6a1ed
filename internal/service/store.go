package service

import (
	"context"

	"github.com/stemsi/academy-backoffice/internal/model"
)

// UserStore is the credential store. Implemented by
// repository.UserRepository and memory.UserStore.
type UserStore interface {
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Count(ctx context.Context) (int, error)
	EmailTaken(ctx context.Context, email, excludeID string) (bool, error)
	Create(ctx context.Context, u *model.User) error
	Update(ctx context.Context, u *model.User) error
	Delete(ctx context.Context, id string) error
}

// DocumentStore persists resource documents. Implemented by
// repository.DocumentRepository and memory.DocumentStore.
type DocumentStore interface {
	Insert(ctx context.Context, kind model.Resource, fields map[string]interface{}) (*model.Document, error)
	Find(ctx context.Context, kind model.Resource, filter map[string]string) ([]model.Document, error)
	FindByID(ctx context.Context, kind model.Resource, id string) (*model.Document, error)
	FindByIDs(ctx context.Context, kind model.Resource, ids []string) ([]model.Document, error)
	Patch(ctx context.Context, kind model.Resource, id string, fields map[string]interface{}) (*model.Document, error)
	Delete(ctx context.Context, kind model.Resource, id string) error
	Count(ctx context.Context, kind model.Resource) (int, error)
	Ping(ctx context.Context) error
}
