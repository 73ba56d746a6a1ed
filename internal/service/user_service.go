package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/stemsi/academy-backoffice/internal/model"
	"github.com/stemsi/academy-backoffice/internal/repository"
)

// UserService implements the admin-only identity management operations.
type UserService struct {
	users UserStore
	auth  *AuthService
	log   zerolog.Logger
}

// NewUserService creates a new UserService.
func NewUserService(users UserStore, auth *AuthService, log zerolog.Logger) *UserService {
	return &UserService{
		users: users,
		auth:  auth,
		log:   log.With().Str("component", "user_service").Logger(),
	}
}

// List retrieves all identities.
func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	return s.users.List(ctx)
}

// Update applies a partial update. An email change is checked against every
// other identity; keeping one's own email is always allowed.
func (s *UserService) Update(ctx context.Context, id string, req model.UpdateUserRequest) (*model.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrMissingFields
		}
		user.Name = name
	}

	if req.Email != nil {
		email := normalizeEmail(*req.Email)
		if email == "" {
			return nil, ErrMissingFields
		}
		if email != user.Email {
			taken, err := s.users.EmailTaken(ctx, email, user.ID)
			if err != nil {
				return nil, fmt.Errorf("check email: %w", err)
			}
			if taken {
				return nil, ErrEmailTaken
			}
		}
		user.Email = email
	}

	if req.Password != nil {
		if *req.Password == "" {
			return nil, ErrMissingFields
		}
		hash, err := s.auth.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = hash
	}

	if req.Role != nil {
		if !req.Role.Valid() {
			return nil, ErrInvalidRole
		}
		user.Role = *req.Role
	}

	if req.Permissions != nil {
		grants, err := normalizeGrants(*req.Permissions)
		if err != nil {
			return nil, err
		}
		user.Permissions = grants
	}

	user.Permissions, err = grantsForRole(user.Role, user.Permissions)
	if err != nil {
		return nil, err
	}

	if req.ProfileImage != nil {
		user.ProfileImage = strings.TrimSpace(*req.ProfileImage)
	}

	if err := s.users.Update(ctx, user); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrUserNotFound
		case errors.Is(err, repository.ErrDuplicate):
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Msg("identity updated")
	return user, nil
}

// Delete removes an identity. Nobody may delete their own account,
// whatever their role.
func (s *UserService) Delete(ctx context.Context, callerID, id string) error {
	if callerID == id {
		return ErrCannotDeleteSelf
	}
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	s.log.Info().Str("user_id", id).Str("deleted_by", callerID).Msg("identity deleted")
	return nil
}
