package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/academy-backoffice/internal/model"
)

const userColumns = `id, name, email, password_hash, role, permissions, profile_image, created_at, updated_at`

// UserRepository is the PostgreSQL credential store.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	return r.scanOne(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

// GetByEmail retrieves a user by their unique email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.scanOne(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

// List retrieves all users, newest first.
func (r *UserRepository) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		var u model.User
		if err := scanUser(rows, &u); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// Count returns the number of stored users.
func (r *UserRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}

// EmailTaken reports whether another user (not excludeID) owns email.
func (r *UserRepository) EmailTaken(ctx context.Context, email, excludeID string) (bool, error) {
	var exists bool
	var err error
	if validID(excludeID) {
		err = r.pool.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1 AND id != $2)`, email, excludeID,
		).Scan(&exists)
	} else {
		err = r.pool.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email,
		).Scan(&exists)
	}
	return exists, err
}

// Create inserts a new user and fills its id and timestamps.
func (r *UserRepository) Create(ctx context.Context, u *model.User) error {
	u.ID = uuid.NewString()
	err := r.pool.QueryRow(ctx,
		`INSERT INTO users (id, name, email, password_hash, role, permissions, profile_image)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING created_at, updated_at`,
		u.ID, u.Name, u.Email, u.PasswordHash, u.Role, grantsOrEmpty(u.Permissions), u.ProfileImage,
	).Scan(&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// Update overwrites the mutable columns of an existing user.
func (r *UserRepository) Update(ctx context.Context, u *model.User) error {
	if !validID(u.ID) {
		return ErrNotFound
	}
	err := r.pool.QueryRow(ctx,
		`UPDATE users
		 SET name = $1, email = $2, password_hash = $3, role = $4, permissions = $5,
		     profile_image = $6, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $7
		 RETURNING updated_at`,
		u.Name, u.Email, u.PasswordHash, u.Role, grantsOrEmpty(u.Permissions), u.ProfileImage, u.ID,
	).Scan(&u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// Delete removes a user by ID.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return ErrNotFound
	}
	res, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *UserRepository) scanOne(row pgx.Row) (*model.User, error) {
	u := &model.User{}
	if err := scanUser(row, u); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func scanUser(row pgx.Row, u *model.User) error {
	return row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role,
		&u.Permissions, &u.ProfileImage, &u.CreatedAt, &u.UpdatedAt)
}

// grantsOrEmpty keeps the jsonb column an array rather than null.
func grantsOrEmpty(g []model.Grant) []model.Grant {
	if g == nil {
		return []model.Grant{}
	}
	return g
}
