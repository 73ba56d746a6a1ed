package repository

import (
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// Store-level errors shared by every driver.
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("unique constraint violated")
)

const (
	pgUniqueViolation = "23505"
)

// isUniqueViolation reports whether err is a PostgreSQL unique constraint failure.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// validID guards queries against ids that cannot exist in a uuid column.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
