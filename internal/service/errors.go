package service

import "errors"

// Auth and identity errors.
var (
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrMissingFields       = errors.New("name, email, password and role are required")
	ErrInvalidRole         = errors.New("role must be admin or moderator")
	ErrInvalidGrant        = errors.New("invalid permission grant")
	ErrPermissionsRequired = errors.New("moderators require at least one permission")
	ErrEmailTaken          = errors.New("email already registered")
	ErrUserNotFound        = errors.New("user not found")
	ErrCannotDeleteSelf    = errors.New("cannot delete your own account")
	ErrAlreadyBootstrapped = errors.New("credential store is not empty")
	ErrTokenMissing        = errors.New("token required")
	ErrTokenInvalid        = errors.New("token invalid")
)

// Resource errors.
var (
	ErrDocumentNotFound = errors.New("document not found")
	ErrDocumentConflict = errors.New("document violates a unique field")
)
