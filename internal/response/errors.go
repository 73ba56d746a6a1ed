package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrTokenRequired      ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid       ErrCode = "TOKEN_INVALID"

	// ─── Authorization ─────────────────────────────────────────────────
	ErrForbidden        ErrCode = "FORBIDDEN"
	ErrPermissionDenied ErrCode = "PERMISSION_DENIED"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation          ErrCode = "VALIDATION_ERROR"
	ErrInvalidPayload      ErrCode = "INVALID_PAYLOAD"
	ErrPermissionsRequired ErrCode = "PERMISSIONS_REQUIRED"
	ErrCannotDeleteSelf    ErrCode = "CANNOT_DELETE_SELF"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound     ErrCode = "NOT_FOUND"
	ErrUserNotFound ErrCode = "USER_NOT_FOUND"
	ErrConflict     ErrCode = "CONFLICT"
	ErrEmailExists  ErrCode = "EMAIL_EXISTS"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Authentication ────────────────────────────────────────────────
	case ErrInvalidCredentials:
		return "Invalid credentials"
	case ErrTokenRequired:
		return "Authentication token required"
	case ErrTokenInvalid:
		return "Invalid or expired token"

	// ─── Authorization ─────────────────────────────────────────────────
	case ErrForbidden:
		return "Access denied"
	case ErrPermissionDenied:
		return "You do not have permission to access this resource"

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Validation failed"
	case ErrInvalidPayload:
		return "Invalid request payload"
	case ErrPermissionsRequired:
		return "Moderators must have at least one permission"
	case ErrCannotDeleteSelf:
		return "Cannot delete your own account"

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "Resource not found"
	case ErrUserNotFound:
		return "User not found"
	case ErrConflict:
		return "A record with the same unique value already exists"
	case ErrEmailExists:
		return "Email already registered"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later"

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "Internal server error"
	default:
		return "An unexpected error occurred"
	}
}
