package model

import "time"

// Role is the coarse identity class of a back-office user.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleModerator Role = "moderator"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleModerator
}

// Access is the level a permission grant gives on a resource.
type Access string

const (
	AccessRead  Access = "read"
	AccessWrite Access = "write"
)

// Valid reports whether a is a known access level.
func (a Access) Valid() bool {
	return a == AccessRead || a == AccessWrite
}

// Grant is one (resource, access) pair held by a moderator.
// Read and write are tracked as separate grants.
type Grant struct {
	Resource Resource `json:"resource"`
	Access   Access   `json:"access"`
}

// User is an identity stored in the credential store.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	Permissions  []Grant   `json:"permissions"`
	ProfileImage string    `json:"profileImage,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// LoginRequest is the payload for authentication.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,max=128"`
}

// LoginResponse is returned after successful login.
type LoginResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// RegisterRequest is the payload for creating a new identity.
// Role and permission co-requirements are checked by the auth service.
type RegisterRequest struct {
	Name         string  `json:"name" binding:"required,max=100"`
	Email        string  `json:"email" binding:"required,email,max=255"`
	Password     string  `json:"password" binding:"required,min=6,max=128"`
	Role         Role    `json:"role" binding:"required,oneof=admin moderator"`
	Permissions  []Grant `json:"permissions"`
	ProfileImage string  `json:"profileImage" binding:"omitempty,url"`
}

// UpdateUserRequest is the partial payload for PUT /auth/users/:id.
// Nil fields are left untouched. An empty profileImage clears it; an empty
// password is rejected.
type UpdateUserRequest struct {
	Name         *string  `json:"name" binding:"omitempty,min=1,max=100"`
	Email        *string  `json:"email" binding:"omitempty,email,max=255"`
	Password     *string  `json:"password" binding:"omitnil,min=6,max=128"`
	Role         *Role    `json:"role" binding:"omitempty,oneof=admin moderator"`
	Permissions  *[]Grant `json:"permissions"`
	ProfileImage *string  `json:"profileImage" binding:"omitempty,url,max=2048"`
}
