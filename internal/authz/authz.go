// Package authz holds the authorization predicates.
//
// RequirePermission is the coarse gate in front of
// every resource route: a moderator holding any grant (read or write) on a
// resource is admitted for all verbs. CanRead and CanWrite are the fine
// capability checks, exposed to clients so they can decide which
// affordances to show. The HTTP layer does not use them to reject writes.
package authz

import (
	"errors"

	"github.com/stemsi/academy-backoffice/internal/model"
)

// ErrForbidden is returned when an authenticated identity lacks the role
// or permission for an operation.
var ErrForbidden = errors.New("forbidden")

// RequireRole accepts the user iff its role is one of roles.
func RequireRole(user *model.User, roles ...model.Role) error {
	if user == nil {
		return ErrForbidden
	}
	for _, r := range roles {
		if user.Role == r {
			return nil
		}
	}
	return ErrForbidden
}

// RequirePermission is the resource gate. Admins always pass and their
// permission list is never consulted.
func RequirePermission(user *model.User, resource model.Resource) error {
	if user == nil {
		return ErrForbidden
	}
	if user.Role == model.RoleAdmin {
		return nil
	}
	if user.Role != model.RoleModerator {
		return ErrForbidden
	}
	for _, g := range user.Permissions {
		if g.Resource == resource {
			return nil
		}
	}
	return ErrForbidden
}

// CanRead reports whether the user holds (resource, read).
func CanRead(user *model.User, resource model.Resource) bool {
	return hasAccess(user, resource, model.AccessRead)
}

// CanWrite reports whether the user holds (resource, write). Write does not
// imply read.
func CanWrite(user *model.User, resource model.Resource) bool {
	return hasAccess(user, resource, model.AccessWrite)
}

func hasAccess(user *model.User, resource model.Resource, access model.Access) bool {
	if user == nil {
		return false
	}
	if user.Role == model.RoleAdmin {
		return true
	}
	if user.Role != model.RoleModerator {
		return false
	}
	for _, g := range user.Permissions {
		if g.Resource == resource && g.Access == access {
			return true
		}
	}
	return false
}

// Capability is the fine-grained view of one resource.
type Capability struct {
	Read  bool `json:"read"`
	Write bool `json:"write"`
}

// Capabilities maps every known resource to the user's fine capability.
func Capabilities(user *model.User) map[model.Resource]Capability {
	out := make(map[model.Resource]Capability, len(model.AllResources))
	for _, r := range model.AllResources {
		out[r] = Capability{Read: CanRead(user, r), Write: CanWrite(user, r)}
	}
	return out
}
