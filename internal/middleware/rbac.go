package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/academy-backoffice/internal/authz"
	"github.com/stemsi/academy-backoffice/internal/metrics"
	"github.com/stemsi/academy-backoffice/internal/model"
	"github.com/stemsi/academy-backoffice/internal/response"
)

// RBAC wraps the authorization engine as Gin middleware and counts decisions.
type RBAC struct {
	metrics *metrics.Metrics
}

// NewRBAC creates RBAC middleware. m may be nil.
func NewRBAC(m *metrics.Metrics) *RBAC {
	return &RBAC{metrics: m}
}

// RequireRole admits identities whose role is one of roles.
// Must run after RequireAuth.
func (r *RBAC) RequireRole(roles ...model.Role) gin.HandlerFunc {
	subject := joinRoles(roles)
	return func(c *gin.Context) {
		user := GetUser(c)
		if user == nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}

		if err := authz.RequireRole(user, roles...); err != nil {
			r.record("role", subject, metrics.DecisionDeny)
			response.AbortFail(c, http.StatusForbidden, response.ErrForbidden)
			return
		}
		r.record("role", subject, metrics.DecisionAllow)
		c.Next()
	}
}

// RequirePermission admits admins and moderators holding any grant on
// resource. Must run after RequireAuth.
func (r *RBAC) RequirePermission(resource model.Resource) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := GetUser(c)
		if user == nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}

		if err := authz.RequirePermission(user, resource); err != nil {
			r.record("permission", string(resource), metrics.DecisionDeny)
			response.AbortFail(c, http.StatusForbidden, response.ErrPermissionDenied)
			return
		}
		r.record("permission", string(resource), metrics.DecisionAllow)
		c.Next()
	}
}

func (r *RBAC) record(gate, subject, decision string) {
	if r.metrics == nil {
		return
	}
	r.metrics.AuthzDecisions.WithLabelValues(gate, subject, decision).Inc()
}

func joinRoles(roles []model.Role) string {
	s := make([]string, len(roles))
	for i, role := range roles {
		s[i] = string(role)
	}
	return strings.Join(s, ",")
}
