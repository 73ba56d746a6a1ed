package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/academy-backoffice/internal/model"
	"github.com/stemsi/academy-backoffice/internal/response"
	"github.com/stemsi/academy-backoffice/internal/service"
)

const (
	// ContextKeyClaims is the Gin context key for JWT claims.
	ContextKeyClaims = "claims"
	// ContextKeyUser is the Gin context key for the identity resolved from the store.
	ContextKeyUser = "user"
)

// RequireAuth resolves the bearer token to the identity as currently stored.
// Role and permissions always come from the store, never from the token.
func RequireAuth(authService *service.AuthService, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, claims, err := authService.Authenticate(c.Request.Context(), bearerToken(c))
		if err != nil {
			switch {
			case errors.Is(err, service.ErrTokenMissing):
				response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			case errors.Is(err, service.ErrTokenInvalid):
				response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenInvalid)
			default:
				log.Error().Err(err).Str("request_id", response.RequestID(c)).Msg("Failed to resolve identity")
				response.AbortFail(c, http.StatusInternalServerError, response.ErrInternal)
			}
			return
		}

		c.Set(ContextKeyUser, user)
		c.Set(ContextKeyClaims, claims)
		c.Next()
	}
}

// GetUser retrieves the authenticated identity from the Gin context.
func GetUser(c *gin.Context) *model.User {
	val, exists := c.Get(ContextKeyUser)
	if !exists {
		return nil
	}
	user, ok := val.(*model.User)
	if !ok {
		return nil
	}
	return user
}

// GetClaims retrieves the JWT claims from the Gin context.
func GetClaims(c *gin.Context) *service.Claims {
	val, exists := c.Get(ContextKeyClaims)
	if !exists {
		return nil
	}
	claims, ok := val.(*service.Claims)
	if !ok {
		return nil
	}
	return claims
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
