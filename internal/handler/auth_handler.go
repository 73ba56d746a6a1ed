package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/academy-backoffice/internal/authz"
	"github.com/stemsi/academy-backoffice/internal/metrics"
	"github.com/stemsi/academy-backoffice/internal/middleware"
	"github.com/stemsi/academy-backoffice/internal/model"
	"github.com/stemsi/academy-backoffice/internal/response"
	"github.com/stemsi/academy-backoffice/internal/service"
	"github.com/stemsi/academy-backoffice/internal/validator"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService *service.AuthService
	metrics     *metrics.Metrics
	log         zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *service.AuthService, m *metrics.Metrics, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		metrics:     m,
		log:         log.With().Str("component", "auth_handler").Logger(),
	}
}

// Login godoc
// POST /auth/login
// Validates email + password and returns a session token with the user.
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	token, user, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			h.countLogin("failure")
		}
		fail(c, h.log, err)
		return
	}

	h.countLogin("success")
	response.Success(c, http.StatusOK, model.LoginResponse{Token: token, User: user})
}

// Register godoc
// POST /auth/register
// Creates a new admin or moderator. Admin only.
func (h *AuthHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	user, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		fail(c, h.log, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"user":    user,
	})
}

// Me godoc
// GET /auth/me
// Returns the current identity and its per-resource capabilities.
func (h *AuthHandler) Me(c *gin.Context) {
	user := middleware.GetUser(c)
	if user == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"user":         user,
		"capabilities": authz.Capabilities(user),
	})
}

func (h *AuthHandler) countLogin(result string) {
	if h.metrics != nil {
		h.metrics.LoginAttempts.WithLabelValues(result).Inc()
	}
}
