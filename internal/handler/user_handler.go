package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/academy-backoffice/internal/middleware"
	"github.com/stemsi/academy-backoffice/internal/model"
	"github.com/stemsi/academy-backoffice/internal/response"
	"github.com/stemsi/academy-backoffice/internal/service"
	"github.com/stemsi/academy-backoffice/internal/validator"
)

// UserHandler serves identity management. Every route is admin only,
// except that any caller deleting their own account gets the self-delete
// error instead of a role failure.
type UserHandler struct {
	userService *service.UserService
	log         zerolog.Logger
}

func NewUserHandler(userService *service.UserService, log zerolog.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		log:         log.With().Str("component", "user_handler").Logger(),
	}
}

// List handles GET /auth/users.
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userService.List(c.Request.Context())
	if err != nil {
		fail(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, users)
}

// Update handles PUT /auth/users/:id.
func (h *UserHandler) Update(c *gin.Context) {
	var req model.UpdateUserRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	user, err := h.userService.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		fail(c, h.log, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "User updated successfully",
		"user":    user,
	})
}

// RejectSelfDelete runs ahead of the role gate on DELETE /auth/users/:id so
// the self-delete rule holds for every role.
func (h *UserHandler) RejectSelfDelete(c *gin.Context) {
	caller := middleware.GetUser(c)
	if caller != nil && caller.ID == c.Param("id") {
		response.AbortFail(c, http.StatusBadRequest, response.ErrCannotDeleteSelf)
		return
	}
	c.Next()
}

// Delete handles DELETE /auth/users/:id.
func (h *UserHandler) Delete(c *gin.Context) {
	caller := middleware.GetUser(c)
	if caller == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	if err := h.userService.Delete(c.Request.Context(), caller.ID, c.Param("id")); err != nil {
		fail(c, h.log, err)
		return
	}
	response.Message(c, http.StatusOK, "User deleted successfully")
}
