package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/academy-backoffice/internal/authz"
	"github.com/stemsi/academy-backoffice/internal/resource"
	"github.com/stemsi/academy-backoffice/internal/response"
	"github.com/stemsi/academy-backoffice/internal/service"
)

// fail renders err with the status of its kind. Anything unrecognised is
// logged with the request id and surfaces as a bare 500.
func fail(c *gin.Context, log zerolog.Logger, err error) {
	var verr *resource.ValidationError
	if errors.As(err, &verr) {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, verr.Fields)
		return
	}

	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidCredentials)
	case errors.Is(err, service.ErrMissingFields),
		errors.Is(err, service.ErrInvalidRole):
		response.Fail(c, http.StatusBadRequest, response.ErrValidation)
	case errors.Is(err, service.ErrInvalidGrant):
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation,
			map[string]string{"permissions": err.Error()})
	case errors.Is(err, service.ErrPermissionsRequired):
		response.Fail(c, http.StatusBadRequest, response.ErrPermissionsRequired)
	case errors.Is(err, service.ErrCannotDeleteSelf):
		response.Fail(c, http.StatusBadRequest, response.ErrCannotDeleteSelf)
	case errors.Is(err, service.ErrEmailTaken):
		response.Fail(c, http.StatusConflict, response.ErrEmailExists)
	case errors.Is(err, service.ErrDocumentConflict):
		response.Fail(c, http.StatusConflict, response.ErrConflict)
	case errors.Is(err, service.ErrUserNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrUserNotFound)
	case errors.Is(err, service.ErrDocumentNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, service.ErrTokenMissing):
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
	case errors.Is(err, service.ErrTokenInvalid):
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenInvalid)
	case errors.Is(err, authz.ErrForbidden):
		response.Fail(c, http.StatusForbidden, response.ErrForbidden)
	default:
		log.Error().
			Err(err).
			Str("request_id", response.RequestID(c)).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Msg("Request failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
