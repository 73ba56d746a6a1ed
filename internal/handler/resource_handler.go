package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/academy-backoffice/internal/middleware"
	"github.com/stemsi/academy-backoffice/internal/resource"
	"github.com/stemsi/academy-backoffice/internal/response"
	"github.com/stemsi/academy-backoffice/internal/service"
)

// ResourceHandler serves the five CRUD routes of one resource. The schema
// is the only thing that differs between instances.
type ResourceHandler struct {
	service *service.ResourceService
	schema  *resource.Schema
	log     zerolog.Logger
}

func NewResourceHandler(svc *service.ResourceService, schema *resource.Schema, log zerolog.Logger) *ResourceHandler {
	return &ResourceHandler{
		service: svc,
		schema:  schema,
		log:     log.With().Str("component", "resource_handler").Str("resource", string(schema.Name)).Logger(),
	}
}

// Create handles POST /{resource}.
func (h *ResourceHandler) Create(c *gin.Context) {
	payload, ok := h.bindPayload(c)
	if !ok {
		return
	}

	callerID := ""
	if u := middleware.GetUser(c); u != nil {
		callerID = u.ID
	}

	doc, err := h.service.Create(c.Request.Context(), h.schema, callerID, payload)
	if err != nil {
		fail(c, h.log, err)
		return
	}
	response.Success(c, http.StatusCreated, doc)
}

// List handles GET /{resource}. Every query parameter is an equality filter.
func (h *ResourceHandler) List(c *gin.Context) {
	filter := make(map[string]string)
	for key, values := range c.Request.URL.Query() {
		if len(values) > 0 {
			filter[key] = values[0]
		}
	}

	docs, err := h.service.List(c.Request.Context(), h.schema, filter)
	if err != nil {
		fail(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, docs)
}

// Get handles GET /{resource}/:id.
func (h *ResourceHandler) Get(c *gin.Context) {
	doc, err := h.service.Get(c.Request.Context(), h.schema, c.Param("id"))
	if err != nil {
		fail(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, doc)
}

// Update handles PATCH /{resource}/:id.
func (h *ResourceHandler) Update(c *gin.Context) {
	payload, ok := h.bindPayload(c)
	if !ok {
		return
	}

	doc, err := h.service.Update(c.Request.Context(), h.schema, c.Param("id"), payload)
	if err != nil {
		fail(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, doc)
}

// Delete handles DELETE /{resource}/:id.
func (h *ResourceHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), h.schema, c.Param("id")); err != nil {
		fail(c, h.log, err)
		return
	}
	response.Message(c, http.StatusOK, "Deleted successfully")
}

func (h *ResourceHandler) bindPayload(c *gin.Context) (map[string]interface{}, bool) {
	var payload map[string]interface{}
	if err := c.ShouldBindJSON(&payload); err != nil || payload == nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return nil, false
	}
	return payload, true
}
