package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/academy-backoffice/internal/response"
	"github.com/stemsi/academy-backoffice/internal/service"
)

// ReportHandler serves the reports resource.
type ReportHandler struct {
	service *service.ResourceService
	log     zerolog.Logger
}

func NewReportHandler(svc *service.ResourceService, log zerolog.Logger) *ReportHandler {
	return &ReportHandler{
		service: svc,
		log:     log.With().Str("component", "report_handler").Logger(),
	}
}

// Summary handles GET /reports/summary: document count per resource.
func (h *ReportHandler) Summary(c *gin.Context) {
	counts, err := h.service.Summary(c.Request.Context())
	if err != nil {
		fail(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"counts": counts})
}
