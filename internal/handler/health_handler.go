package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stemsi/academy-backoffice/internal/service"
)

const healthTimeout = 2 * time.Second

// HealthHandler reports store and Redis reachability.
type HealthHandler struct {
	resources *service.ResourceService
	rdb       *redis.Client
	log       zerolog.Logger
}

// NewHealthHandler creates a HealthHandler. rdb may be nil when no Redis
// is configured.
func NewHealthHandler(resources *service.ResourceService, rdb *redis.Client, log zerolog.Logger) *HealthHandler {
	return &HealthHandler{
		resources: resources,
		rdb:       rdb,
		log:       log.With().Str("component", "health_handler").Logger(),
	}
}

// Health handles GET /health.
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	checks := gin.H{"store": "ok"}
	status := http.StatusOK

	if err := h.resources.Ping(ctx); err != nil {
		h.log.Warn().Err(err).Msg("Store ping failed")
		checks["store"] = "unavailable"
		status = http.StatusServiceUnavailable
	}

	if h.rdb != nil {
		checks["redis"] = "ok"
		if err := h.rdb.Ping(ctx).Err(); err != nil {
			h.log.Warn().Err(err).Msg("Redis ping failed")
			checks["redis"] = "unavailable"
			status = http.StatusServiceUnavailable
		}
	}

	overall := "ok"
	if status != http.StatusOK {
		overall = "degraded"
	}
	c.JSON(status, gin.H{"status": overall, "checks": checks})
}
