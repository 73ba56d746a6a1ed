package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stemsi/academy-backoffice/internal/config"
	"github.com/stemsi/academy-backoffice/internal/handler"
	"github.com/stemsi/academy-backoffice/internal/metrics"
	"github.com/stemsi/academy-backoffice/internal/middleware"
	"github.com/stemsi/academy-backoffice/internal/model"
	"github.com/stemsi/academy-backoffice/internal/resource"
	"github.com/stemsi/academy-backoffice/internal/response"
	"github.com/stemsi/academy-backoffice/internal/service"
	"github.com/stemsi/academy-backoffice/internal/validator"
)

// Deps is everything the router wires into handlers.
type Deps struct {
	Config    *config.Config
	Log       zerolog.Logger
	Registry  *resource.Registry
	Auth      *service.AuthService
	Users     *service.UserService
	Resources *service.ResourceService
	Limiter   middleware.Limiter
	Metrics   *metrics.Metrics
	Redis     *redis.Client // optional, only probed by /health
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(d Deps) *gin.Engine {
	gin.SetMode(d.Config.GinMode)
	validator.Setup()

	router := gin.New()
	router.Use(
		gin.LoggerWithConfig(gin.LoggerConfig{SkipPaths: []string{"/health", "/metrics"}}),
		gin.Recovery(),
	)

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(d.Config.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = d.Config.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	router.Use(response.RequestIDMiddleware())
	router.Use(middleware.Metrics(d.Metrics))
	router.Use(middleware.Brotli())

	router.NoRoute(func(c *gin.Context) {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	})

	// ─── Operational ───────────────────────────────────────────────────
	health := handler.NewHealthHandler(d.Resources, d.Redis, d.Log)
	router.GET("/health", health.Health)
	router.GET("/metrics", gin.WrapH(d.Metrics.Handler()))

	requireAuth := middleware.RequireAuth(d.Auth, d.Log)
	rbac := middleware.NewRBAC(d.Metrics)

	// ─── 1. Auth Group ─────────────────────────────────────────────────
	authHandler := handler.NewAuthHandler(d.Auth, d.Metrics, d.Log)
	userHandler := handler.NewUserHandler(d.Users, d.Log)

	auth := router.Group("/auth")
	{
		auth.POST("/login", middleware.RateLimit(d.Limiter, "login", d.Metrics, d.Log), authHandler.Login)
		auth.GET("/me", requireAuth, authHandler.Me)

		requireAdmin := rbac.RequireRole(model.RoleAdmin)
		admin := auth.Group("", requireAuth, requireAdmin)
		admin.POST("/register", authHandler.Register)
		admin.GET("/users", userHandler.List)
		admin.PUT("/users/:id", userHandler.Update)

		auth.DELETE("/users/:id", requireAuth, userHandler.RejectSelfDelete, requireAdmin, userHandler.Delete)
	}

	// ─── 2. Resource Groups ────────────────────────────────────────────
	for _, schema := range d.Registry.All() {
		h := handler.NewResourceHandler(d.Resources, schema, d.Log)
		g := router.Group("/"+string(schema.Name), requireAuth, rbac.RequirePermission(schema.Name))
		{
			g.POST("", h.Create)
			g.GET("", h.List)
			g.GET("/:id", h.Get)
			g.PATCH("/:id", h.Update)
			g.DELETE("/:id", h.Delete)
		}
	}

	// ─── 3. Reports ────────────────────────────────────────────────────
	reports := handler.NewReportHandler(d.Resources, d.Log)
	router.GET("/reports/summary", requireAuth, rbac.RequirePermission(model.ResourceReports), reports.Summary)

	return router
}
