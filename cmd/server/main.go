package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stemsi/academy-backoffice/internal/config"
	"github.com/stemsi/academy-backoffice/internal/database"
	"github.com/stemsi/academy-backoffice/internal/logger"
	"github.com/stemsi/academy-backoffice/internal/metrics"
	"github.com/stemsi/academy-backoffice/internal/middleware"
	"github.com/stemsi/academy-backoffice/internal/resource"
	"github.com/stemsi/academy-backoffice/internal/router"
	"github.com/stemsi/academy-backoffice/internal/service"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("store", cfg.StoreDriver).
		Str("log_level", cfg.LogLevel).
		Msg("Starting Academy Back-office")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	registry := resource.Default()

	// ─── Open Stores ───────────────────────────────────────────────────
	stores, err := database.OpenStores(ctx, cfg, registry, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open stores")
	}
	defer stores.Close()

	// ─── Connect to Redis (optional) ───────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	if rdb != nil {
		defer rdb.Close()
	}

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg, stores.Users, log)
	userService := service.NewUserService(stores.Users, authService, log)
	resourceService := service.NewResourceService(stores.Docs, registry, log)

	bootstrapAdmin(ctx, cfg, authService, log)

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(router.Deps{
		Config:    cfg,
		Log:       log,
		Registry:  registry,
		Auth:      authService,
		Users:     userService,
		Resources: resourceService,
		Limiter:   loginLimiter(cfg, rdb),
		Metrics:   metrics.New(),
		Redis:     rdb,
	})

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("Shutdown complete")
}

// bootstrapAdmin creates the first admin from BOOTSTRAP_ADMIN_* when the
// credential store is still empty.
func bootstrapAdmin(ctx context.Context, cfg *config.Config, auth *service.AuthService, log zerolog.Logger) {
	if cfg.BootstrapAdminEmail == "" || cfg.BootstrapAdminPassword == "" {
		return
	}

	user, err := auth.Bootstrap(ctx, cfg.BootstrapAdminName, cfg.BootstrapAdminEmail, cfg.BootstrapAdminPassword)
	switch {
	case errors.Is(err, service.ErrAlreadyBootstrapped):
		log.Debug().Msg("Credential store not empty, skipping admin bootstrap")
	case err != nil:
		log.Fatal().Err(err).Msg("Failed to bootstrap admin")
	default:
		log.Info().Str("user_id", user.ID).Str("email", user.Email).Msg("Bootstrap admin created")
	}
}

func loginLimiter(cfg *config.Config, rdb *redis.Client) middleware.Limiter {
	if rdb != nil {
		return middleware.NewRedisLimiter(rdb, cfg.LoginRateLimit, time.Minute)
	}
	return middleware.NewMemoryLimiter(cfg.LoginRateLimit, time.Minute)
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
