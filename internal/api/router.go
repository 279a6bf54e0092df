package api

import (
	"sync"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"github.com/uptrace/bun"

	_ "github.com/headcount/account-service/docs"
	"github.com/headcount/account-service/internal/api/handler"
	"github.com/headcount/account-service/internal/api/middleware"
	"github.com/headcount/account-service/internal/core/ports"
	"github.com/headcount/account-service/internal/core/service"
	"github.com/headcount/account-service/internal/infrastructure/db/postgres"
	"github.com/headcount/account-service/internal/pkg/token"
)

// The echoprometheus middleware registers its collectors in the default
// registry when built, and a second registration panics. The middleware is
// built once and shared by every router in the process.
var (
	promOnce       sync.Once
	promMiddleware echo.MiddlewareFunc
)

func prometheusMiddleware() echo.MiddlewareFunc {
	promOnce.Do(func() {
		promMiddleware = echoprometheus.NewMiddleware("accounts")
	})
	return promMiddleware
}

// NewRouter builds and returns the Echo instance with all routes registered.
// The audit recorder is constructed by the caller because its worker pool is
// tied to the process lifecycle, not the router's.
func NewRouter(db *bun.DB, codec *token.Codec, audit ports.AuditRecorder, env string, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.CORS())
	e.Use(prometheusMiddleware())

	// --- Dependencies ---
	userRepo := postgres.NewUserRepository(db)
	auditRepo := postgres.NewAuditRepository(db)
	authService := service.NewAuthService(userRepo, codec, audit, log)
	userService := service.NewUserService(userRepo, audit, log)

	authHandler := handler.NewAuthHandler(authService)
	adminHandler := handler.NewAdminHandler(userService, auditRepo)
	healthHandler := handler.NewHealthHandler(db)

	gate := middleware.Auth(codec, userRepo)

	// --- Auth routes ---
	v1 := e.Group("/api/v1")
	v1.POST("/auth/register", authHandler.Register)
	v1.POST("/auth/login", authHandler.Login)
	v1.GET("/auth/profile", authHandler.Profile, gate)

	// --- Admin routes ---
	admin := v1.Group("/admin", gate, middleware.RequireAdmin())
	admin.GET("/test", adminHandler.Test)
	admin.GET("/users", adminHandler.ListUsers)
	admin.PATCH("/users/:id", adminHandler.UpdateUser)
	admin.DELETE("/users/:id", adminHandler.DeleteUser)
	admin.GET("/users/:id/audit", adminHandler.UserAudit)

	// --- Probes and operational endpoints (no auth required) ---
	e.GET("/", healthHandler.Root)
	e.GET("/ping", healthHandler.Ping)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	if env == "development" {
		e.GET("/swagger/*", echoswagger.WrapHandler)
	}

	return e
}
