package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/base-platform/account-api/internal/api/handler"
	"github.com/base-platform/account-api/internal/api/middleware"
	"github.com/base-platform/account-api/internal/core/domain"
	"github.com/base-platform/account-api/internal/core/service"
	"github.com/base-platform/account-api/internal/infrastructure/config"
	mongodb "github.com/base-platform/account-api/internal/infrastructure/db/mongo"
	redisdb "github.com/base-platform/account-api/internal/infrastructure/db/redis"
	"github.com/base-platform/account-api/internal/infrastructure/http/handlers"
	"github.com/base-platform/account-api/internal/token"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("accounts"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	codec := token.NewCodec(cfg.JWTSecret, cfg.TokenTTL)
	tracker := service.NewActivityTracker(userRepo, service.ActivityTrackerConfig{
		InactivityTimeout: cfg.InactivityTimeout,
	})
	denylist := redisdb.NewDenylist(rdb)
	authService := service.NewAuthService(userRepo, codec, tracker, denylist, log)
	userService := service.NewUserService(userRepo)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService, authService, tracker)

	// Every request passes Authenticate so each valid bearer token refreshes
	// the caller's activity entry; the per-route Require middleware decides
	// whether an unauthenticated request is allowed through.
	e.Use(middleware.Authenticate(codec, tracker, denylist, log))
	authed := middleware.Require(domain.RoleUser)
	adminOnly := middleware.Require(domain.RoleAdmin)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout)

	// --- User routes ---
	e.GET("/user/me", userHandler.Me, authed)
	e.PUT("/user/me", userHandler.UpdateMe, authed)
	e.GET("/user/all", userHandler.All, adminOnly)
	e.POST("/user/register", userHandler.Register, adminOnly)
	e.GET("/user/active", userHandler.Active, adminOnly)
	e.GET("/user/active/count", userHandler.ActiveCount, adminOnly)
	e.PUT("/user/:id", userHandler.Update, adminOnly)
	e.DELETE("/user/:id", userHandler.Delete, adminOnly)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
