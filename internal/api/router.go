package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/guardlink/portal-system/docs"
	"github.com/guardlink/portal-system/internal/api/handler"
	"github.com/guardlink/portal-system/internal/api/middleware"
	"github.com/guardlink/portal-system/internal/core/domain"
	"github.com/guardlink/portal-system/internal/core/service"
	"github.com/guardlink/portal-system/internal/infrastructure/config"
	mongostore "github.com/guardlink/portal-system/internal/infrastructure/db/mongo"
	redisstore "github.com/guardlink/portal-system/internal/infrastructure/db/redis"
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
	e.Use(echoprometheus.NewMiddleware("portal"))

	// --- Dependencies ---
	userRepo := mongostore.NewUserRepository(db)
	requestRepo := mongostore.NewRequestRepository(db)
	tokenService := service.NewTokenService(cfg.JWTSecret, service.DefaultSessionTTL, log)
	authService := service.NewAuthService(userRepo, tokenService, log)
	requestService := service.NewRequestService(requestRepo, log)
	throttle := redisstore.NewLoginThrottle(rdb, cfg.LoginRateLimit, cfg.LoginRateWindow)

	authHandler := handler.NewAuthHandler(authService, tokenService.TTL())
	requestHandler := handler.NewRequestHandler(requestService)
	pageHandler := handler.NewPageHandler()

	// --- Route guard (pages only; /api, probes, metrics and assets are exempt) ---
	e.Use(middleware.Guard(tokenService))

	// --- Portal pages ---
	e.GET("/", pageHandler.Home)
	e.GET("/auth", pageHandler.SignIn)
	e.GET("/admin", pageHandler.AdminPortal)
	e.GET("/client", pageHandler.ClientPortal)
	e.Static("/static", "web/static")

	// --- Auth API ---
	auth := e.Group("/api/auth")
	auth.POST("/login", authHandler.Login, middleware.LoginThrottle(throttle, log))
	auth.POST("/logout", authHandler.Logout)
	auth.GET("/me", authHandler.Me)

	// --- Service request API ---
	requests := e.Group("/api/requests", middleware.Session(tokenService))
	requests.POST("", requestHandler.Create, middleware.RBAC(domain.RoleClient))
	requests.GET("", requestHandler.List)
	requests.GET("/:id", requestHandler.Get)
	requests.PATCH("/:id/status", requestHandler.UpdateStatus, middleware.RBAC(domain.RoleAdmin))

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
