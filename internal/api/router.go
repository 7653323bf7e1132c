package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taskhive/todo-api/internal/api/handler"
	"github.com/taskhive/todo-api/internal/api/middleware"
	"github.com/taskhive/todo-api/internal/core/ports"
)

// RateLimits carries the limiter budgets for the two route groups.
type RateLimits struct {
	API    int64
	Auth   int64
	Window time.Duration
}

// Dependencies holds everything the router needs. Mongo and Redis handles are
// optional and only feed the readiness probe; the limiter is optional and
// disables rate limiting when nil.
type Dependencies struct {
	TodoService     ports.TodoService
	AuthService     ports.AuthService
	ActivityService ports.ActivityService
	Limiter         middleware.Limiter
	RateLimits      RateLimits
	Mongo           *mongo.Database
	Redis           *redis.Client
	JWTSecret       string
	Logger          zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("todoapi"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.AuthService)
	todoHandler := handler.NewTodoHandler(deps.TodoService)
	activityHandler := handler.NewActivityHandler(deps.ActivityService)
	authMiddleware := middleware.Auth(deps.JWTSecret)

	// --- Auth routes (stricter rate limit) ---
	auth := e.Group("/auth")
	if deps.Limiter != nil {
		auth.Use(middleware.RateLimit(deps.Limiter, "auth", deps.RateLimits.Auth, deps.RateLimits.Window, deps.Logger))
	}
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// --- Authenticated API routes ---
	v1 := e.Group("/v1")
	if deps.Limiter != nil {
		v1.Use(middleware.RateLimit(deps.Limiter, "api", deps.RateLimits.API, deps.RateLimits.Window, deps.Logger))
	}
	v1.Use(authMiddleware)

	todos := v1.Group("/todos")
	todos.Use(middleware.CountTodoOperations())
	todos.GET("", todoHandler.List)
	todos.POST("", todoHandler.Create)
	todos.PUT("/:id", todoHandler.Update)
	todos.POST("/:id/share", todoHandler.Share)
	todos.DELETE("/:id", todoHandler.Delete)

	v1.GET("/activity", activityHandler.Feed)

	// --- Operational endpoints (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
