// @title           Taskhive Todo API
// @version         1.0
// @description     Collaborative todo API with sharing, filtering, and an activity feed.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/taskhive/todo-api/docs"
	"github.com/taskhive/todo-api/internal/api"
	"github.com/taskhive/todo-api/internal/core/ports"
	"github.com/taskhive/todo-api/internal/core/service"
	"github.com/taskhive/todo-api/internal/infrastructure/db/memory"
	mongodb "github.com/taskhive/todo-api/internal/infrastructure/db/mongo"
	redisdb "github.com/taskhive/todo-api/internal/infrastructure/db/redis"
	"github.com/taskhive/todo-api/internal/infrastructure/queue"
	"github.com/taskhive/todo-api/internal/pkg/config"
	"github.com/taskhive/todo-api/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deps := api.Dependencies{
		JWTSecret: cfg.JWTSecret,
		Logger:    log,
		RateLimits: api.RateLimits{
			API:    cfg.RateLimit.APILimit,
			Auth:   cfg.RateLimit.AuthLimit,
			Window: time.Duration(cfg.RateLimit.WindowSeconds) * time.Second,
		},
	}

	// --- Storage ---
	var todoRepo ports.TodoRepository
	var userRepo ports.UserRepository
	var activityRepo ports.ActivityRepository

	switch cfg.Storage {
	case "memory":
		log.Warn().Msg("using in-memory storage, data is lost on restart")
		todoRepo = memory.NewTodoRepository()
		userRepo = memory.NewUserRepository()
		activityRepo = memory.NewActivityRepository()
	default:
		client, db, err := mongodb.Connect(ctx, mongodb.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to mongodb")
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = client.Disconnect(shutdownCtx)
		}()

		todos := mongodb.NewTodoRepository(db)
		users := mongodb.NewUserRepository(db)
		activity := mongodb.NewActivityRepository(db)
		for _, idx := range []interface{ EnsureIndexes(context.Context) error }{todos, users, activity} {
			if err := idx.EnsureIndexes(ctx); err != nil {
				log.Fatal().Err(err).Msg("failed to create indexes")
			}
		}

		todoRepo, userRepo, activityRepo = todos, users, activity
		deps.Mongo = db
	}

	// --- Redis (rate limiting); optional, the API degrades without it ---
	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, rate limiting disabled")
	} else {
		defer rdb.Close()
		deps.Redis = rdb
		deps.Limiter = redisdb.NewRateLimiter(rdb)
	}

	// --- Services ---
	activityService := service.NewActivityService(activityRepo, log)
	dispatcher := queue.NewDispatcher(cfg.Activity.Workers, activityService, log)
	dispatcher.Start(ctx)

	deps.TodoService = service.NewTodoService(todoRepo, dispatcher, log)
	deps.AuthService = service.NewAuthService(userRepo, cfg.JWTSecret, 24*time.Hour)
	deps.ActivityService = activityService

	e := api.NewRouter(deps)

	go func() {
		log.Info().Str("port", cfg.Port).Str("storage", cfg.Storage).Msg("starting http server")
		if err := e.Start(":" + cfg.Port); err != nil {
			log.Info().Err(err).Msg("http server stopped")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
