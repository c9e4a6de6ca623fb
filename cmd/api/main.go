package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/cookbookhq/backend/config"
	"github.com/cookbookhq/backend/internal/api"
	"github.com/cookbookhq/backend/internal/database"
	"github.com/cookbookhq/backend/internal/middleware"
	"github.com/cookbookhq/backend/internal/pkg/logger"
	"github.com/cookbookhq/backend/internal/router"
	"github.com/cookbookhq/backend/internal/server"
	"github.com/cookbookhq/backend/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx := context.Background()

	mongo, err := database.Connect(ctx, cfg, log)
	if err != nil {
		log.Fatal("mongodb connection failed", "error", err)
	}
	defer func() {
		if err := mongo.Close(context.Background()); err != nil {
			log.Warn("mongodb disconnect failed", "error", err)
		}
	}()

	// Redis is optional: without it the API serves uncached and unthrottled.
	var cache service.Cache
	var limiter *middleware.RateLimiter
	if cfg.RedisAddr != "" {
		redisClient, err := database.NewRedisClient(cfg, log)
		if err != nil {
			log.Warn("redis unavailable, continuing without cache", "error", err)
		} else {
			cache = database.NewRedisCache(redisClient)
			limiter = middleware.NewRateLimiter(redisClient, middleware.RateLimitConfig{
				Window: cfg.RateLimitWindow,
				Limit:  cfg.RateLimit,
			})
		}
	}

	recipeStore := database.NewRecipeStore(mongo)
	userStore := database.NewUserStore(mongo)
	categoryStore := database.NewCategoryStore(mongo)

	authService := service.NewAuthService(userStore, cfg.JWTSecret, cfg.TokenTTL)
	recipeService := service.NewRecipeService(recipeStore, userStore, categoryStore, cache, log)
	queryService := service.NewQueryService(recipeStore, userStore, categoryStore, cache, log)

	engine := router.Setup(
		api.NewAuthHandler(authService),
		api.NewRecipeHandler(recipeService, queryService),
		api.NewBookmarkHandler(recipeService, queryService),
		api.NewCategoryHandler(recipeService, queryService),
		authService,
		limiter,
		cfg.CORSOrigins,
		log,
	)

	srv := server.New(engine, net.JoinHostPort(cfg.ServerHost, cfg.ServerPort), log)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatal("server error", "error", err)
		}
	case sig := <-quit:
		log.Info("received signal", "signal", sig.String())
	}

	if err := srv.Shutdown(context.Background()); err != nil {
		log.Fatal("server shutdown error", "error", err)
	}
	log.Info("server stopped")
}
