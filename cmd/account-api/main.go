// Command account-api runs the user-account and authentication service.
//
// @title           Account API
// @version         1.0
// @description     User registration, authentication, session activity tracking and role-gated user CRUD.
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/base-platform/account-api/docs"
	"github.com/base-platform/account-api/internal/api"
	"github.com/base-platform/account-api/internal/infrastructure/config"
	mongodb "github.com/base-platform/account-api/internal/infrastructure/db/mongo"
	redisdb "github.com/base-platform/account-api/internal/infrastructure/db/redis"
	"github.com/base-platform/account-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	userRepo := mongodb.NewUserRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}
	if err := userRepo.SeedAdmin(ctx, cfg.Admin.Username, cfg.Admin.Password, cfg.Admin.Email, log); err != nil {
		log.Fatal().Err(err).Msg("admin seeding failed")
	}

	e := api.NewRouter(db, rdb, cfg, log)

	go func() {
		log.Info().Str("port", cfg.Port).Msg("starting http server")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
