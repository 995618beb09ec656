// Command server runs the RoadWatch API: the HTTP backend for the
// crowdsourced road-damage reporting application. It authenticates
// callers with stateless bearer credentials, enforces per-resource
// access policy, and persists reports in MongoDB.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/roadwatch/roadwatch-api/internal/api"
	mongodb "github.com/roadwatch/roadwatch-api/internal/infrastructure/db/mongo"
	redisdb "github.com/roadwatch/roadwatch-api/internal/infrastructure/db/redis"
	"github.com/roadwatch/roadwatch-api/internal/pkg/config"
	"github.com/roadwatch/roadwatch-api/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

// @title        RoadWatch API
// @version      1.0
// @description  Backend for the crowdsourced road-damage reporting application.
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the credential.
func main() {
	// Optional in development; real deployments set the environment.
	_ = godotenv.Load()

	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	ctx := context.Background()

	client, db, err := mongodb.Connect(ctx, cfg.Mongo)
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	if err := mongodb.NewAccountRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("account index creation failed")
	}
	if err := mongodb.NewReportRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("report index creation failed")
	}

	// The list cache is best-effort: a Redis outage degrades list reads
	// instead of preventing boot.
	rdb, err := redisdb.Connect(ctx, cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, starting without report list cache")
		rdb = nil
	} else {
		defer func() {
			_ = rdb.Close()
		}()
	}

	e := api.NewRouter(db, rdb, cfg, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
