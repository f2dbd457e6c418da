package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KiwiKetil/room-scheduler-api/internal/api"
	"github.com/KiwiKetil/room-scheduler-api/internal/core/service"
	"github.com/KiwiKetil/room-scheduler-api/internal/infrastructure/config"
	mongodb "github.com/KiwiKetil/room-scheduler-api/internal/infrastructure/db/mongo"
	redisdb "github.com/KiwiKetil/room-scheduler-api/internal/infrastructure/db/redis"
	"github.com/KiwiKetil/room-scheduler-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.Env == "development")

	tokenCfg := service.TokenConfig{
		Key:      cfg.JWT.Key,
		Issuer:   cfg.JWT.Issuer,
		Audience: cfg.JWT.Audience,
	}
	// Refuse to start with incomplete signing settings instead of failing
	// on the first login.
	if err := tokenCfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid token configuration")
	}

	ctx := context.Background()

	mongoClient, db, err := mongodb.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	rdb, err := redisdb.Connect(ctx, cfg.Redis.Addr, cfg.Redis.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		_ = rdb.Close()
	}()

	e := api.NewRouter(db, rdb, tokenCfg, log)

	go func() {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("starting room scheduler api")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
