package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/headcount/account-service/internal/api"
	"github.com/headcount/account-service/internal/core/service"
	"github.com/headcount/account-service/internal/infrastructure/config"
	"github.com/headcount/account-service/internal/infrastructure/db/postgres"
	"github.com/headcount/account-service/internal/infrastructure/queue"
	"github.com/headcount/account-service/internal/pkg/token"
	"github.com/headcount/account-service/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Database ---
	db, err := postgres.Connect(ctx, postgres.Config{DSN: cfg.Database.DSN})
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	defer db.Close()

	if err := postgres.Migrate(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}

	userRepo := postgres.NewUserRepository(db)
	if err := postgres.SeedAdmin(ctx, userRepo, postgres.AdminSeed{
		Username: cfg.Admin.Username,
		Email:    cfg.Admin.Email,
		Password: cfg.Admin.Password,
	}, log); err != nil {
		log.Fatal().Err(err).Msg("seeding failed")
	}

	// --- Token codec ---
	codec, err := token.NewCodec(cfg.JWT.Secret, cfg.JWT.Algorithm, cfg.JWT.TTL)
	if err != nil {
		log.Fatal().Err(err).Msg("token codec configuration invalid")
	}

	// --- Audit pipeline ---
	auditService := service.NewAuditService(postgres.NewAuditRepository(db), log)
	dispatcher := queue.NewDispatcher(cfg.Audit.Workers, auditService, log)
	dispatcher.Start(ctx)

	// --- HTTP server ---
	e := api.NewRouter(db, codec, dispatcher, cfg.Env, log)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("account service started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
