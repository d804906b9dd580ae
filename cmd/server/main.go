package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	authservice "account-credential-service/internal/auth/service"
	"account-credential-service/internal/config"
	"account-credential-service/internal/db"
	"account-credential-service/internal/notify"
	"account-credential-service/internal/security"
	"account-credential-service/internal/server"
	"account-credential-service/internal/telemetry"
	"account-credential-service/internal/telemetry/otel"
	"account-credential-service/internal/user/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	ctx := context.Background()

	providers, err := otel.NewProviders(ctx, cfg.OTLPEndpoint, "account-credential-service", false)
	if err != nil {
		log.Fatalf("telemetry: %v", err)
	}
	providers.SetGlobal()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = providers.Shutdown(shutdownCtx)
	}()

	database, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer database.Close()

	users := repository.NewPostgresRepository(database)
	mailer := notify.NewEmailNotifier(cfg, logger)
	events := otel.NewEventEmitter(providers.LoggerProvider)
	authSvc := authservice.NewAuthService(
		users,
		security.NewHasher(cfg.BcryptCost),
		security.NewResetTokenManager(cfg.ResetTokenLifetime()),
		security.NewTokenProvider([]byte(cfg.JWTSecret), cfg.JWTIssuer, cfg.JWTLifetime()),
		mailer,
		events,
		logger,
	)

	srv := server.New(cfg, logger, authSvc)

	go func() {
		if err := srv.Run(); err != nil {
			log.Fatalf("serve: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", slog.String("error", err.Error()))
	}
	logger.Info("http server stopped")

	// Give in-flight async event emits time to reach the exporter before
	// the deferred provider shutdown flushes it.
	time.Sleep(telemetry.ShutdownDrainDuration)
}
