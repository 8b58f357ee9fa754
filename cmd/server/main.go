package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/azimbek-dev/converter-api/config"
	"github.com/azimbek-dev/converter-api/internal/email"
	"github.com/azimbek-dev/converter-api/internal/health"
	"github.com/azimbek-dev/converter-api/internal/infrastructure/postgres"
	ctxlog "github.com/azimbek-dev/converter-api/internal/log"
	"github.com/azimbek-dev/converter-api/internal/metrics"
	"github.com/azimbek-dev/converter-api/internal/password"
	"github.com/azimbek-dev/converter-api/internal/token"
	httptransport "github.com/azimbek-dev/converter-api/internal/transport/http"
	"github.com/azimbek-dev/converter-api/internal/transport/http/handler"
	"github.com/azimbek-dev/converter-api/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := newLogger(cfg.Env, cfg.SlogLevel())

	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	keys, err := token.LoadKeyPair(cfg.JWTPrivateKeyBase64, cfg.JWTPublicKeyBase64)
	if err != nil {
		log.Fatalf("signing keys: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	if err := postgres.Migrate(ctx, cfg.DatabaseURL); err != nil {
		stop()
		log.Fatalf("migrate: %v", err)
	}

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		stop()
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	hasher := password.NewHasher(cfg.BcryptCost)
	issuer := token.NewIssuer(keys.Private, cfg.AccessTokenTTL())
	validator := token.NewValidator(keys.Public, cfg.ClockSkew())
	emailSender := email.NewSender(cfg.Env, cfg.ResendAPIKey, cfg.ResendFrom, logger)

	authUsecase := usecase.NewAuthUsecase(userRepo, hasher, issuer, emailSender, logger)
	authHandler := handler.NewAuthHandler(authUsecase, logger)
	userHandler := handler.NewUserHandler(authUsecase, logger)

	metrics.Register()
	checker := health.NewChecker(pool, logger, prometheus.DefaultRegisterer)

	srv := http.Server{
		Addr:    ":" + cfg.Port,
		Handler: httptransport.NewRouter(logger, authHandler, userHandler, validator),
	}

	metricsSrv := metrics.NewServer(":"+cfg.MetricsPort, checker)

	go func() {
		logger.Info("server started", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	go func() {
		logger.Info("metrics server started", "port", cfg.MetricsPort)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "error", err)
		}
	}()

	<-ctx.Done()
	stop()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown", "error", err)
	}
}

func newLogger(env string, level slog.Level) *slog.Logger {
	var inner slog.Handler
	if env == "local" {
		inner = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	} else {
		inner = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})
	}
	return slog.New(ctxlog.NewContextHandler(inner))
}
