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

	"github.com/dbfpn/account-service/config"
	"github.com/dbfpn/account-service/internal/email"
	"github.com/dbfpn/account-service/internal/health"
	"github.com/dbfpn/account-service/internal/infrastructure/postgres"
	ctxlog "github.com/dbfpn/account-service/internal/log"
	"github.com/dbfpn/account-service/internal/metrics"
	httptransport "github.com/dbfpn/account-service/internal/transport/http"
	"github.com/dbfpn/account-service/internal/transport/http/handler"
	"github.com/dbfpn/account-service/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	if err := postgres.Migrate(cfg.DatabaseURL); err != nil {
		stop()
		log.Fatalf("migrations: %v", err)
	}

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		stop()
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	rdb := newRedis(cfg.RedisURL, logger)
	if rdb != nil {
		defer rdb.Close()
	}

	emailSender := email.NewSender(cfg.Env, cfg.ResendAPIKey, cfg.ResendFrom, logger)

	userRepo := postgres.NewUserRepository(pool)
	registrationRepo := postgres.NewRegistrationRepository(pool)

	registrationUsecase := usecase.NewRegistrationUsecase(userRepo, registrationRepo, emailSender)
	authUsecase := usecase.NewAuthUsecase(userRepo, emailSender, []byte(cfg.JWTSecret), cfg.MagicLinkBase)
	profileUsecase := usecase.NewProfileUsecase(userRepo)

	registrationHandler := handler.NewRegistrationHandler(registrationUsecase, authUsecase, logger)
	authHandler := handler.NewAuthHandler(authUsecase, logger)
	profileHandler := handler.NewProfileHandler(profileUsecase, logger)

	metrics.Register()
	checker := health.NewChecker(pool, redisPinger(rdb), logger, prometheus.DefaultRegisterer)

	srv := http.Server{
		Addr: ":" + cfg.Port,
		Handler: httptransport.NewRouter(
			logger, registrationHandler, profileHandler, authHandler, rdb, []byte(cfg.JWTSecret),
		),
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

// newRedis returns nil when no REDIS_URL is configured; the rate
// limiter and health check both treat nil as "not in use".
func newRedis(url string, logger *slog.Logger) *redis.Client {
	if url == "" {
		logger.Warn("REDIS_URL not set, rate limiting disabled")
		return nil
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	return redis.NewClient(opts)
}

func redisPinger(rdb *redis.Client) health.RedisPinger {
	if rdb == nil {
		return nil
	}
	return func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	}
}
