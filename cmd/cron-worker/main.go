package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/juancamilo2341431/netrix-backend/internal/accounts"
	"github.com/juancamilo2341431/netrix-backend/internal/cron"
	"github.com/juancamilo2341431/netrix-backend/internal/payments"
	"github.com/juancamilo2341431/netrix-backend/internal/reconciler"
	"github.com/juancamilo2341431/netrix-backend/internal/rentals"
	"github.com/juancamilo2341431/netrix-backend/internal/sweep"
	"github.com/juancamilo2341431/netrix-backend/pkg/bold"
	"github.com/juancamilo2341431/netrix-backend/pkg/config"
	"github.com/juancamilo2341431/netrix-backend/pkg/db"
	"github.com/juancamilo2341431/netrix-backend/pkg/logger"
	"github.com/juancamilo2341431/netrix-backend/pkg/metrics"
	"github.com/juancamilo2341431/netrix-backend/pkg/migrate"
	"github.com/juancamilo2341431/netrix-backend/pkg/redis"
)

const lockName = "cron-worker"

func main() {
	logg := logger.New(logger.Options{ServiceName: "cron-worker"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "cron-worker",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	gormDB := dbClient.DB()
	accountsRepo := accounts.NewRepository(gormDB)
	attemptsRepo := payments.NewAttemptRepository(gormDB)
	rentalsRepo := rentals.NewRepository(gormDB)

	boldClient, err := bold.NewClient(cfg.Bold)
	if err != nil {
		fatal(logg, "failed to create bold client", err)
	}

	collector := metrics.NewReconcileMetrics(prometheus.DefaultRegisterer)

	gateway, err := reconciler.NewGateway(attemptsRepo, accountsRepo, boldClient, logg)
	if err != nil {
		fatal(logg, "failed to create reconciler gateway", err)
	}
	sweepService, err := sweep.NewService(attemptsRepo, gateway, cfg.Reconcile, logg, collector)
	if err != nil {
		fatal(logg, "failed to create sweep service", err)
	}

	sweepJob, err := cron.NewSweepJob(sweepService)
	if err != nil {
		fatal(logg, "failed to create sweep job", err)
	}
	expiryJob, err := cron.NewRentalExpiryJob(rentalsRepo, accountsRepo, logg)
	if err != nil {
		fatal(logg, "failed to create rental expiry job", err)
	}

	lock, err := cron.NewRedisLock(redisClient, redisClient.LockKey(lockKey(cfg.App.Env)), 0)
	if err != nil {
		fatal(logg, "failed to create cron lock", err)
	}

	registry := cron.NewRegistry(sweepJob, expiryJob)
	service, err := cron.NewService(cron.ServiceParams{
		Logger:   logg,
		Registry: registry,
		Lock:     lock,
		Metrics:  collector,
		Interval: cfg.Reconcile.Interval,
	})
	if err != nil {
		fatal(logg, "failed to create cron service", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logg.WithField(ctx, "env", cfg.App.Env)

	go serveMetrics(ctx, logg)

	logg.Info(ctx, "starting cron worker")
	if err := service.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logg.Error(ctx, "cron worker stopped unexpectedly", err)
		os.Exit(1)
	}
	logg.Info(ctx, "cron worker shutting down gracefully")
}

func serveMetrics(ctx context.Context, logg *logger.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:              ":9090",
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logg.Error(ctx, "metrics server stopped", err)
	}
}

func lockKey(env string) string {
	if env == "" {
		env = "local"
	}
	return fmt.Sprintf("%s:%s", lockName, env)
}

func fatal(logg *logger.Logger, msg string, err error) {
	logg.Error(context.Background(), msg, err)
	os.Exit(1)
}
