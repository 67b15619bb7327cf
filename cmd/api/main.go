package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/juancamilo2341431/netrix-backend/api"
	"github.com/juancamilo2341431/netrix-backend/api/routes"
	"github.com/juancamilo2341431/netrix-backend/internal/accounts"
	"github.com/juancamilo2341431/netrix-backend/internal/audit"
	authsvc "github.com/juancamilo2341431/netrix-backend/internal/auth"
	checkoutsvc "github.com/juancamilo2341431/netrix-backend/internal/checkout"
	"github.com/juancamilo2341431/netrix-backend/internal/coupons"
	"github.com/juancamilo2341431/netrix-backend/internal/payments"
	"github.com/juancamilo2341431/netrix-backend/internal/platforms"
	"github.com/juancamilo2341431/netrix-backend/internal/reconciler"
	"github.com/juancamilo2341431/netrix-backend/internal/rentals"
	"github.com/juancamilo2341431/netrix-backend/internal/sweep"
	"github.com/juancamilo2341431/netrix-backend/internal/users"
	"github.com/juancamilo2341431/netrix-backend/pkg/bold"
	"github.com/juancamilo2341431/netrix-backend/pkg/config"
	"github.com/juancamilo2341431/netrix-backend/pkg/db"
	"github.com/juancamilo2341431/netrix-backend/pkg/logger"
	"github.com/juancamilo2341431/netrix-backend/pkg/migrate"
	"github.com/juancamilo2341431/netrix-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
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
	platformsRepo := platforms.NewRepository(gormDB)
	couponsRepo := coupons.NewRepository(gormDB)
	usersRepo := users.NewRepository(gormDB)
	rentalsRepo := rentals.NewRepository(gormDB)
	attemptsRepo := payments.NewAttemptRepository(gormDB)
	renewalsRepo := payments.NewRenewalRepository(gormDB)
	paymentsRepo := payments.NewPaymentRepository(gormDB)
	auditRecorder := audit.NewRecorder(gormDB, logg)

	authService, err := authsvc.NewService(usersRepo, cfg.JWT, cfg.Password)
	if err != nil {
		fatal(logg, "failed to create auth service", err)
	}
	accountsService, err := accounts.NewService(accountsRepo, auditRecorder)
	if err != nil {
		fatal(logg, "failed to create accounts service", err)
	}
	platformsService, err := platforms.NewService(platformsRepo, auditRecorder)
	if err != nil {
		fatal(logg, "failed to create platforms service", err)
	}
	couponsService, err := coupons.NewService(couponsRepo, auditRecorder)
	if err != nil {
		fatal(logg, "failed to create coupons service", err)
	}

	boldClient, err := bold.NewClient(cfg.Bold)
	if err != nil {
		fatal(logg, "failed to create bold client", err)
	}

	issuance, err := checkoutsvc.NewIssuanceService(
		boldClient, accountsRepo, attemptsRepo, renewalsRepo,
		couponsService, dbClient, cfg.Bold, cfg.App.PublicBaseURL, logg,
	)
	if err != nil {
		fatal(logg, "failed to create issuance service", err)
	}
	settlement, err := checkoutsvc.NewSettlementService(
		renewalsRepo, paymentsRepo, attemptsRepo, accountsRepo, rentalsRepo,
		dbClient, auditRecorder, logg,
	)
	if err != nil {
		fatal(logg, "failed to create settlement service", err)
	}

	gateway, err := reconciler.NewGateway(attemptsRepo, accountsRepo, boldClient, logg)
	if err != nil {
		fatal(logg, "failed to create reconciler gateway", err)
	}
	sweepService, err := sweep.NewService(attemptsRepo, gateway, cfg.Reconcile, logg, nil)
	if err != nil {
		fatal(logg, "failed to create sweep service", err)
	}

	server, err := api.NewServer(routes.Deps{
		Config:           cfg,
		Logger:           logg,
		DBPinger:         dbClient,
		RedisPinger:      redisClient,
		Idempotency:      redisClient,
		AuthService:      authService,
		AccountsService:  accountsService,
		AccountsRepo:     accountsRepo,
		PlatformsService: platformsService,
		CouponsService:   couponsService,
		RentalsRepo:      rentalsRepo,
		AuditRecorder:    auditRecorder,
		Issuance:         issuance,
		Settlement:       settlement,
		Sweep:            sweepService,
		Reconciler:       gateway,
	})
	if err != nil {
		fatal(logg, "failed to build api server", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logg.WithField(ctx, "env", cfg.App.Env)
	logg.Info(ctx, "starting api server")

	if err := server.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
	logg.Info(ctx, "api server shut down gracefully")
}

func fatal(logg *logger.Logger, msg string, err error) {
	logg.Error(context.Background(), msg, err)
	os.Exit(1)
}
