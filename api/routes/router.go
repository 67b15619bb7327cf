package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/juancamilo2341431/netrix-backend/api/controllers"
	"github.com/juancamilo2341431/netrix-backend/api/middleware"
	"github.com/juancamilo2341431/netrix-backend/internal/accounts"
	"github.com/juancamilo2341431/netrix-backend/internal/audit"
	authsvc "github.com/juancamilo2341431/netrix-backend/internal/auth"
	checkoutsvc "github.com/juancamilo2341431/netrix-backend/internal/checkout"
	"github.com/juancamilo2341431/netrix-backend/internal/coupons"
	"github.com/juancamilo2341431/netrix-backend/internal/platforms"
	"github.com/juancamilo2341431/netrix-backend/internal/reconciler"
	"github.com/juancamilo2341431/netrix-backend/internal/rentals"
	"github.com/juancamilo2341431/netrix-backend/internal/sweep"
	"github.com/juancamilo2341431/netrix-backend/pkg/config"
	"github.com/juancamilo2341431/netrix-backend/pkg/db"
	"github.com/juancamilo2341431/netrix-backend/pkg/enums"
	"github.com/juancamilo2341431/netrix-backend/pkg/logger"
	pkgredis "github.com/juancamilo2341431/netrix-backend/pkg/redis"
)

// Deps bundles everything the HTTP surface needs. The cmd/api entrypoint
// builds the services once and hands them over here.
type Deps struct {
	Config *config.Config
	Logger *logger.Logger

	DBPinger    db.Pinger
	RedisPinger pkgredis.Pinger
	Idempotency pkgredis.IdempotencyStore

	AuthService      authsvc.Service
	AccountsService  accounts.Service
	AccountsRepo     accounts.Repository
	PlatformsService platforms.Service
	CouponsService   coupons.Service
	RentalsRepo      rentals.Repository
	AuditRecorder    *audit.Recorder

	Issuance   *checkoutsvc.IssuanceService
	Settlement *checkoutsvc.SettlementService
	Sweep      *sweep.Service
	Reconciler *reconciler.Gateway
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DBPinger, deps.RedisPinger))
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/login", controllers.AuthLogin(deps.AuthService, logg))
	})

	// Storefront surface: browse the catalog, price a coupon, buy.
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/catalog", func(r chi.Router) {
			r.Get("/platforms", controllers.CatalogPlatforms(deps.PlatformsService, logg))
			r.Get("/platforms/{platformId}/accounts", controllers.CatalogAccounts(deps.AccountsRepo, logg))
		})
		r.Get("/coupons/quote", controllers.CouponQuote(deps.CouponsService, logg))

		r.Route("/checkout", func(r chi.Router) {
			r.With(middleware.Idempotency(deps.Idempotency, logg)).
				Post("/payment-links", controllers.CheckoutPaymentLink(deps.Issuance, logg))
			r.Get("/confirm", controllers.CheckoutConfirm(deps.Settlement, logg))
		})
	})

	// Reconciliation surface for the scheduler and for operators poking a
	// single attempt. Shared-secret only, no JWT.
	r.Route("/api/internal/v1/reconcile", func(r chi.Router) {
		r.Use(middleware.SharedSecret(cfg.Reconcile.SweepSecret, logg))
		r.Post("/sweep", controllers.ReconcileSweep(deps.Sweep, logg))
		r.Post("/attempt", controllers.ReconcileAttempt(deps.Reconciler, logg))
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.RequireRole(string(enums.UserRoleAdmin), logg))

		r.Post("/users", controllers.AdminCreateUser(deps.AuthService, logg))

		r.Route("/platforms", func(r chi.Router) {
			r.Get("/", controllers.AdminListPlatforms(deps.PlatformsService, logg))
			r.Post("/", controllers.AdminCreatePlatform(deps.PlatformsService, logg))
			r.Patch("/{platformId}", controllers.AdminUpdatePlatform(deps.PlatformsService, logg))
			r.Delete("/{platformId}", controllers.AdminDeletePlatform(deps.PlatformsService, logg))
		})

		r.Route("/accounts", func(r chi.Router) {
			r.Get("/", controllers.AdminListAccounts(deps.AccountsService, logg))
			r.Post("/", controllers.AdminCreateAccount(deps.AccountsService, logg))
			r.Get("/{accountId}", controllers.AdminGetAccount(deps.AccountsService, logg))
			r.Patch("/{accountId}", controllers.AdminUpdateAccount(deps.AccountsService, logg))
			r.Delete("/{accountId}", controllers.AdminDeleteAccount(deps.AccountsService, logg))
		})

		r.Route("/coupons", func(r chi.Router) {
			r.Get("/", controllers.AdminListCoupons(deps.CouponsService, logg))
			r.Post("/", controllers.AdminCreateCoupon(deps.CouponsService, logg))
			r.Patch("/{couponId}", controllers.AdminUpdateCoupon(deps.CouponsService, logg))
			r.Delete("/{couponId}", controllers.AdminDeleteCoupon(deps.CouponsService, logg))
		})

		r.Route("/rentals", func(r chi.Router) {
			r.Get("/", controllers.AdminListRentals(deps.RentalsRepo, logg))
			r.Get("/{rentalId}", controllers.AdminGetRental(deps.RentalsRepo, logg))
		})

		r.Get("/audit", controllers.AdminListAudit(deps.AuditRecorder, logg))
	})

	return r
}
