package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/juancamilo2341431/netrix-backend/api/responses"
	"github.com/juancamilo2341431/netrix-backend/pkg/config"
	"github.com/juancamilo2341431/netrix-backend/pkg/db"
	"github.com/juancamilo2341431/netrix-backend/pkg/logger"
	pkgredis "github.com/juancamilo2341431/netrix-backend/pkg/redis"
)

const readyCheckTimeout = 2 * time.Second

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Netrix-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings every hard dependency and reports per-check status.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger, redisP pkgredis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Netrix-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readyCheckTimeout)
		defer cancel()

		checks := map[string]string{}
		healthy := true

		checks["database"] = pingStatus(ctx, logg, "database", func(ctx context.Context) error {
			if dbP == nil {
				return nil
			}
			return dbP.Ping(ctx)
		}, &healthy)

		checks["redis"] = pingStatus(ctx, logg, "redis", func(ctx context.Context) error {
			if redisP == nil {
				return nil
			}
			return redisP.Ping(ctx)
		}, &healthy)

		status := http.StatusOK
		if !healthy {
			status = http.StatusServiceUnavailable
		}
		responses.WriteSuccessStatus(w, status, map[string]any{
			"status": readyLabel(healthy),
			"checks": checks,
		})
	}
}

func pingStatus(ctx context.Context, logg *logger.Logger, name string, ping func(context.Context) error, healthy *bool) string {
	if err := ping(ctx); err != nil {
		if logg != nil {
			logg.Error(ctx, "readiness check failed: "+name, err)
		}
		*healthy = false
		return "down"
	}
	return "up"
}

func readyLabel(healthy bool) string {
	if healthy {
		return "ready"
	}
	return "degraded"
}
