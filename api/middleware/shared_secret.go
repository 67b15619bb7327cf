package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/juancamilo2341431/netrix-backend/api/responses"
	pkgerrors "github.com/juancamilo2341431/netrix-backend/pkg/errors"
	"github.com/juancamilo2341431/netrix-backend/pkg/logger"
)

// SharedSecret guards the internal reconciliation endpoints with a bearer
// secret. The comparison is constant-time. A rejected call answers with the
// legacy storefront body so existing schedulers keep parsing it.
func SharedSecret(secret string, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if secret == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeConfiguration, "sweep secret not configured"))
				return
			}

			token := bearerToken(r)
			if subtle.ConstantTimeCompare([]byte(token), []byte(secret)) != 1 {
				if logg != nil {
					logg.Warn(r.Context(), "internal endpoint rejected: bad shared secret")
				}
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"No autorizado."}` + "\n"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
