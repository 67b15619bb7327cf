package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/juancamilo2341431/netrix-backend/api/validators"
	"github.com/juancamilo2341431/netrix-backend/internal/reconciler"
	"github.com/juancamilo2341431/netrix-backend/internal/sweep"
	pkgerrors "github.com/juancamilo2341431/netrix-backend/pkg/errors"
	"github.com/juancamilo2341431/netrix-backend/pkg/logger"
)

// sweepResponse is the frozen contract the scheduled invoker parses. The
// Spanish field names come from the original storefront and cannot change.
type sweepResponse struct {
	Message       string `json:"message"`
	Reviewed      int    `json:"total_intentos_revisados"`
	SyncOK        int    `json:"invocaciones_sync_exitosas"`
	SyncErrors    int    `json:"invocaciones_sync_errores"`
	ForcedExpired int    `json:"forzados_a_expirar_via_sync"`
}

// ReconcileSweep runs one bounded sweep over outstanding payment attempts.
func ReconcileSweep(svc *sweep.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			writeLegacyError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeConfiguration, "sweep service unavailable"))
			return
		}

		summary, err := svc.Run(r.Context())
		if err != nil {
			writeLegacyError(r.Context(), logg, w, err)
			return
		}

		writeLegacyJSON(w, http.StatusOK, sweepResponse{
			Message:       "Sincronización de intentos de pago completada.",
			Reviewed:      summary.Reviewed,
			SyncOK:        summary.SyncOK,
			SyncErrors:    summary.SyncErrors,
			ForcedExpired: summary.ForcedExpired,
		})
	}
}

// reconcileRequest is the frozen single-attempt contract.
type reconcileRequest struct {
	AttemptID   uuid.UUID `json:"id_intento_pago" validate:"required"`
	LinkID      string    `json:"id_link_pago_bold" validate:"required"`
	AccountID   uuid.UUID `json:"id_cuenta" validate:"required"`
	ForceStatus *string   `json:"force_status,omitempty"`
}

type reconcileResponse struct {
	Message        string    `json:"message"`
	AttemptID      uuid.UUID `json:"id_intento_pago"`
	LinkID         string    `json:"id_link_pago_bold"`
	FinalStatus    string    `json:"estado_final"`
	AccountID      uuid.UUID `json:"id_cuenta"`
	AccountUpdated bool      `json:"cuenta_actualizada"`
}

// ReconcileAttempt drives one payment attempt to its settled status.
func ReconcileAttempt(gateway *reconciler.Gateway, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if gateway == nil {
			writeLegacyError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeConfiguration, "reconciler unavailable"))
			return
		}

		var body reconcileRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			writeLegacyError(r.Context(), logg, w, err)
			return
		}

		result, err := gateway.Reconcile(r.Context(), reconciler.Input{
			AttemptID:   body.AttemptID,
			LinkID:      body.LinkID,
			AccountID:   body.AccountID,
			ForceStatus: body.ForceStatus,
		})
		if err != nil {
			writeLegacyError(r.Context(), logg, w, err)
			return
		}

		writeLegacyJSON(w, http.StatusOK, reconcileResponse{
			Message:        "Intento de pago sincronizado.",
			AttemptID:      result.AttemptID,
			LinkID:         result.LinkID,
			FinalStatus:    string(result.FinalStatus),
			AccountID:      result.AccountID,
			AccountUpdated: result.AccountUpdated,
		})
	}
}
