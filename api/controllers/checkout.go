package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/juancamilo2341431/netrix-backend/api/validators"
	"github.com/juancamilo2341431/netrix-backend/internal/checkout"
	pkgerrors "github.com/juancamilo2341431/netrix-backend/pkg/errors"
	"github.com/juancamilo2341431/netrix-backend/pkg/logger"
)

// paymentLinkRequest keeps the camelCase keys the storefront already sends.
type paymentLinkRequest struct {
	AccountID         uuid.UUID       `json:"accountId" validate:"required"`
	TotalAmount       decimal.Decimal `json:"totalAmount" validate:"required"`
	Description       string          `json:"description" validate:"required"`
	ExpirationSeconds int             `json:"expirationSeconds" validate:"omitempty,min=0"`
	CouponCode        string          `json:"couponCode" validate:"omitempty,max=64"`
	CustomerContact   *string         `json:"customerContact" validate:"omitempty,max=120"`
}

type paymentLinkResponse struct {
	PaymentLinkURL string `json:"paymentLinkUrl"`
	OrderReference string `json:"orderReference"`
}

// CheckoutPaymentLink reserves the account and mints a provider payment link.
func CheckoutPaymentLink(svc *checkout.IssuanceService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			writeLegacyError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeConfiguration, "checkout unavailable"))
			return
		}

		var body paymentLinkRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			writeLegacyError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Issue(r.Context(), checkout.IssueInput{
			AccountID:         body.AccountID,
			TotalAmount:       body.TotalAmount,
			Description:       body.Description,
			ExpirationSeconds: body.ExpirationSeconds,
			CouponCode:        body.CouponCode,
			CustomerContact:   body.CustomerContact,
		})
		if err != nil {
			writeLegacyError(r.Context(), logg, w, err)
			return
		}

		writeLegacyJSON(w, http.StatusOK, paymentLinkResponse{
			PaymentLinkURL: result.PaymentLinkURL,
			OrderReference: result.OrderReference,
		})
	}
}

type confirmResponse struct {
	Message      string `json:"message"`
	Reference    string `json:"reference"`
	RenewedCount int    `json:"cuentas_renovadas"`
}

// CheckoutConfirm settles a staged renewal when the customer returns from
// the provider's payment page.
func CheckoutConfirm(svc *checkout.SettlementService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			writeLegacyError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeConfiguration, "settlement unavailable"))
			return
		}

		reference := strings.TrimSpace(r.URL.Query().Get("reference"))
		if reference == "" {
			writeLegacyError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "reference query parameter required"))
			return
		}

		result, err := svc.Settle(r.Context(), reference)
		if err != nil {
			writeLegacyError(r.Context(), logg, w, err)
			return
		}

		message := "Renovación confirmada."
		if result.AlreadyProcessed {
			message = "Renovación ya procesada."
		}
		writeLegacyJSON(w, http.StatusOK, confirmResponse{
			Message:      message,
			Reference:    result.Reference,
			RenewedCount: result.RenewedCount,
		})
	}
}
