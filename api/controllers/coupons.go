package controllers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/juancamilo2341431/netrix-backend/api/responses"
	"github.com/juancamilo2341431/netrix-backend/api/validators"
	"github.com/juancamilo2341431/netrix-backend/internal/coupons"
	"github.com/juancamilo2341431/netrix-backend/pkg/db/models"
	"github.com/juancamilo2341431/netrix-backend/pkg/enums"
	pkgerrors "github.com/juancamilo2341431/netrix-backend/pkg/errors"
	"github.com/juancamilo2341431/netrix-backend/pkg/logger"
)

type createCouponRequest struct {
	Code      string          `json:"code" validate:"required,max=64"`
	Percent   decimal.Decimal `json:"percent" validate:"required"`
	ExpiresAt *time.Time      `json:"expires_at"`
}

type updateCouponRequest struct {
	Percent   *decimal.Decimal `json:"percent"`
	Status    *string          `json:"status" validate:"omitempty,oneof=active inactive"`
	ExpiresAt *time.Time       `json:"expires_at"`
}

type couponResponse struct {
	ID        uuid.UUID       `json:"id"`
	Code      string          `json:"code"`
	Percent   decimal.Decimal `json:"percent"`
	Status    string          `json:"status"`
	ExpiresAt *time.Time      `json:"expires_at,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

func newCouponResponse(coupon *models.Coupon) couponResponse {
	return couponResponse{
		ID:        coupon.ID,
		Code:      coupon.Code,
		Percent:   coupon.Percent,
		Status:    string(coupon.Status),
		ExpiresAt: coupon.ExpiresAt,
		CreatedAt: coupon.CreatedAt,
	}
}

// AdminCreateCoupon registers a percentage discount code.
func AdminCreateCoupon(svc coupons.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body createCouponRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		coupon, err := svc.Create(r.Context(), actorID(r), coupons.CreateInput{
			Code:      body.Code,
			Percent:   body.Percent,
			ExpiresAt: body.ExpiresAt,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, newCouponResponse(coupon))
	}
}

// AdminListCoupons returns every coupon.
func AdminListCoupons(svc coupons.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListAll(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		out := make([]couponResponse, 0, len(items))
		for i := range items {
			out = append(out, newCouponResponse(&items[i]))
		}
		responses.WriteSuccess(w, out)
	}
}

// AdminUpdateCoupon applies a partial update.
func AdminUpdateCoupon(svc coupons.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "couponId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateCouponRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := coupons.UpdateInput{Percent: body.Percent, ExpiresAt: body.ExpiresAt}
		if body.Status != nil {
			status := enums.CouponStatus(*body.Status)
			if !status.IsValid() {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid status"))
				return
			}
			input.Status = &status
		}

		coupon, err := svc.Update(r.Context(), actorID(r), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCouponResponse(coupon))
	}
}

// AdminDeleteCoupon removes a coupon.
func AdminDeleteCoupon(svc coupons.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "couponId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), actorID(r), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

type couponQuoteResponse struct {
	Code            string          `json:"code"`
	Percent         decimal.Decimal `json:"percent"`
	DiscountedTotal int64           `json:"discounted_total"`
}

// CouponQuote validates a code for the storefront and prices a total with it.
func CouponQuote(svc coupons.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		if code == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "code query parameter required"))
			return
		}

		total, err := validators.ParseQueryInt(r, "total", 0, 0, 1<<30)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		coupon, err := svc.Redeemable(r.Context(), code, time.Now())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, couponQuoteResponse{
			Code:            coupon.Code,
			Percent:         coupon.Percent,
			DiscountedTotal: svc.ApplyDiscount(coupon, int64(total)),
		})
	}
}
