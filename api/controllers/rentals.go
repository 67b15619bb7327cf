package controllers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/juancamilo2341431/netrix-backend/api/responses"
	"github.com/juancamilo2341431/netrix-backend/internal/rentals"
	"github.com/juancamilo2341431/netrix-backend/pkg/db/models"
	"github.com/juancamilo2341431/netrix-backend/pkg/enums"
	pkgerrors "github.com/juancamilo2341431/netrix-backend/pkg/errors"
	"github.com/juancamilo2341431/netrix-backend/pkg/logger"
)

type rentalResponse struct {
	ID        uuid.UUID `json:"id"`
	AccountID uuid.UUID `json:"account_id"`
	PaymentID uuid.UUID `json:"payment_id"`
	Status    string    `json:"status"`
	StartsAt  time.Time `json:"starts_at"`
	EndsAt    time.Time `json:"ends_at"`
	CreatedAt time.Time `json:"created_at"`
}

type rentalListResponse struct {
	Items      []rentalResponse `json:"items"`
	NextCursor *string          `json:"next_cursor,omitempty"`
}

func newRentalResponse(rental *models.Rental) rentalResponse {
	return rentalResponse{
		ID:        rental.ID,
		AccountID: rental.AccountID,
		PaymentID: rental.PaymentID,
		Status:    string(rental.Status),
		StartsAt:  rental.StartsAt,
		EndsAt:    rental.EndsAt,
		CreatedAt: rental.CreatedAt,
	}
}

// AdminListRentals pages through rentals with optional account and status
// filters.
func AdminListRentals(repo rentals.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := parsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filters := rentals.Filters{}
		if raw := r.URL.Query().Get("account_id"); raw != "" {
			accountID, parseErr := uuid.Parse(raw)
			if parseErr != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid account_id"))
				return
			}
			filters.AccountID = &accountID
		}
		if raw := r.URL.Query().Get("status"); raw != "" {
			status, parseErr := enums.ParseRentalStatus(raw)
			if parseErr != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, parseErr, "invalid status"))
				return
			}
			filters.Status = &status
		}

		page, err := repo.List(r.Context(), params, filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		out := rentalListResponse{Items: make([]rentalResponse, 0, len(page.Items)), NextCursor: page.NextCursor}
		for i := range page.Items {
			out.Items = append(out.Items, newRentalResponse(&page.Items[i]))
		}
		responses.WriteSuccess(w, out)
	}
}

// AdminGetRental returns one rental by id.
func AdminGetRental(repo rentals.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "rentalId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rental, err := repo.FindByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newRentalResponse(rental))
	}
}
