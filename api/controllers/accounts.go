package controllers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/juancamilo2341431/netrix-backend/api/responses"
	"github.com/juancamilo2341431/netrix-backend/api/validators"
	"github.com/juancamilo2341431/netrix-backend/internal/accounts"
	"github.com/juancamilo2341431/netrix-backend/pkg/db/models"
	"github.com/juancamilo2341431/netrix-backend/pkg/enums"
	pkgerrors "github.com/juancamilo2341431/netrix-backend/pkg/errors"
	"github.com/juancamilo2341431/netrix-backend/pkg/logger"
)

type createAccountRequest struct {
	PlatformID      uuid.UUID `json:"platform_id" validate:"required"`
	Email           string    `json:"email" validate:"required,email"`
	Password        string    `json:"password" validate:"required"`
	Profile         *string   `json:"profile" validate:"omitempty,max=120"`
	PriceMinorUnits int64     `json:"price_minor_units" validate:"required,min=1"`
	Notes           *string   `json:"notes" validate:"omitempty,max=500"`
}

type updateAccountRequest struct {
	Email           *string `json:"email" validate:"omitempty,email"`
	Password        *string `json:"password"`
	Profile         *string `json:"profile" validate:"omitempty,max=120"`
	PriceMinorUnits *int64  `json:"price_minor_units" validate:"omitempty,min=1"`
	Notes           *string `json:"notes" validate:"omitempty,max=500"`
	State           *string `json:"state" validate:"omitempty,oneof=available reserved rented suspended"`
}

type accountResponse struct {
	ID              uuid.UUID `json:"id"`
	PlatformID      uuid.UUID `json:"platform_id"`
	Email           string    `json:"email"`
	Profile         *string   `json:"profile,omitempty"`
	PriceMinorUnits int64     `json:"price_minor_units"`
	State           string    `json:"state"`
	Notes           *string   `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type accountListResponse struct {
	Items      []accountResponse `json:"items"`
	NextCursor *string           `json:"next_cursor,omitempty"`
}

func newAccountResponse(account *models.Account) accountResponse {
	return accountResponse{
		ID:              account.ID,
		PlatformID:      account.PlatformID,
		Email:           account.Email,
		Profile:         account.Profile,
		PriceMinorUnits: account.PriceMinorUnits,
		State:           string(account.State),
		Notes:           account.Notes,
		CreatedAt:       account.CreatedAt,
		UpdatedAt:       account.UpdatedAt,
	}
}

// AdminCreateAccount registers a new rentable account.
func AdminCreateAccount(svc accounts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body createAccountRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		account, err := svc.Create(r.Context(), actorID(r), accounts.CreateInput{
			PlatformID:      body.PlatformID,
			Email:           body.Email,
			Password:        body.Password,
			Profile:         body.Profile,
			PriceMinorUnits: body.PriceMinorUnits,
			Notes:           body.Notes,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, newAccountResponse(account))
	}
}

// AdminGetAccount returns one account by id.
func AdminGetAccount(svc accounts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "accountId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		account, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newAccountResponse(account))
	}
}

// AdminListAccounts pages through accounts with optional platform and state
// filters.
func AdminListAccounts(svc accounts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := parsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filters := accounts.Filters{}
		if raw := r.URL.Query().Get("platform_id"); raw != "" {
			platformID, parseErr := uuid.Parse(raw)
			if parseErr != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid platform_id"))
				return
			}
			filters.PlatformID = &platformID
		}
		if raw := r.URL.Query().Get("state"); raw != "" {
			state, parseErr := enums.ParseAccountState(raw)
			if parseErr != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, parseErr, "invalid state"))
				return
			}
			filters.State = &state
		}

		page, err := svc.List(r.Context(), params, filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		out := accountListResponse{Items: make([]accountResponse, 0, len(page.Items)), NextCursor: page.NextCursor}
		for i := range page.Items {
			out.Items = append(out.Items, newAccountResponse(&page.Items[i]))
		}
		responses.WriteSuccess(w, out)
	}
}

// AdminUpdateAccount applies a partial update, including manual state moves.
func AdminUpdateAccount(svc accounts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "accountId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateAccountRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := accounts.UpdateInput{
			Email:           body.Email,
			Password:        body.Password,
			Profile:         body.Profile,
			PriceMinorUnits: body.PriceMinorUnits,
			Notes:           body.Notes,
		}
		if body.State != nil {
			state, parseErr := enums.ParseAccountState(*body.State)
			if parseErr != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, parseErr, "invalid state"))
				return
			}
			input.State = &state
		}

		account, err := svc.Update(r.Context(), actorID(r), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newAccountResponse(account))
	}
}

// AdminDeleteAccount removes an account that is not currently rented.
func AdminDeleteAccount(svc accounts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "accountId")
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
