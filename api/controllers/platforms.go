package controllers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/juancamilo2341431/netrix-backend/api/responses"
	"github.com/juancamilo2341431/netrix-backend/api/validators"
	"github.com/juancamilo2341431/netrix-backend/internal/platforms"
	"github.com/juancamilo2341431/netrix-backend/pkg/db/models"
	"github.com/juancamilo2341431/netrix-backend/pkg/enums"
	pkgerrors "github.com/juancamilo2341431/netrix-backend/pkg/errors"
	"github.com/juancamilo2341431/netrix-backend/pkg/logger"
)

type createPlatformRequest struct {
	Name    string  `json:"name" validate:"required,max=80"`
	LogoURL *string `json:"logo_url" validate:"omitempty,url"`
}

type updatePlatformRequest struct {
	Name    *string `json:"name" validate:"omitempty,max=80"`
	LogoURL *string `json:"logo_url" validate:"omitempty,url"`
	Status  *string `json:"status" validate:"omitempty,oneof=active inactive"`
}

type platformResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	LogoURL   *string   `json:"logo_url,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newPlatformResponse(platform *models.Platform) platformResponse {
	return platformResponse{
		ID:        platform.ID,
		Name:      platform.Name,
		LogoURL:   platform.LogoURL,
		Status:    string(platform.Status),
		CreatedAt: platform.CreatedAt,
		UpdatedAt: platform.UpdatedAt,
	}
}

// AdminCreatePlatform registers a streaming platform.
func AdminCreatePlatform(svc platforms.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body createPlatformRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		platform, err := svc.Create(r.Context(), actorID(r), platforms.CreateInput{
			Name:    body.Name,
			LogoURL: body.LogoURL,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, newPlatformResponse(platform))
	}
}

// AdminListPlatforms returns every platform, active or not.
func AdminListPlatforms(svc platforms.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListAll(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		out := make([]platformResponse, 0, len(items))
		for i := range items {
			out = append(out, newPlatformResponse(&items[i]))
		}
		responses.WriteSuccess(w, out)
	}
}

// AdminUpdatePlatform applies a partial update.
func AdminUpdatePlatform(svc platforms.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "platformId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updatePlatformRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := platforms.UpdateInput{Name: body.Name, LogoURL: body.LogoURL}
		if body.Status != nil {
			status := enums.PlatformStatus(*body.Status)
			if !status.IsValid() {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid status"))
				return
			}
			input.Status = &status
		}

		platform, err := svc.Update(r.Context(), actorID(r), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newPlatformResponse(platform))
	}
}

// AdminDeletePlatform removes a platform from the catalog.
func AdminDeletePlatform(svc platforms.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "platformId")
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
