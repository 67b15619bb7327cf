package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/juancamilo2341431/netrix-backend/api/responses"
	"github.com/juancamilo2341431/netrix-backend/internal/accounts"
	"github.com/juancamilo2341431/netrix-backend/internal/platforms"
	"github.com/juancamilo2341431/netrix-backend/pkg/logger"
)

type catalogPlatformResponse struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	LogoURL *string   `json:"logo_url,omitempty"`
}

// CatalogPlatforms lists the active platforms the storefront renders.
func CatalogPlatforms(svc platforms.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListActive(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		out := make([]catalogPlatformResponse, 0, len(items))
		for i := range items {
			out = append(out, catalogPlatformResponse{
				ID:      items[i].ID,
				Name:    items[i].Name,
				LogoURL: items[i].LogoURL,
			})
		}
		responses.WriteSuccess(w, out)
	}
}

// catalogAccountResponse exposes only what a buyer needs to pick an offer.
// Credentials never leave the back office.
type catalogAccountResponse struct {
	ID              uuid.UUID `json:"id"`
	Profile         *string   `json:"profile,omitempty"`
	PriceMinorUnits int64     `json:"price_minor_units"`
}

// CatalogAccounts lists the rentable accounts of one platform.
func CatalogAccounts(repo accounts.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		platformID, err := pathUUID(r, "platformId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items, err := repo.ListAvailableByPlatform(r.Context(), platformID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		out := make([]catalogAccountResponse, 0, len(items))
		for i := range items {
			out = append(out, catalogAccountResponse{
				ID:              items[i].ID,
				Profile:         items[i].Profile,
				PriceMinorUnits: items[i].PriceMinorUnits,
			})
		}
		responses.WriteSuccess(w, out)
	}
}
