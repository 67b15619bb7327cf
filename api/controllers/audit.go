package controllers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/juancamilo2341431/netrix-backend/api/responses"
	"github.com/juancamilo2341431/netrix-backend/internal/audit"
	"github.com/juancamilo2341431/netrix-backend/pkg/logger"
)

type auditEntryResponse struct {
	ID         uuid.UUID  `json:"id"`
	ActorID    *uuid.UUID `json:"actor_id,omitempty"`
	Action     string     `json:"action"`
	EntityType string     `json:"entity_type"`
	EntityID   *uuid.UUID `json:"entity_id,omitempty"`
	Detail     *string    `json:"detail,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

type auditListResponse struct {
	Items      []auditEntryResponse `json:"items"`
	NextCursor *string              `json:"next_cursor,omitempty"`
}

// AdminListAudit pages through the audit log, newest first.
func AdminListAudit(recorder *audit.Recorder, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := parsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		entries, nextCursor, err := recorder.List(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		out := auditListResponse{Items: make([]auditEntryResponse, 0, len(entries)), NextCursor: nextCursor}
		for i := range entries {
			entry := &entries[i]
			out.Items = append(out.Items, auditEntryResponse{
				ID:         entry.ID,
				ActorID:    entry.ActorID,
				Action:     string(entry.Action),
				EntityType: entry.EntityType,
				EntityID:   entry.EntityID,
				Detail:     entry.Detail,
				CreatedAt:  entry.CreatedAt,
			})
		}
		responses.WriteSuccess(w, out)
	}
}
