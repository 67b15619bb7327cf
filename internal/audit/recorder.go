package audit

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/juancamilo2341431/netrix-backend/pkg/db/models"
	"github.com/juancamilo2341431/netrix-backend/pkg/enums"
	"github.com/juancamilo2341431/netrix-backend/pkg/logger"
	"github.com/juancamilo2341431/netrix-backend/pkg/pagination"
)

// Recorder persists audit entries. Writes are best-effort: a failed audit
// insert is logged but never fails the operation that produced it.
type Recorder struct {
	db   *gorm.DB
	logg *logger.Logger
}

// NewRecorder builds the audit recorder.
func NewRecorder(db *gorm.DB, logg *logger.Logger) *Recorder {
	return &Recorder{db: db, logg: logg}
}

// Record writes one audit entry.
func (r *Recorder) Record(ctx context.Context, actorID *uuid.UUID, action enums.AuditAction, entityType string, entityID *uuid.UUID, detail string) {
	if r == nil || r.db == nil {
		return
	}
	entry := models.AuditEntry{
		ActorID:    actorID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
	}
	if detail != "" {
		entry.Detail = &detail
	}
	if err := r.db.WithContext(ctx).Create(&entry).Error; err != nil && r.logg != nil {
		r.logg.Error(ctx, "failed to write audit entry", err)
	}
}

// List returns one page of audit entries, newest first.
func (r *Recorder) List(ctx context.Context, params pagination.Params) ([]models.AuditEntry, *string, error) {
	limit := pagination.NormalizeLimit(params.Limit)

	query := r.db.WithContext(ctx).Model(&models.AuditEntry{})
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, nil, err
	}
	if cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	var items []models.AuditEntry
	if err := query.Order("created_at DESC, id DESC").Limit(limit + 1).Find(&items).Error; err != nil {
		return nil, nil, err
	}

	if len(items) > limit {
		items = items[:limit]
		last := items[limit-1]
		next := pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
		return items, &next, nil
	}
	return items, nil, nil
}
