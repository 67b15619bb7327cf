package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/juancamilo2341431/netrix-backend/pkg/enums"
)

// AuditEntry records who changed what in the back office and in settlements.
type AuditEntry struct {
	ID         uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ActorID    *uuid.UUID        `gorm:"column:actor_id;type:uuid"`
	Action     enums.AuditAction `gorm:"column:action;not null"`
	EntityType string            `gorm:"column:entity_type;not null"`
	EntityID   *uuid.UUID        `gorm:"column:entity_id;type:uuid"`
	Detail     *string           `gorm:"column:detail"`
	CreatedAt  time.Time         `gorm:"column:created_at;autoCreateTime"`
}
