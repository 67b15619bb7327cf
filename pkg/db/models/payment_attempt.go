package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/juancamilo2341431/netrix-backend/pkg/enums"
)

// PaymentAttempt ties one reserved account to one provider payment link.
// ExternalLinkID, CreatedAt and ConfiguredExpiresAt are immutable once
// written; Status and LastUpdated move only through the reconciler or the
// settlement handler.
type PaymentAttempt struct {
	ID                  uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ExternalLinkID      string              `gorm:"column:external_link_id;not null;uniqueIndex"`
	AccountID           uuid.UUID           `gorm:"column:account_id;type:uuid;not null"`
	Status              enums.AttemptStatus `gorm:"column:status;not null;default:'PENDING'"`
	ConfiguredExpiresAt time.Time           `gorm:"column:configured_expires_at;not null"`
	CreatedAt           time.Time           `gorm:"column:created_at;autoCreateTime"`
	LastUpdated         time.Time           `gorm:"column:last_updated;autoUpdateTime"`

	Account *Account `gorm:"foreignKey:AccountID"`
}
