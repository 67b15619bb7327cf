package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/juancamilo2341431/netrix-backend/pkg/enums"
)

// Platform is a streaming service whose accounts are offered for rent.
type Platform struct {
	ID        uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string               `gorm:"column:name;not null;uniqueIndex"`
	LogoURL   *string              `gorm:"column:logo_url"`
	Status    enums.PlatformStatus `gorm:"column:status;type:platform_status;not null;default:'active'"`
	CreatedAt time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}
