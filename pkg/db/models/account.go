package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/juancamilo2341431/netrix-backend/pkg/enums"
)

// Account is a rentable streaming account. State is a shared field: checkout
// reserves it, the reconciler releases it, settlement marks it rented.
type Account struct {
	ID              uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	PlatformID      uuid.UUID          `gorm:"column:platform_id;type:uuid;not null"`
	Email           string             `gorm:"column:email;not null"`
	Password        string             `gorm:"column:password;not null"`
	Profile         *string            `gorm:"column:profile"`
	PriceMinorUnits int64              `gorm:"column:price_minor_units;not null"`
	State           enums.AccountState `gorm:"column:state;type:account_state;not null;default:'available'"`
	Notes           *string            `gorm:"column:notes"`
	CreatedAt       time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time          `gorm:"column:updated_at;autoUpdateTime"`

	Platform *Platform `gorm:"foreignKey:PlatformID"`
}
