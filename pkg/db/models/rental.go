package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/juancamilo2341431/netrix-backend/pkg/enums"
)

// Rental links one settled account to the payment that bought its window.
type Rental struct {
	ID        uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	AccountID uuid.UUID          `gorm:"column:account_id;type:uuid;not null"`
	PaymentID uuid.UUID          `gorm:"column:payment_id;type:uuid;not null"`
	Status    enums.RentalStatus `gorm:"column:status;type:rental_status;not null;default:'active'"`
	StartsAt  time.Time          `gorm:"column:starts_at;not null"`
	EndsAt    time.Time          `gorm:"column:ends_at;not null"`
	CreatedAt time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time          `gorm:"column:updated_at;autoUpdateTime"`

	Account *Account `gorm:"foreignKey:AccountID"`
	Payment *Payment `gorm:"foreignKey:PaymentID"`
}
