package models

import (
	"time"

	"github.com/google/uuid"
)

// Payment is the durable record written when a settlement commits.
type Payment struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Reference   string    `gorm:"column:reference;not null;uniqueIndex"`
	AmountTotal int64     `gorm:"column:amount_total;not null"`
	Method      string    `gorm:"column:method;not null;default:'payment_link'"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
}
