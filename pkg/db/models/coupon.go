package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/juancamilo2341431/netrix-backend/pkg/enums"
)

// Coupon is a percentage discount redeemable at checkout.
type Coupon struct {
	ID        uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Code      string             `gorm:"column:code;not null;uniqueIndex"`
	Percent   decimal.Decimal    `gorm:"column:percent;type:numeric(5,2);not null"`
	Status    enums.CouponStatus `gorm:"column:status;type:coupon_status;not null;default:'active'"`
	ExpiresAt *time.Time         `gorm:"column:expires_at"`
	CreatedAt time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
