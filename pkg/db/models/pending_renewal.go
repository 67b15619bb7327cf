package models

import (
	"time"

	"github.com/google/uuid"

	dbtypes "github.com/juancamilo2341431/netrix-backend/pkg/db/types"
)

// PendingRenewal stages checkout state server-side between the payment-link
// redirect hops, keyed by the provider order reference. The settlement
// handler consumes it; an unmatched reference means a failed settlement.
type PendingRenewal struct {
	ID              uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Reference       string            `gorm:"column:reference;not null;uniqueIndex"`
	AccountIDs      dbtypes.UUIDArray `gorm:"column:account_ids;type:uuid[];not null"`
	AmountTotal     int64             `gorm:"column:amount_total;not null"`
	CouponID        *uuid.UUID        `gorm:"column:coupon_id;type:uuid"`
	CustomerContact *string           `gorm:"column:customer_contact"`
	ConsumedAt      *time.Time        `gorm:"column:consumed_at"`
	CreatedAt       time.Time         `gorm:"column:created_at;autoCreateTime"`
}
