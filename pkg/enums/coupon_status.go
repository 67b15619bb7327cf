package enums

// CouponStatus marks whether a coupon can still be redeemed.
type CouponStatus string

const (
	CouponStatusActive   CouponStatus = "active"
	CouponStatusInactive CouponStatus = "inactive"
)

// IsValid reports whether the value is a known CouponStatus.
func (c CouponStatus) IsValid() bool {
	return c == CouponStatusActive || c == CouponStatusInactive
}
