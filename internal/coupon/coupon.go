package coupon

import "time"

// DiscountType selects how DiscountValue is interpreted.
const (
	TypePercentage = "percentage"
	TypeFixed      = "fixed"
)

// Coupon is a discount code. UsedCount only ever increases, exactly once per
// order the coupon is applied to.
type Coupon struct {
	ID            int        `json:"couponId"`
	Code          string     `json:"code"`
	DiscountType  string     `json:"discountType"`
	DiscountValue float64    `json:"discountValue"`
	MinOrderAmount float64   `json:"minOrderAmount"`
	MaxDiscount   *float64   `json:"maxDiscount,omitempty"`
	ExpiresAt     time.Time  `json:"expiresAt"`
	IsActive      bool       `json:"isActive"`
	UsageLimit    *int       `json:"usageLimit,omitempty"`
	UsedCount     int        `json:"usedCount"`
	Description   string     `json:"description,omitempty"`
	CreatedAt     string     `json:"createdAt,omitempty"`
}
