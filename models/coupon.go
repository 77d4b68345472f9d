package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/storelane/storefront-api/pricing"
	"github.com/storelane/storefront-api/utils"
)

type Coupon struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Code          string         `gorm:"uniqueIndex;not null" json:"code"`
	DiscountType  string         `gorm:"type:VARCHAR(12);not null" json:"discount_type"` // PERCENTAGE or FIXED
	DiscountValue float64        `gorm:"not null" json:"discount_value"`
	MinOrderValue float64        `json:"min_order_value"` // 0 = no minimum
	MaxDiscount   float64        `json:"max_discount"`    // caps a percentage discount, 0 = uncapped
	StartDate     time.Time      `json:"start_date"`
	EndDate       time.Time      `json:"end_date"`
	UsageLimit    int            `json:"usage_limit"` // 0 = unlimited
	UsedCount     int            `json:"used_count"`
	IsActive      bool           `gorm:"default:true" json:"is_active"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// Check runs the eligibility rules against a cart subtotal. First failure
// wins; order is active flag, date window, usage limit, minimum order value.
// It never mutates usage — that happens only inside the checkout transaction.
func (cp *Coupon) Check(subtotal float64, now time.Time) error {
	if !cp.IsActive {
		return utils.NewCouponError(utils.CodeCouponInactive, "coupon is not active")
	}
	if now.Before(cp.StartDate) || now.After(cp.EndDate) {
		return utils.NewCouponError(utils.CodeCouponExpired, "coupon is not valid at this time")
	}
	if cp.UsageLimit > 0 && cp.UsedCount >= cp.UsageLimit {
		return utils.NewCouponError(utils.CodeCouponExhausted, "coupon usage limit reached")
	}
	if cp.MinOrderValue > 0 && subtotal < cp.MinOrderValue {
		return utils.NewCouponError(utils.CodeMinimumNotMet, "order total does not meet the coupon minimum")
	}
	return nil
}

// Descriptor converts the coupon into the discount shape the pricing engine
// consumes.
func (cp *Coupon) Descriptor() *pricing.Discount {
	return &pricing.Discount{
		Type:        cp.DiscountType,
		Value:       cp.DiscountValue,
		MaxDiscount: cp.MaxDiscount,
	}
}
