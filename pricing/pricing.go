package pricing

import (
	"math"

	"github.com/storelane/storefront-api/utils"
)

// Discount types copied into coupons and order snapshots.
const (
	DiscountPercentage = "PERCENTAGE"
	DiscountFixed      = "FIXED"
)

// Line is one priced cart position.
type Line struct {
	Price    float64
	Quantity int
}

// Discount is the descriptor a validated coupon resolves to. MaxDiscount
// caps a percentage discount; zero means uncapped.
type Discount struct {
	Type        string
	Value       float64
	MaxDiscount float64
}

// Policy supplies the tax and shipping rules applied at checkout.
type Policy struct {
	TaxRate               float64
	ShippingFlatRate      float64
	FreeShippingThreshold float64
}

// Totals is the full price breakdown of a checkout.
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Discount float64 `json:"discount"`
	Tax      float64 `json:"tax"`
	Shipping float64 `json:"shipping"`
	Total    float64 `json:"total"`
}

// Round2 rounds to 2 decimal places, half up.
func Round2(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}

// ComputeTotals prices a set of cart lines under an optional discount and the
// given policy. Pure: no side effects, fails only on malformed input.
func ComputeTotals(lines []Line, discount *Discount, policy Policy) (Totals, error) {
	var subtotal float64
	for _, line := range lines {
		if line.Price < 0 {
			return Totals{}, utils.NewValidationError("line price must not be negative")
		}
		if line.Quantity <= 0 {
			return Totals{}, utils.NewValidationError("line quantity must be positive")
		}
		subtotal += line.Price * float64(line.Quantity)
	}
	subtotal = Round2(subtotal)

	var off float64
	if discount != nil {
		switch discount.Type {
		case DiscountFixed:
			off = math.Min(discount.Value, subtotal)
		case DiscountPercentage:
			off = subtotal * discount.Value / 100
			if discount.MaxDiscount > 0 {
				off = math.Min(off, discount.MaxDiscount)
			}
		default:
			return Totals{}, utils.NewValidationError("unknown discount type %q", discount.Type)
		}
		off = Round2(off)
	}

	discounted := subtotal - off
	tax := Round2(discounted * policy.TaxRate)

	shipping := policy.ShippingFlatRate
	if policy.FreeShippingThreshold > 0 && discounted >= policy.FreeShippingThreshold {
		shipping = 0
	}

	total := Round2(discounted + tax + shipping)
	if total < 0 {
		total = 0
	}

	return Totals{
		Subtotal: subtotal,
		Discount: off,
		Tax:      tax,
		Shipping: shipping,
		Total:    total,
	}, nil
}
