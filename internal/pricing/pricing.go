package pricing

import "github.com/anwarshop/storefront/internal/domain"

// FallbackRegion is the shipping-rate table entry used when the selected
// governorate has no rate of its own.
const FallbackRegion = "Other"

// DefaultShippingRate applies when the rate table has no entry for the
// governorate and no fallback entry either.
const DefaultShippingRate = 50

// Totals is the derived money breakdown for a cart snapshot
type Totals struct {
	Subtotal       float64 `json:"subtotal"`
	Shipping       float64 `json:"shipping"`
	DiscountAmount float64 `json:"discountAmount"`
	Total          float64 `json:"total"`
}

// ComputeTotals derives the full money breakdown from a cart snapshot, a
// governorate-keyed shipping-rate table, and the optional active
// discount. It is a pure function: recomputed on every render, no state.
//
// Shipping is zero only for an empty cart. Once any line exists the
// resolved rate is charged unconditionally, even over a zero subtotal.
// The grand total is clamped at zero; a coupon never produces a negative
// order total.
func ComputeTotals(cart []domain.CartLine, rates map[string]float64, governorate string, discount *domain.ActiveDiscount) Totals {
	var t Totals

	for _, line := range cart {
		t.Subtotal += line.Price * float64(line.Quantity)
	}

	if len(cart) > 0 {
		t.Shipping = shippingRate(rates, governorate)
	}

	if discount != nil {
		t.DiscountAmount = discount.Amount
		// A fixed coupon larger than the order is worth only the order;
		// the reported discount never exceeds what it actually removed.
		if max := t.Subtotal + t.Shipping; t.DiscountAmount > max {
			t.DiscountAmount = max
		}
	}

	t.Total = t.Subtotal + t.Shipping - t.DiscountAmount
	if t.Total < 0 {
		t.Total = 0
	}
	return t
}

// DiscountAmount resolves a coupon's monetary value against a subtotal at
// application time. Percentage coupons scale with the subtotal; fixed
// coupons apply verbatim. ComputeTotals clamps the applied amount so it
// can never drive the order total negative.
func DiscountAmount(coupon domain.Coupon, subtotal float64) float64 {
	switch coupon.Type {
	case domain.CouponTypePercentage:
		return subtotal * (coupon.Discount / 100)
	case domain.CouponTypeFixed:
		return coupon.Discount
	default:
		return 0
	}
}

func shippingRate(rates map[string]float64, governorate string) float64 {
	if rate, ok := rates[governorate]; ok {
		return rate
	}
	if rate, ok := rates[FallbackRegion]; ok {
		return rate
	}
	return DefaultShippingRate
}
