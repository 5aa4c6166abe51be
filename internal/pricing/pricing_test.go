package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/anwarshop/storefront/internal/domain"
)

func line(id string, price float64, qty int) domain.CartLine {
	return domain.CartLine{
		Product:  domain.Product{ID: id, Name: id, Price: price},
		Quantity: qty,
	}
}

func TestComputeTotalsEmptyCart(t *testing.T) {
	totals := ComputeTotals(nil, map[string]float64{"Cairo": 50}, "Cairo", nil)

	assert.Equal(t, 0.0, totals.Subtotal)
	assert.Equal(t, 0.0, totals.Shipping, "shipping is zero only for an empty cart")
	assert.Equal(t, 0.0, totals.Total)
}

func TestComputeTotalsSubtotalAndShipping(t *testing.T) {
	cart := []domain.CartLine{line("p1", 100, 2)}
	rates := map[string]float64{"Cairo": 50}

	totals := ComputeTotals(cart, rates, "Cairo", nil)

	assert.Equal(t, 200.0, totals.Subtotal)
	assert.Equal(t, 50.0, totals.Shipping)
	assert.Equal(t, 250.0, totals.Total)
}

func TestComputeTotalsPercentageCoupon(t *testing.T) {
	cart := []domain.CartLine{line("p1", 100, 2)}
	rates := map[string]float64{"Cairo": 50}
	coupon := domain.Coupon{Code: "SAVE10", Type: domain.CouponTypePercentage, Discount: 10}

	amount := DiscountAmount(coupon, 200)
	assert.Equal(t, 20.0, amount)

	totals := ComputeTotals(cart, rates, "Cairo", &domain.ActiveDiscount{Code: "SAVE10", Amount: amount})
	assert.Equal(t, 20.0, totals.DiscountAmount)
	assert.Equal(t, 230.0, totals.Total)
}

func TestComputeTotalsFixedCouponClamped(t *testing.T) {
	cart := []domain.CartLine{line("p1", 100, 2)}
	rates := map[string]float64{"Cairo": 50}
	coupon := domain.Coupon{Code: "MEGA", Type: domain.CouponTypeFixed, Discount: 1000}

	amount := DiscountAmount(coupon, 200)
	totals := ComputeTotals(cart, rates, "Cairo", &domain.ActiveDiscount{Code: "MEGA", Amount: amount})

	assert.Equal(t, 0.0, totals.Total, "a coupon must never produce a negative total")
	assert.Equal(t, 250.0, totals.DiscountAmount, "reported discount never exceeds order value")
}

func TestShippingFallbacks(t *testing.T) {
	cart := []domain.CartLine{line("p1", 10, 1)}

	t.Run("governorate rate", func(t *testing.T) {
		totals := ComputeTotals(cart, map[string]float64{"Giza": 35, "Other": 60}, "Giza", nil)
		assert.Equal(t, 35.0, totals.Shipping)
	})

	t.Run("other fallback", func(t *testing.T) {
		totals := ComputeTotals(cart, map[string]float64{"Giza": 35, "Other": 60}, "Aswan", nil)
		assert.Equal(t, 60.0, totals.Shipping)
	})

	t.Run("hard default", func(t *testing.T) {
		totals := ComputeTotals(cart, map[string]float64{}, "Aswan", nil)
		assert.Equal(t, float64(DefaultShippingRate), totals.Shipping)
	})

	t.Run("nil rate table", func(t *testing.T) {
		totals := ComputeTotals(cart, nil, "", nil)
		assert.Equal(t, float64(DefaultShippingRate), totals.Shipping)
	})
}

func TestShippingChargedOverZeroSubtotal(t *testing.T) {
	// A free item still incurs shipping once it is in the cart
	cart := []domain.CartLine{line("freebie", 0, 1)}
	totals := ComputeTotals(cart, map[string]float64{"Cairo": 50}, "Cairo", nil)

	assert.Equal(t, 0.0, totals.Subtotal)
	assert.Equal(t, 50.0, totals.Shipping)
	assert.Equal(t, 50.0, totals.Total)
}

func TestTotalNeverNegative(t *testing.T) {
	cases := []struct {
		name     string
		cart     []domain.CartLine
		discount float64
	}{
		{"discount equals order", []domain.CartLine{line("p1", 50, 2)}, 150},
		{"discount exceeds order", []domain.CartLine{line("p1", 1, 1)}, 500},
		{"no discount", []domain.CartLine{line("p1", 9.99, 3)}, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var discount *domain.ActiveDiscount
			if tc.discount > 0 {
				discount = &domain.ActiveDiscount{Code: "X", Amount: tc.discount}
			}
			totals := ComputeTotals(tc.cart, map[string]float64{"Other": 50}, "Cairo", discount)
			assert.GreaterOrEqual(t, totals.Total, 0.0)
			assert.GreaterOrEqual(t, totals.Subtotal, 0.0)
		})
	}
}

func TestDiscountAmountUnknownType(t *testing.T) {
	coupon := domain.Coupon{Code: "X", Type: "bogus", Discount: 10}
	assert.Equal(t, 0.0, DiscountAmount(coupon, 100))
}
