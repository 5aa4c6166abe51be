package coupon

import (
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/anwarshop/storefront/internal/domain"
	"github.com/anwarshop/storefront/internal/pricing"
	"github.com/anwarshop/storefront/pkg/errors"
)

// Resolver validates user-supplied codes against the fetched coupon list
// and holds the single active-discount slot the pricing engine reads.
//
// The resolved amount is fixed at application time against that moment's
// subtotal. Changing the cart afterward does not recompute it; the user
// must re-apply the code for a fresh amount.
type Resolver struct {
	mu      sync.Mutex
	coupons []domain.Coupon
	active  *domain.ActiveDiscount
	logger  *zap.Logger
}

func NewResolver(coupons []domain.Coupon, logger *zap.Logger) *Resolver {
	return &Resolver{
		coupons: coupons,
		logger:  logger,
	}
}

// Apply resolves a code against the coupon list at the given subtotal.
// An empty code (after trimming) clears the active discount and returns
// nil. An unknown code clears the active discount and returns
// ErrInvalidCoupon. Matching is case-insensitive exact.
func (r *Resolver) Apply(code string, subtotal float64) (*domain.ActiveDiscount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	code = strings.TrimSpace(code)
	if code == "" {
		r.active = nil
		return nil, nil
	}

	for _, c := range r.coupons {
		if strings.EqualFold(c.Code, code) {
			r.active = &domain.ActiveDiscount{
				Code:   c.Code,
				Amount: pricing.DiscountAmount(c, subtotal),
			}
			r.logger.Info("Coupon applied",
				zap.String("code", c.Code),
				zap.Float64("amount", r.active.Amount),
			)
			return r.active, nil
		}
	}

	r.active = nil
	return nil, &errors.ErrInvalidCoupon{Code: code}
}

// Active returns the currently applied discount, or nil
func (r *Resolver) Active() *domain.ActiveDiscount {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active
}

// Clear drops the active discount. Called after a successful checkout.
func (r *Resolver) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.active = nil
}
