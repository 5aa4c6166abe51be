package checkout

import (
	"context"
	"crypto/rand"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/anwarshop/storefront/internal/cart"
	"github.com/anwarshop/storefront/internal/catalog"
	"github.com/anwarshop/storefront/internal/coupon"
	"github.com/anwarshop/storefront/internal/docstore"
	"github.com/anwarshop/storefront/internal/domain"
	"github.com/anwarshop/storefront/internal/pricing"
	"github.com/anwarshop/storefront/pkg/errors"
)

// State is the checkout submission state
type State string

const (
	StateIdle       State = "idle"
	StateSubmitting State = "submitting"
	StateSuccess    State = "success"
	StateFailed     State = "failed"
)

// Service assembles the immutable order snapshot and writes it once to
// the remote document store. Each submission attempt gets a fresh order
// id; the attempt token is minted once per checkout attempt and reused
// across retries so logically duplicate orders can be reconciled later.
type Service struct {
	mu           sync.Mutex
	state        State
	attemptToken string
	note         string

	client   *docstore.Client
	carts    *cart.Manager
	coupons  *coupon.Resolver
	catalogs *catalog.Store
	logger   *zap.Logger
}

func NewService(client *docstore.Client, carts *cart.Manager, coupons *coupon.Resolver, catalogs *catalog.Store, logger *zap.Logger) *Service {
	return &Service{
		state:    StateIdle,
		client:   client,
		carts:    carts,
		coupons:  coupons,
		catalogs: catalogs,
		logger:   logger,
	}
}

// State returns the current submission state
func (s *Service) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// SetNote stores the customer's order note until checkout completes
func (s *Service) SetNote(note string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.note = note
}

// Note returns the pending order note
func (s *Service) Note() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.note
}

// Submit performs one checkout attempt: snapshot the cart, compute totals
// at submission time, and write the order once. There is no retry inside;
// a user-triggered retry after failure is a distinct attempt with a new
// order id but the same attempt token.
//
// On success the cart, active discount, and note are cleared. On failure
// all three are left untouched so the user can retry.
func (s *Service) Submit(ctx context.Context, userID string, info domain.CustomerInfo) (*domain.Order, error) {
	lines := s.carts.Cart()
	if len(lines) == 0 {
		return nil, &errors.ErrEmptyCart{}
	}

	s.mu.Lock()
	if s.state == StateSubmitting {
		s.mu.Unlock()
		return nil, fmt.Errorf("submission already in progress")
	}
	s.state = StateSubmitting
	if s.attemptToken == "" {
		s.attemptToken = uuid.NewString()
	}
	token := s.attemptToken
	note := s.note
	s.mu.Unlock()

	order := s.buildOrder(lines, userID, info, note, token)

	if err := s.client.PutRecord(ctx, docstore.CollectionOrders, order.ID, order); err != nil {
		s.mu.Lock()
		s.state = StateFailed
		s.mu.Unlock()
		s.logger.Error("Failed to submit order",
			zap.String("order_id", order.ID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to submit order: %w", err)
	}

	s.carts.ClearCart()
	s.coupons.Clear()

	s.mu.Lock()
	s.state = StateSuccess
	s.attemptToken = ""
	s.note = ""
	s.mu.Unlock()

	s.logger.Info("Order placed",
		zap.String("order_id", order.ID),
		zap.String("user_id", userID),
		zap.Float64("total", order.Total),
	)
	return order, nil
}

// buildOrder assembles the immutable snapshot: items copied by value,
// totals evaluated now, fresh id, ISO timestamp, status pending.
func (s *Service) buildOrder(lines []domain.CartLine, userID string, info domain.CustomerInfo, note, token string) *domain.Order {
	if userID == "" {
		userID = domain.GuestUserID
	}

	items := make([]domain.OrderItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, domain.OrderItem{
			ID:       line.ID,
			Name:     line.Name,
			Price:    line.Price,
			Quantity: line.Quantity,
			Image:    line.Image,
		})
	}

	discount := s.coupons.Active()
	settings := s.catalogs.Settings()
	totals := pricing.ComputeTotals(lines, settings.ShippingRates, info.Governorate, discount)

	return &domain.Order{
		ID:           newOrderID(),
		UserID:       userID,
		AttemptToken: token,
		CustomerInfo: info,
		Items:        items,
		Note:         note,
		Discount:     discount,
		Subtotal:     totals.Subtotal,
		Shipping:     totals.Shipping,
		Total:        totals.Total,
		Date:         time.Now().UTC().Format(time.RFC3339),
		Status:       domain.OrderStatusPending,
	}
}

const orderIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// newOrderID generates a short display-friendly id like ORD-7K2M9X
func newOrderID() string {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing is effectively unreachable; fall back to a UUID slice
		return "ORD-" + strings.ToUpper(uuid.NewString()[:6])
	}
	for i, b := range buf {
		buf[i] = orderIDAlphabet[int(b)%len(orderIDAlphabet)]
	}
	return "ORD-" + string(buf)
}
