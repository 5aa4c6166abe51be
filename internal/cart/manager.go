package cart

import (
	"sync"

	"go.uber.org/zap"

	"github.com/anwarshop/storefront/internal/domain"
	"github.com/anwarshop/storefront/internal/localstore"
)

// Manager owns the canonical in-memory cart and wishlist. Mutations go
// through its methods only; each one re-serializes the affected
// collection to the local persistent store so a restart reconstructs the
// same state. Persistence is best-effort: a failed Save is logged and the
// in-memory state stays authoritative for the running session.
type Manager struct {
	mu       sync.Mutex
	cart     []domain.CartLine
	wishlist []domain.Product
	local    localstore.Store
	logger   *zap.Logger
}

// NewManager creates a manager and restores cart and wishlist from the
// local persistent store. Restore failures degrade to empty collections.
func NewManager(local localstore.Store, logger *zap.Logger) *Manager {
	m := &Manager{
		local:  local,
		logger: logger,
	}
	if err := local.Load(localstore.KeyCart, &m.cart); err != nil {
		logger.Warn("Failed to restore cart", zap.Error(err))
		m.cart = nil
	}
	if err := local.Load(localstore.KeyWishlist, &m.wishlist); err != nil {
		logger.Warn("Failed to restore wishlist", zap.Error(err))
		m.wishlist = nil
	}
	return m
}

// AddToCart merges the product into the cart by id: an existing line has
// its quantity incremented by one, otherwise a new line starts at one.
func (m *Manager) AddToCart(product domain.Product) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.cart {
		if m.cart[i].ID == product.ID {
			m.cart[i].Quantity++
			m.persistCart()
			return
		}
	}
	m.cart = append(m.cart, domain.CartLine{Product: product, Quantity: 1})
	m.persistCart()
}

// RemoveFromCart deletes the line if present; absent ids are a no-op
func (m *Manager) RemoveFromCart(productID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.removeLocked(productID)
	m.persistCart()
}

// UpdateQuantity replaces a line's quantity. A quantity of zero or less
// removes the line; a zero-quantity line is never persisted.
func (m *Manager) UpdateQuantity(productID string, quantity int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if quantity <= 0 {
		m.removeLocked(productID)
		m.persistCart()
		return
	}
	for i := range m.cart {
		if m.cart[i].ID == productID {
			m.cart[i].Quantity = quantity
			break
		}
	}
	m.persistCart()
}

// ClearCart empties the cart. Called only after a confirmed order write.
func (m *Manager) ClearCart() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cart = nil
	m.persistCart()
}

// Cart returns a copy of the current cart lines
func (m *Manager) Cart() []domain.CartLine {
	m.mu.Lock()
	defer m.mu.Unlock()
	snapshot := make([]domain.CartLine, len(m.cart))
	copy(snapshot, m.cart)
	return snapshot
}

// ItemCount returns the total quantity across all lines
func (m *Manager) ItemCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, line := range m.cart {
		count += line.Quantity
	}
	return count
}

// ToggleWishlist flips the product's wishlist membership: present becomes
// absent, absent becomes present.
func (m *Manager) ToggleWishlist(product domain.Product) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.wishlist {
		if m.wishlist[i].ID == product.ID {
			m.wishlist = append(m.wishlist[:i], m.wishlist[i+1:]...)
			m.persistWishlist()
			return
		}
	}
	m.wishlist = append(m.wishlist, product)
	m.persistWishlist()
}

// InWishlist reports whether the product id is currently wishlisted
func (m *Manager) InWishlist(productID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.wishlist {
		if p.ID == productID {
			return true
		}
	}
	return false
}

// Wishlist returns a copy of the current wishlist
func (m *Manager) Wishlist() []domain.Product {
	m.mu.Lock()
	defer m.mu.Unlock()
	snapshot := make([]domain.Product, len(m.wishlist))
	copy(snapshot, m.wishlist)
	return snapshot
}

func (m *Manager) removeLocked(productID string) {
	for i := range m.cart {
		if m.cart[i].ID == productID {
			m.cart = append(m.cart[:i], m.cart[i+1:]...)
			return
		}
	}
}

func (m *Manager) persistCart() {
	if err := m.local.Save(localstore.KeyCart, m.cart); err != nil {
		m.logger.Warn("Failed to persist cart", zap.Error(err))
	}
}

func (m *Manager) persistWishlist() {
	if err := m.local.Save(localstore.KeyWishlist, m.wishlist); err != nil {
		m.logger.Warn("Failed to persist wishlist", zap.Error(err))
	}
}
