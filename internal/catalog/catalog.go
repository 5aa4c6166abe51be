package catalog

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/anwarshop/storefront/internal/docstore"
	"github.com/anwarshop/storefront/internal/domain"
)

// Store is the explicitly-owned application state behind the storefront:
// products, categories, banners, coupons, and settings fetched from the
// remote document store. It replaces ambient shared state; components get
// a *Store handed to them and read through its methods.
type Store struct {
	mu         sync.RWMutex
	products   []domain.Product
	categories []domain.Category
	banners    []domain.Banner
	coupons    []domain.Coupon
	settings   domain.Settings
	loading    bool

	client *docstore.Client
	logger *zap.Logger
}

func NewStore(client *docstore.Client, logger *zap.Logger) *Store {
	return &Store{
		client:  client,
		logger:  logger,
		loading: true,
	}
}

// Load fetches all storefront collections as one batched set of parallel
// requests. Individual completions arrive in any order; Loading() reports
// false only after every one has resolved. A failed fetch degrades that
// collection to empty rather than failing the whole load.
func (s *Store) Load(ctx context.Context) {
	var wg sync.WaitGroup

	wg.Add(5)
	go func() {
		defer wg.Done()
		products := decodeCollection[domain.Product](ctx, s.client, docstore.CollectionProducts, s.logger)
		s.mu.Lock()
		s.products = products
		s.mu.Unlock()
	}()
	go func() {
		defer wg.Done()
		categories := decodeCollection[domain.Category](ctx, s.client, docstore.CollectionCategories, s.logger)
		s.mu.Lock()
		s.categories = categories
		s.mu.Unlock()
	}()
	go func() {
		defer wg.Done()
		banners := decodeCollection[domain.Banner](ctx, s.client, docstore.CollectionBanners, s.logger)
		s.mu.Lock()
		s.banners = banners
		s.mu.Unlock()
	}()
	go func() {
		defer wg.Done()
		coupons := decodeCollection[domain.Coupon](ctx, s.client, docstore.CollectionCoupons, s.logger)
		s.mu.Lock()
		s.coupons = coupons
		s.mu.Unlock()
	}()
	go func() {
		defer wg.Done()
		var settings domain.Settings
		if err := s.client.GetSingleton(ctx, docstore.CollectionSettings, &settings); err != nil {
			s.logger.Warn("Failed to fetch settings", zap.Error(err))
		}
		s.mu.Lock()
		s.settings = settings
		s.mu.Unlock()
	}()

	wg.Wait()

	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()
}

// Loading reports whether the initial batched load is still in flight
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Products returns all catalog products
func (s *Store) Products() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Product(nil), s.products...)
}

// ProductByID looks up one product
func (s *Store) ProductByID(id string) (domain.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}

// ProductsByCategory filters products by category id
func (s *Store) ProductsByCategory(categoryID string) []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Product
	for _, p := range s.products {
		if p.CategoryID == categoryID {
			out = append(out, p)
		}
	}
	return out
}

// Trending returns products flagged as trending
func (s *Store) Trending() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Product
	for _, p := range s.products {
		if p.IsTrending {
			out = append(out, p)
		}
	}
	return out
}

// Popular returns products flagged as popular
func (s *Store) Popular() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Product
	for _, p := range s.products {
		if p.IsPopular {
			out = append(out, p)
		}
	}
	return out
}

// Search matches products whose name or description contains the query,
// case-insensitively. An empty query matches nothing.
func (s *Store) Search(query string) []domain.Product {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Product
	for _, p := range s.products {
		if strings.Contains(strings.ToLower(p.Name), query) ||
			strings.Contains(strings.ToLower(p.Description), query) {
			out = append(out, p)
		}
	}
	return out
}

// Categories returns all categories
func (s *Store) Categories() []domain.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Category(nil), s.categories...)
}

// Banners returns all banners
func (s *Store) Banners() []domain.Banner {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Banner(nil), s.banners...)
}

// Coupons returns the fetched coupon list
func (s *Store) Coupons() []domain.Coupon {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Coupon(nil), s.coupons...)
}

// Settings returns the admin-configured settings document
func (s *Store) Settings() domain.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// decodeCollection fetches a collection and unmarshals each record,
// skipping records that do not fit the type. Fetch failures yield an
// empty slice so the storefront renders a degraded page, never a blank
// one.
func decodeCollection[T any](ctx context.Context, client *docstore.Client, name string, logger *zap.Logger) []T {
	raw, err := client.Collection(ctx, name)
	if err != nil {
		logger.Warn("Failed to fetch collection", zap.String("collection", name), zap.Error(err))
		return nil
	}
	out := make([]T, 0, len(raw))
	for _, record := range raw {
		var v T
		if err := json.Unmarshal(record, &v); err != nil {
			logger.Warn("Skipping malformed record", zap.String("collection", name), zap.Error(err))
			continue
		}
		out = append(out, v)
	}
	return out
}
