package admin

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/anwarshop/storefront/internal/docstore"
	"github.com/anwarshop/storefront/internal/domain"
	"github.com/anwarshop/storefront/pkg/errors"
)

// Service is the back-office side: CRUD over catalog collections, order
// status transitions, and user moderation, all straight against the
// remote document store. Last write wins; there is no conflict detection
// between two admins or an admin and a customer (accepted limitation).
type Service struct {
	client *docstore.Client
	logger *zap.Logger
}

func NewService(client *docstore.Client, logger *zap.Logger) *Service {
	return &Service{
		client: client,
		logger: logger,
	}
}

// --- Products ---

func (s *Service) CreateProduct(ctx context.Context, product domain.Product) (domain.Product, error) {
	if product.ID == "" {
		product.ID = uuid.NewString()
	}
	if err := s.client.PutRecord(ctx, docstore.CollectionProducts, product.ID, product); err != nil {
		return domain.Product{}, err
	}
	s.logger.Info("Product created", zap.String("id", product.ID), zap.String("name", product.Name))
	return product, nil
}

func (s *Service) UpdateProduct(ctx context.Context, product domain.Product) error {
	return s.client.PutRecord(ctx, docstore.CollectionProducts, product.ID, product)
}

func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	return s.client.DeleteRecord(ctx, docstore.CollectionProducts, id)
}

// --- Categories ---

func (s *Service) CreateCategory(ctx context.Context, category domain.Category) (domain.Category, error) {
	if category.ID == "" {
		category.ID = uuid.NewString()
	}
	if err := s.client.PutRecord(ctx, docstore.CollectionCategories, category.ID, category); err != nil {
		return domain.Category{}, err
	}
	return category, nil
}

func (s *Service) UpdateCategory(ctx context.Context, category domain.Category) error {
	return s.client.PutRecord(ctx, docstore.CollectionCategories, category.ID, category)
}

func (s *Service) DeleteCategory(ctx context.Context, id string) error {
	return s.client.DeleteRecord(ctx, docstore.CollectionCategories, id)
}

// --- Banners ---

func (s *Service) CreateBanner(ctx context.Context, banner domain.Banner) (domain.Banner, error) {
	if banner.ID == "" {
		banner.ID = uuid.NewString()
	}
	if err := s.client.PutRecord(ctx, docstore.CollectionBanners, banner.ID, banner); err != nil {
		return domain.Banner{}, err
	}
	return banner, nil
}

func (s *Service) UpdateBanner(ctx context.Context, banner domain.Banner) error {
	return s.client.PutRecord(ctx, docstore.CollectionBanners, banner.ID, banner)
}

func (s *Service) DeleteBanner(ctx context.Context, id string) error {
	return s.client.DeleteRecord(ctx, docstore.CollectionBanners, id)
}

// --- Coupons ---

func (s *Service) CreateCoupon(ctx context.Context, coupon domain.Coupon) (domain.Coupon, error) {
	if !coupon.Type.IsValid() {
		return domain.Coupon{}, &errors.ErrInvalidCoupon{Code: coupon.Code}
	}
	if coupon.ID == "" {
		coupon.ID = uuid.NewString()
	}
	if err := s.client.PutRecord(ctx, docstore.CollectionCoupons, coupon.ID, coupon); err != nil {
		return domain.Coupon{}, err
	}
	s.logger.Info("Coupon created", zap.String("code", coupon.Code), zap.String("type", string(coupon.Type)))
	return coupon, nil
}

func (s *Service) DeleteCoupon(ctx context.Context, id string) error {
	return s.client.DeleteRecord(ctx, docstore.CollectionCoupons, id)
}

// --- Settings ---

func (s *Service) UpdateSettings(ctx context.Context, settings domain.Settings) error {
	return s.client.PutSingleton(ctx, docstore.CollectionSettings, settings)
}

// --- Orders ---

// ListOrders fetches all orders, optionally filtered by status
func (s *Service) ListOrders(ctx context.Context, status domain.OrderStatus) ([]domain.Order, error) {
	raw, err := s.client.Collection(ctx, docstore.CollectionOrders)
	if err != nil {
		return nil, err
	}

	orders := make([]domain.Order, 0, len(raw))
	for _, record := range raw {
		var order domain.Order
		if err := json.Unmarshal(record, &order); err != nil {
			s.logger.Warn("Skipping malformed order record", zap.Error(err))
			continue
		}
		if status != "" && order.Status != status {
			continue
		}
		orders = append(orders, order)
	}
	return orders, nil
}

// UpdateOrderStatus validates the transition, then merge-patches only the
// status field so the rest of the immutable order snapshot is untouched.
func (s *Service) UpdateOrderStatus(ctx context.Context, orderID string, newStatus domain.OrderStatus) error {
	if !newStatus.IsValid() {
		return &errors.ErrInvalidStateTransition{From: "", To: newStatus}
	}

	var order domain.Order
	if err := s.client.GetRecord(ctx, docstore.CollectionOrders, orderID, &order); err != nil {
		return err
	}
	if !order.Status.CanTransitionTo(newStatus) {
		return &errors.ErrInvalidStateTransition{From: order.Status, To: newStatus}
	}

	if err := s.client.PatchRecord(ctx, docstore.CollectionOrders, orderID, map[string]interface{}{
		"status": newStatus,
	}); err != nil {
		return err
	}

	s.logger.Info("Order status updated",
		zap.String("order_id", orderID),
		zap.String("from", string(order.Status)),
		zap.String("to", string(newStatus)),
	)
	return nil
}

// --- Users ---

func (s *Service) ListUsers(ctx context.Context) ([]domain.User, error) {
	raw, err := s.client.Collection(ctx, docstore.CollectionUsers)
	if err != nil {
		return nil, err
	}
	users := make([]domain.User, 0, len(raw))
	for _, record := range raw {
		var user domain.User
		if err := json.Unmarshal(record, &user); err != nil {
			continue
		}
		users = append(users, user)
	}
	return users, nil
}

// SetUserStatus blocks or reactivates an account
func (s *Service) SetUserStatus(ctx context.Context, userID string, status domain.UserStatus) error {
	return s.client.PatchRecord(ctx, docstore.CollectionUsers, userID, map[string]interface{}{
		"status": status,
	})
}

// DeleteUser removes the account record; the next session recheck signs
// the user out.
func (s *Service) DeleteUser(ctx context.Context, userID string) error {
	return s.client.DeleteRecord(ctx, docstore.CollectionUsers, userID)
}
