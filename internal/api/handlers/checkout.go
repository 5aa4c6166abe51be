package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/anwarshop/storefront/internal/admin"
	"github.com/anwarshop/storefront/internal/checkout"
	"github.com/anwarshop/storefront/internal/domain"
	"github.com/anwarshop/storefront/internal/identity"
	"github.com/anwarshop/storefront/pkg/errors"
)

// CheckoutRequest carries the billing details for one submission attempt
type CheckoutRequest struct {
	FirstName   string `json:"first_name" binding:"required"`
	LastName    string `json:"last_name" binding:"required"`
	Phone       string `json:"phone" binding:"required"`
	Address     string `json:"address" binding:"required"`
	Governorate string `json:"governorate" binding:"required"`
	Note        string `json:"note"`
}

// HandleCheckout handles POST /v1/checkout
func HandleCheckout(svc *checkout.Service, sessions *identity.Watcher, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CheckoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		userID := domain.GuestUserID
		if session := sessions.Current(); session != nil {
			if err := sessions.Recheck(c.Request.Context()); err != nil {
				logger.Warn("Account not allowed to order", zap.String("user_id", session.ID), zap.Error(err))
				c.JSON(http.StatusForbidden, gin.H{"error": "account is not allowed to order"})
				return
			}
			userID = session.ID
		}

		svc.SetNote(req.Note)

		order, err := svc.Submit(c.Request.Context(), userID, domain.CustomerInfo{
			FirstName:   req.FirstName,
			LastName:    req.LastName,
			Phone:       req.Phone,
			Address:     req.Address,
			Governorate: req.Governorate,
		})
		if err != nil {
			if _, ok := err.(*errors.ErrEmptyCart); ok {
				c.JSON(http.StatusBadRequest, gin.H{"error": "cart is empty"})
				return
			}
			logger.Error("Checkout failed", zap.Error(err))
			// The cart, discount, and note are untouched; the client may retry
			c.JSON(http.StatusBadGateway, gin.H{"error": "failed to place order, please try again"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"order_id": order.ID,
			"status":   order.Status,
			"total":    order.Total,
		})
	}
}

// HandleMyOrders handles GET /v1/orders for the signed-in customer
func HandleMyOrders(adminSvc *admin.Service, sessions *identity.Watcher, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Current()
		if session == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "sign in to view orders"})
			return
		}

		orders, err := adminSvc.ListOrders(c.Request.Context(), "")
		if err != nil {
			logger.Error("Failed to list orders", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		mine := make([]domain.Order, 0)
		for _, order := range orders {
			if order.UserID == session.ID {
				mine = append(mine, order)
			}
		}
		c.JSON(http.StatusOK, gin.H{"orders": mine})
	}
}
