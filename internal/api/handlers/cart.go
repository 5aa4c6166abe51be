package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/anwarshop/storefront/internal/cart"
	"github.com/anwarshop/storefront/internal/catalog"
	"github.com/anwarshop/storefront/internal/coupon"
	"github.com/anwarshop/storefront/internal/pricing"
	"github.com/anwarshop/storefront/pkg/errors"
)

// AddToCartRequest identifies the product to add
type AddToCartRequest struct {
	ProductID string `json:"product_id" binding:"required"`
}

// UpdateQuantityRequest carries the replacement quantity. Zero or less
// removes the line, so the field has no minimum.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// ApplyCouponRequest carries the user-supplied code. An empty code
// clears the active discount.
type ApplyCouponRequest struct {
	Code string `json:"code"`
}

// HandleGetCart handles GET /v1/cart. Totals are recomputed from current
// state on every call; governorate is an optional query for a shipping
// preview.
func HandleGetCart(carts *cart.Manager, coupons *coupon.Resolver, store *catalog.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		lines := carts.Cart()
		totals := pricing.ComputeTotals(lines, store.Settings().ShippingRates, c.Query("governorate"), coupons.Active())

		c.JSON(http.StatusOK, gin.H{
			"items":      lines,
			"item_count": carts.ItemCount(),
			"discount":   coupons.Active(),
			"totals":     totals,
		})
	}
}

// HandleAddToCart handles POST /v1/cart/items
func HandleAddToCart(carts *cart.Manager, store *catalog.Store, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AddToCartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		product, ok := store.ProductByID(req.ProductID)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}

		carts.AddToCart(product)
		c.JSON(http.StatusOK, gin.H{"items": carts.Cart()})
	}
}

// HandleUpdateQuantity handles PUT /v1/cart/items/:id
func HandleUpdateQuantity(carts *cart.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateQuantityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		carts.UpdateQuantity(c.Param("id"), req.Quantity)
		c.JSON(http.StatusOK, gin.H{"items": carts.Cart()})
	}
}

// HandleRemoveFromCart handles DELETE /v1/cart/items/:id
func HandleRemoveFromCart(carts *cart.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		carts.RemoveFromCart(c.Param("id"))
		c.JSON(http.StatusOK, gin.H{"items": carts.Cart()})
	}
}

// HandleApplyCoupon handles POST /v1/cart/coupon. The amount is resolved
// against the cart's subtotal at this moment and stays fixed until the
// code is re-applied or checkout completes.
func HandleApplyCoupon(carts *cart.Manager, coupons *coupon.Resolver, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ApplyCouponRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		subtotal := pricing.ComputeTotals(carts.Cart(), nil, "", nil).Subtotal
		discount, err := coupons.Apply(req.Code, subtotal)
		if err != nil {
			if _, ok := err.(*errors.ErrInvalidCoupon); ok {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid coupon code"})
				return
			}
			logger.Error("Failed to apply coupon", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"discount": discount})
	}
}

// HandleGetWishlist handles GET /v1/wishlist
func HandleGetWishlist(carts *cart.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"items": carts.Wishlist()})
	}
}

// HandleToggleWishlist handles POST /v1/wishlist/toggle
func HandleToggleWishlist(carts *cart.Manager, store *catalog.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AddToCartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		product, ok := store.ProductByID(req.ProductID)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}

		carts.ToggleWishlist(product)
		c.JSON(http.StatusOK, gin.H{
			"in_wishlist": carts.InWishlist(product.ID),
			"items":       carts.Wishlist(),
		})
	}
}
