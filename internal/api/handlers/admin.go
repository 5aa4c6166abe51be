package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/anwarshop/storefront/internal/admin"
	"github.com/anwarshop/storefront/internal/domain"
	"github.com/anwarshop/storefront/pkg/errors"
)

// CreateCouponRequest represents the new coupon payload
type CreateCouponRequest struct {
	Code     string  `json:"code" binding:"required"`
	Type     string  `json:"type" binding:"required,oneof=percentage fixed"`
	Discount float64 `json:"discount" binding:"required,gt=0"`
}

// UpdateOrderStatusRequest carries the target status
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// SetUserStatusRequest carries the target account state
type SetUserStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active blocked"`
}

// HandleCreateProduct handles POST /v1/admin/products
func HandleCreateProduct(svc *admin.Service, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product domain.Product
		if err := c.ShouldBindJSON(&product); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}
		if product.Name == "" || product.Price < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name is required and price must be non-negative"})
			return
		}

		created, err := svc.CreateProduct(c.Request.Context(), product)
		if err != nil {
			logger.Error("Failed to create product", zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "failed to create product"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"product": created})
	}
}

// HandleUpdateProduct handles PUT /v1/admin/products/:id
func HandleUpdateProduct(svc *admin.Service, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product domain.Product
		if err := c.ShouldBindJSON(&product); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}
		product.ID = c.Param("id")

		if err := svc.UpdateProduct(c.Request.Context(), product); err != nil {
			logger.Error("Failed to update product", zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "failed to update product"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"product": product})
	}
}

// HandleDeleteProduct handles DELETE /v1/admin/products/:id
func HandleDeleteProduct(svc *admin.Service, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
			logger.Error("Failed to delete product", zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "failed to delete product"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// HandleCreateCategory handles POST /v1/admin/categories
func HandleCreateCategory(svc *admin.Service, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var category domain.Category
		if err := c.ShouldBindJSON(&category); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		created, err := svc.CreateCategory(c.Request.Context(), category)
		if err != nil {
			logger.Error("Failed to create category", zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "failed to create category"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"category": created})
	}
}

// HandleUpdateCategory handles PUT /v1/admin/categories/:id
func HandleUpdateCategory(svc *admin.Service, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var category domain.Category
		if err := c.ShouldBindJSON(&category); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}
		category.ID = c.Param("id")

		if err := svc.UpdateCategory(c.Request.Context(), category); err != nil {
			logger.Error("Failed to update category", zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "failed to update category"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"category": category})
	}
}

// HandleDeleteCategory handles DELETE /v1/admin/categories/:id
func HandleDeleteCategory(svc *admin.Service, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
			logger.Error("Failed to delete category", zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "failed to delete category"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// HandleCreateBanner handles POST /v1/admin/banners
func HandleCreateBanner(svc *admin.Service, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var banner domain.Banner
		if err := c.ShouldBindJSON(&banner); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		created, err := svc.CreateBanner(c.Request.Context(), banner)
		if err != nil {
			logger.Error("Failed to create banner", zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "failed to create banner"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"banner": created})
	}
}

// HandleUpdateBanner handles PUT /v1/admin/banners/:id
func HandleUpdateBanner(svc *admin.Service, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var banner domain.Banner
		if err := c.ShouldBindJSON(&banner); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}
		banner.ID = c.Param("id")

		if err := svc.UpdateBanner(c.Request.Context(), banner); err != nil {
			logger.Error("Failed to update banner", zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "failed to update banner"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"banner": banner})
	}
}

// HandleDeleteBanner handles DELETE /v1/admin/banners/:id
func HandleDeleteBanner(svc *admin.Service, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.DeleteBanner(c.Request.Context(), c.Param("id")); err != nil {
			logger.Error("Failed to delete banner", zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "failed to delete banner"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// HandleCreateCoupon handles POST /v1/admin/coupons
func HandleCreateCoupon(svc *admin.Service, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateCouponRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		couponType := domain.CouponType(req.Type)
		if couponType == domain.CouponTypePercentage && req.Discount > 100 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "percentage discount cannot exceed 100"})
			return
		}

		created, err := svc.CreateCoupon(c.Request.Context(), domain.Coupon{
			Code:     req.Code,
			Type:     couponType,
			Discount: req.Discount,
		})
		if err != nil {
			logger.Error("Failed to create coupon", zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "failed to create coupon"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"coupon": created})
	}
}

// HandleDeleteCoupon handles DELETE /v1/admin/coupons/:id
func HandleDeleteCoupon(svc *admin.Service, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.DeleteCoupon(c.Request.Context(), c.Param("id")); err != nil {
			logger.Error("Failed to delete coupon", zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "failed to delete coupon"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// HandleUpdateSettings handles PUT /v1/admin/settings
func HandleUpdateSettings(svc *admin.Service, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var settings domain.Settings
		if err := c.ShouldBindJSON(&settings); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		if err := svc.UpdateSettings(c.Request.Context(), settings); err != nil {
			logger.Error("Failed to update settings", zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "failed to update settings"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"settings": settings})
	}
}

// HandleListOrders handles GET /v1/admin/orders
func HandleListOrders(svc *admin.Service, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		statusStr := c.Query("status")
		if statusStr != "" && !domain.OrderStatus(statusStr).IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}

		orders, err := svc.ListOrders(c.Request.Context(), domain.OrderStatus(statusStr))
		if err != nil {
			logger.Error("Failed to list orders", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"orders": orders})
	}
}

// HandleUpdateOrderStatus handles POST /v1/admin/orders/:id/status
func HandleUpdateOrderStatus(svc *admin.Service, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		status := domain.OrderStatus(req.Status)
		if !status.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}

		if err := svc.UpdateOrderStatus(c.Request.Context(), c.Param("id"), status); err != nil {
			switch err.(type) {
			case *errors.ErrInvalidStateTransition:
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			case *errors.ErrNotFound:
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			default:
				logger.Error("Failed to update order status", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			}
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"id":     c.Param("id"),
			"status": status,
		})
	}
}

// HandleListUsers handles GET /v1/admin/users
func HandleListUsers(svc *admin.Service, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := svc.ListUsers(c.Request.Context())
		if err != nil {
			logger.Error("Failed to list users", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"users": users})
	}
}

// HandleSetUserStatus handles POST /v1/admin/users/:id/status
func HandleSetUserStatus(svc *admin.Service, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SetUserStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		if err := svc.SetUserStatus(c.Request.Context(), c.Param("id"), domain.UserStatus(req.Status)); err != nil {
			logger.Error("Failed to set user status", zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "failed to update user"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"id":     c.Param("id"),
			"status": req.Status,
		})
	}
}

// HandleDeleteUser handles DELETE /v1/admin/users/:id
func HandleDeleteUser(svc *admin.Service, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
			logger.Error("Failed to delete user", zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "failed to delete user"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}
