package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/anwarshop/storefront/internal/admin"
	"github.com/anwarshop/storefront/internal/api/handlers"
	"github.com/anwarshop/storefront/internal/api/middleware"
	"github.com/anwarshop/storefront/internal/cart"
	"github.com/anwarshop/storefront/internal/catalog"
	"github.com/anwarshop/storefront/internal/checkout"
	"github.com/anwarshop/storefront/internal/config"
	"github.com/anwarshop/storefront/internal/coupon"
	"github.com/anwarshop/storefront/internal/identity"
)

// Deps bundles everything the routes need
type Deps struct {
	Catalog  *catalog.Store
	Cart     *cart.Manager
	Coupons  *coupon.Resolver
	Checkout *checkout.Service
	Identity *identity.Watcher
	Admin    *admin.Service
}

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, deps Deps, logger *zap.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(loggingMiddleware(logger))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := router.Group("/v1")
	{
		// Storefront routes (public)
		v1.GET("/catalog", handlers.HandleGetCatalog(deps.Catalog))
		v1.GET("/products", handlers.HandleListProducts(deps.Catalog))
		v1.GET("/products/:id", handlers.HandleGetProduct(deps.Catalog))
		v1.GET("/search", handlers.HandleSearch(deps.Catalog))

		v1.GET("/cart", handlers.HandleGetCart(deps.Cart, deps.Coupons, deps.Catalog))
		v1.POST("/cart/items", handlers.HandleAddToCart(deps.Cart, deps.Catalog, logger))
		v1.PUT("/cart/items/:id", handlers.HandleUpdateQuantity(deps.Cart))
		v1.DELETE("/cart/items/:id", handlers.HandleRemoveFromCart(deps.Cart))
		v1.POST("/cart/coupon", handlers.HandleApplyCoupon(deps.Cart, deps.Coupons, logger))

		v1.GET("/wishlist", handlers.HandleGetWishlist(deps.Cart))
		v1.POST("/wishlist/toggle", handlers.HandleToggleWishlist(deps.Cart, deps.Catalog))

		v1.POST("/checkout", handlers.HandleCheckout(deps.Checkout, deps.Identity, logger))
		v1.GET("/orders", handlers.HandleMyOrders(deps.Admin, deps.Identity, logger))

		v1.POST("/session", handlers.HandleSignIn(deps.Identity, logger))
		v1.DELETE("/session", handlers.HandleSignOut(deps.Identity))

		// Admin routes (back office)
		adminRoutes := v1.Group("/admin")
		adminRoutes.Use(middleware.AdminAuthMiddleware(cfg.Admin, logger))
		{
			adminRoutes.POST("/products", handlers.HandleCreateProduct(deps.Admin, logger))
			adminRoutes.PUT("/products/:id", handlers.HandleUpdateProduct(deps.Admin, logger))
			adminRoutes.DELETE("/products/:id", handlers.HandleDeleteProduct(deps.Admin, logger))

			adminRoutes.POST("/categories", handlers.HandleCreateCategory(deps.Admin, logger))
			adminRoutes.PUT("/categories/:id", handlers.HandleUpdateCategory(deps.Admin, logger))
			adminRoutes.DELETE("/categories/:id", handlers.HandleDeleteCategory(deps.Admin, logger))

			adminRoutes.POST("/banners", handlers.HandleCreateBanner(deps.Admin, logger))
			adminRoutes.PUT("/banners/:id", handlers.HandleUpdateBanner(deps.Admin, logger))
			adminRoutes.DELETE("/banners/:id", handlers.HandleDeleteBanner(deps.Admin, logger))

			adminRoutes.POST("/coupons", handlers.HandleCreateCoupon(deps.Admin, logger))
			adminRoutes.DELETE("/coupons/:id", handlers.HandleDeleteCoupon(deps.Admin, logger))

			adminRoutes.PUT("/settings", handlers.HandleUpdateSettings(deps.Admin, logger))

			adminRoutes.GET("/orders", handlers.HandleListOrders(deps.Admin, logger))
			adminRoutes.POST("/orders/:id/status", handlers.HandleUpdateOrderStatus(deps.Admin, logger))

			adminRoutes.GET("/users", handlers.HandleListUsers(deps.Admin, logger))
			adminRoutes.POST("/users/:id/status", handlers.HandleSetUserStatus(deps.Admin, logger))
			adminRoutes.DELETE("/users/:id", handlers.HandleDeleteUser(deps.Admin, logger))
		}
	}

	return router
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
		)
	}
}
