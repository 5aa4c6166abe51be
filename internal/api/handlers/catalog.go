package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anwarshop/storefront/internal/catalog"
)

// HandleGetCatalog handles GET /v1/catalog
func HandleGetCatalog(store *catalog.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"loading":    store.Loading(),
			"products":   store.Products(),
			"categories": store.Categories(),
			"banners":    store.Banners(),
			"settings":   store.Settings(),
		})
	}
}

// HandleListProducts handles GET /v1/products with optional filters
func HandleListProducts(store *catalog.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch {
		case c.Query("category") != "":
			c.JSON(http.StatusOK, gin.H{"products": store.ProductsByCategory(c.Query("category"))})
		case c.Query("trending") == "true":
			c.JSON(http.StatusOK, gin.H{"products": store.Trending()})
		case c.Query("popular") == "true":
			c.JSON(http.StatusOK, gin.H{"products": store.Popular()})
		default:
			c.JSON(http.StatusOK, gin.H{"products": store.Products()})
		}
	}
}

// HandleGetProduct handles GET /v1/products/:id
func HandleGetProduct(store *catalog.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, ok := store.ProductByID(c.Param("id"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"product":  product,
			"oldPrice": product.EffectiveOldPrice(),
		})
	}
}

// HandleSearch handles GET /v1/search?q=
func HandleSearch(store *catalog.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"products": store.Search(c.Query("q"))})
	}
}
