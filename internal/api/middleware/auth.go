package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/anwarshop/storefront/internal/config"
)

// AdminAuthMiddleware guards back-office routes with a bearer key checked
// against the configured bcrypt hash. With no hash configured the admin
// surface is disabled outright rather than left open.
func AdminAuthMiddleware(cfg config.AdminConfig, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.KeyHash == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access is not configured"})
			return
		}

		header := c.GetHeader("Authorization")
		key := strings.TrimPrefix(header, "Bearer ")
		if key == "" || key == header {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(cfg.KeyHash), []byte(key)); err != nil {
			logger.Warn("Rejected admin key", zap.String("path", c.Request.URL.Path))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		c.Next()
	}
}
