package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/anwarshop/storefront/internal/identity"
	"github.com/anwarshop/storefront/pkg/errors"
)

// SignInRequest carries the identity provider's ID token
type SignInRequest struct {
	IDToken string `json:"id_token" binding:"required"`
}

// HandleSignIn handles POST /v1/session
func HandleSignIn(sessions *identity.Watcher, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SignInRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		session, err := sessions.SignIn(c.Request.Context(), req.IDToken)
		if err != nil {
			switch err.(type) {
			case *errors.ErrAccountBlocked:
				c.JSON(http.StatusForbidden, gin.H{"error": "your account has been blocked by an administrator"})
			case *errors.ErrAccountDeleted:
				c.JSON(http.StatusForbidden, gin.H{"error": "your account has been deleted by an administrator"})
			default:
				logger.Warn("Sign-in rejected", zap.Error(err))
				c.JSON(http.StatusUnauthorized, gin.H{"error": "sign-in failed"})
			}
			return
		}

		c.JSON(http.StatusOK, gin.H{"session": session})
	}
}

// HandleSignOut handles DELETE /v1/session
func HandleSignOut(sessions *identity.Watcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessions.SignOut()
		c.Status(http.StatusNoContent)
	}
}
