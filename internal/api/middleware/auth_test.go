package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/anwarshop/storefront/internal/config"
)

func adminRouter(t *testing.T, cfg config.AdminConfig) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(AdminAuthMiddleware(cfg, zap.NewNop()))
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })
	return router
}

func TestAdminAuthAcceptsValidKey(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret-key"), bcrypt.MinCost)
	require.NoError(t, err)
	router := adminRouter(t, config.AdminConfig{KeyHash: string(hash)})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer secret-key")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminAuthRejectsWrongKey(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret-key"), bcrypt.MinCost)
	require.NoError(t, err)
	router := adminRouter(t, config.AdminConfig{KeyHash: string(hash)})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminAuthRejectsMissingHeader(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("secret-key"), bcrypt.MinCost)
	router := adminRouter(t, config.AdminConfig{KeyHash: string(hash)})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminAuthDisabledWithoutHash(t *testing.T) {
	router := adminRouter(t, config.AdminConfig{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer anything")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code, "no configured hash disables the admin surface")
}
