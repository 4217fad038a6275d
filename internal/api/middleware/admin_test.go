package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/meharshop/storefront/internal/auth"
	"github.com/meharshop/storefront/internal/storage"
)

func signedToken(t *testing.T, role string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"role": role})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func newGatedRouter(tokens *auth.Tokens) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/admin/ping", AdminHintMiddleware(tokens, zap.NewNop()), func(c *gin.Context) {
		token, ok := GetTokenFromContext(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "token missing from context"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"token": token})
	})
	return router
}

func TestAdminHintMiddlewareHidesRoute(t *testing.T) {
	tokens := auth.NewTokens(storage.NewMemStore())
	router := newGatedRouter(tokens)

	// No session at all
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/ping", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Logged in, but not an admin
	require.NoError(t, tokens.Save(signedToken(t, "customer")))
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/ping", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminHintMiddlewarePassesTokenThrough(t *testing.T) {
	tokens := auth.NewTokens(storage.NewMemStore())
	router := newGatedRouter(tokens)

	require.NoError(t, tokens.Save(signedToken(t, "admin")))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "token")
}
