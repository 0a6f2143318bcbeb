package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pscosmeticos/internal/app/catalog/util"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupProtectedRouter(jwtManager *util.JWTManager) *gin.Engine {
	gin.SetMode(gin.TestMode)

	middleware := NewAuthMiddleware(jwtManager)

	router := gin.New()
	router.GET("/protected", middleware.Authenticate(), func(c *gin.Context) {
		username := c.GetString("username")
		c.JSON(http.StatusOK, gin.H{"username": username})
	})
	return router
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	// Arrange
	jwtManager := util.NewJWTManager("test-secret", "API PS", 2*time.Hour)
	router := setupProtectedRouter(jwtManager)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()

	// Act
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Authorization header required")
}

func TestAuthenticate_MalformedHeader(t *testing.T) {
	// Arrange
	jwtManager := util.NewJWTManager("test-secret", "API PS", 2*time.Hour)
	router := setupProtectedRouter(jwtManager)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Basic abc123")
	w := httptest.NewRecorder()

	// Act
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid authorization header format")
}

func TestAuthenticate_ExpiredToken(t *testing.T) {
	// Arrange
	expired := util.NewJWTManager("test-secret", "API PS", -time.Minute)
	token, err := expired.GenerateToken("admin")
	require.NoError(t, err)

	router := setupProtectedRouter(util.NewJWTManager("test-secret", "API PS", 2*time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	// Act
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Token has expired")
}

func TestAuthenticate_ForeignToken(t *testing.T) {
	// Arrange
	foreign := util.NewJWTManager("other-secret", "API PS", 2*time.Hour)
	token, err := foreign.GenerateToken("admin")
	require.NoError(t, err)

	router := setupProtectedRouter(util.NewJWTManager("test-secret", "API PS", 2*time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	// Act
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid token")
}

func TestAuthenticate_ValidTokenPassesUsername(t *testing.T) {
	// Arrange
	jwtManager := util.NewJWTManager("test-secret", "API PS", 2*time.Hour)
	token, err := jwtManager.GenerateToken("admin")
	require.NoError(t, err)

	router := setupProtectedRouter(jwtManager)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	// Act
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"admin"`)
}
