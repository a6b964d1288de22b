package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"backoffice/internal/auth"
	"backoffice/internal/models"
	"backoffice/internal/redis"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSessions struct {
	alive map[string]*redis.SessionData
}

func (f *fakeSessions) GetSession(sessionID string) (*redis.SessionData, error) {
	if s, ok := f.alive[sessionID]; ok {
		return s, nil
	}
	return nil, errors.New("session not found")
}

var testSecret = []byte("test-secret")

func setupRouter(sessions SessionChecker) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", AuthMiddleware(testSecret, sessions), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": ActorID(c), "role": c.GetString("role")})
	})
	router.GET("/admin", AuthMiddleware(testSecret, sessions), RequireAdmin(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	return router
}

func issueToken(t *testing.T, role, sessionID string) string {
	t.Helper()
	token, err := auth.GenerateToken(testSecret, 7, role, sessionID, time.Hour)
	require.NoError(t, err)
	return token
}

func TestAuthMiddlewareAcceptsLiveSession(t *testing.T) {
	sessions := &fakeSessions{alive: map[string]*redis.SessionData{
		"sess-1": {UserID: 7, Role: models.RoleStaff},
	}}
	router := setupRouter(sessions)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, models.RoleStaff, "sess-1"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":7`)
}

func TestAuthMiddlewareRejectsMissingHeader(t *testing.T) {
	router := setupRouter(&fakeSessions{alive: map[string]*redis.SessionData{}})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareRejectsBadToken(t *testing.T) {
	router := setupRouter(&fakeSessions{alive: map[string]*redis.SessionData{}})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareRejectsDeadSession(t *testing.T) {
	router := setupRouter(&fakeSessions{alive: map[string]*redis.SessionData{}})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, models.RoleStaff, "revoked"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAdminBlocksStaff(t *testing.T) {
	sessions := &fakeSessions{alive: map[string]*redis.SessionData{
		"sess-staff": {UserID: 7, Role: models.RoleStaff},
		"sess-admin": {UserID: 8, Role: models.RoleAdmin},
	}}
	router := setupRouter(sessions)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, models.RoleStaff, "sess-staff"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, models.RoleAdmin, "sess-admin"))
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
