package middleware

import (
	"net/http"
	"strings"

	"backoffice/internal/auth"
	"backoffice/internal/models"
	"backoffice/internal/redis"

	"github.com/gin-gonic/gin"
)

// SessionChecker is the subset of the redis client the middleware needs.
type SessionChecker interface {
	GetSession(sessionID string) (*redis.SessionData, error)
}

// AuthMiddleware requires a valid Bearer token whose session is still
// alive in redis. On success it stores user_id, role and session_id in
// the gin context.
func AuthMiddleware(jwtSecret []byte, sessions SessionChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "missing authorization header"})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := auth.VerifyToken(jwtSecret, tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid token"})
			c.Abort()
			return
		}

		if _, err := sessions.GetSession(claims.SessionID); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "session expired"})
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)
		c.Set("session_id", claims.SessionID)
		c.Next()
	}
}

// RequireAdmin must run after AuthMiddleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("role") != models.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "admin access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// ActorID returns the authenticated user id set by AuthMiddleware.
func ActorID(c *gin.Context) uint {
	return c.GetUint("user_id")
}
