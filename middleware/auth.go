package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/omarmohsen179/advanced-habit-tracker/services"
	"github.com/omarmohsen179/advanced-habit-tracker/utils"
)

const UserIDKey = "userID"

// AuthMiddleware requires a Bearer access token and stores the resolved
// user id in the context. Handlers receive the owner identity explicitly
// from here; nothing downstream reads ambient auth state.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid token"})
			return
		}

		tokenStr := strings.TrimPrefix(auth, "Bearer ")
		claims, err := services.ParseToken(tokenStr, services.TokenTypeAccess)
		if err != nil {
			utils.Logger.Warn("invalid_access_token", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		if _, err := services.GetUser(claims.UserID); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Next()
	}
}

// CurrentUserID returns the authenticated user id set by AuthMiddleware.
func CurrentUserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(UserIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
