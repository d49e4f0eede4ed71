package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/surbhisaraf/customer-banking-service/internal/auth"
)

const principalKey = "principal"

// AuthMiddleware verifies the bearer token and stores the principal username
// in the request context. Requests without a valid token never reach the
// ledger engine.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"message": "Authorization header required",
			})
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"message": "Invalid authorization header format",
			})
			c.Abort()
			return
		}

		claims, err := auth.ParseToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"message": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		c.Set(principalKey, claims.Username)
		c.Next()
	}
}

// GetPrincipal returns the authenticated username for the current request.
func GetPrincipal(c *gin.Context) (string, bool) {
	username, exists := c.Get(principalKey)
	if !exists {
		return "", false
	}
	return username.(string), true
}
