package middleware

import (
	"net/http"
	"strings"

	"drivewell/utils"

	"github.com/gin-gonic/gin"
)

// ContextUserKey is where JWTAuthMiddleware stores the authenticated token
// payload on the gin context.
const ContextUserKey = "authUser"

// JWTAuthMiddleware validates the bearer access token and puts its payload on
// the request context.
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		payload, err := utils.ValidateAccessToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set(ContextUserKey, payload)
		c.Next()
	}
}

// CurrentUser pulls the authenticated payload set by JWTAuthMiddleware.
func CurrentUser(c *gin.Context) *utils.TokenPayload {
	v, ok := c.Get(ContextUserKey)
	if !ok {
		return nil
	}
	payload, ok := v.(*utils.TokenPayload)
	if !ok {
		return nil
	}
	return payload
}
