package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"learnhub/models"
	"learnhub/services"
)

const userKey = "current_user"

// AuthMiddleware validates the bearer token and resolves the full user
// row into the gin context. Handlers then hand the actor to services as
// an explicit argument; nothing below this layer reads ambient identity.
func AuthMiddleware(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid token"})
			return
		}

		user, err := authService.UserFromToken(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid token"})
			return
		}

		c.Set(userKey, user)
		c.Next()
	}
}

// CurrentUser returns the authenticated user set by AuthMiddleware.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(userKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok
}

func extractBearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return header[7:]
	}
	return ""
}
