package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"booking-backend/models"
	"booking-backend/utils"
)

const principalKey = "principal"

// AuthRequired verifies the bearer token and stores the resulting principal
// in the request context. Without a valid token the request stops here, so
// downstream handlers never see an absent identity as anything but a deny.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.JSONError(c, http.StatusUnauthorized, "authorization header missing")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := utils.ParseToken(tokenString)
		if err != nil || claims.UserID == 0 {
			utils.JSONError(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		c.Set(principalKey, models.Principal{
			UserID: claims.UserID,
			Roles:  []string{claims.Role},
		})
		c.Next()
	}
}

// AdminRequired runs after AuthRequired and rejects non-admin principals.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		p := GetPrincipal(c)
		if !p.IsAdmin() {
			utils.JSONError(c, http.StatusForbidden, "admin access required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetPrincipal returns the principal set by AuthRequired. The zero principal
// comes back when none was set, and the zero principal denies everything.
func GetPrincipal(c *gin.Context) models.Principal {
	if v, ok := c.Get(principalKey); ok {
		if p, ok := v.(models.Principal); ok {
			return p
		}
	}
	return models.Principal{}
}
