package middleware

import (
	"net/http"
	"strings"

	"matehub/models"
	"matehub/utils"

	"github.com/gin-gonic/gin"
)

// Context keys set by JWTAuthMiddleware.
const (
	ctxUserID = "userID"
	ctxRole   = "role"
)

// JWTAuthMiddleware verifies the bearer token and stores the caller's id and role.
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.JSONError(c, http.StatusUnauthorized, "Unauthorized", "Missing or invalid Authorization header")
			return
		}
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if tokenString == "" {
			utils.JSONError(c, http.StatusUnauthorized, "Unauthorized", "Missing token")
			return
		}

		claims, err := utils.ExtractClaims(tokenString)
		if err != nil {
			utils.JSONError(c, http.StatusUnauthorized, "Unauthorized", "Invalid token")
			return
		}

		c.Set(ctxUserID, claims.Subject)
		c.Set(ctxRole, models.Role(claims.Role))
		c.Next()
	}
}

// IdentityFrom returns the identity stored by JWTAuthMiddleware.
func IdentityFrom(c *gin.Context) (models.Identity, bool) {
	id := c.GetString(ctxUserID)
	role, _ := c.Get(ctxRole)
	r, _ := role.(models.Role)
	who := models.Identity{ID: id, Role: r}
	return who, !who.IsZero()
}
