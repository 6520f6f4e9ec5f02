package middleware

import (
	"net/http"

	"fieldops/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// RequireRole ensures the authenticated user carries one of the given roles.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Role not found in token")
			c.Abort()
			return
		}

		for _, r := range roles {
			if role.(string) == r {
				c.Next()
				return
			}
		}

		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied: insufficient permissions")
		c.Abort()
	}
}

// AdminOnly admits admins and super admins.
func AdminOnly() gin.HandlerFunc {
	return RequireRole("admin", "super_admin")
}

// FieldOnly admits the roles that perform visits.
func FieldOnly() gin.HandlerFunc {
	return RequireRole("team_leader", "mch", "promoter")
}
