package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireRole creates middleware that restricts a route to one marketplace
// side. It must run after JWTAuthMiddleware.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "Authentication required",
				},
			})
			return
		}

		if claims.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "FORBIDDEN",
					"message": "This operation requires the " + role + " role",
				},
			})
			return
		}

		c.Next()
	}
}

// RequireImporter restricts a route to importer accounts
func RequireImporter() gin.HandlerFunc {
	return RequireRole("importer")
}

// RequireExporter restricts a route to exporter accounts
func RequireExporter() gin.HandlerFunc {
	return RequireRole("exporter")
}
