package middleware

import (
	"net/http"

	"github.com/artemdev/contacts-book-rest-api/internal/model"
	"github.com/artemdev/contacts-book-rest-api/pkg/security"
	"github.com/gin-gonic/gin"
)

// RequireRoles gates a route on the authenticated user's role. Must
// run after the auth middleware
func RequireRoles(access *security.RoleAccess) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.MustGet("requestID").(string)
		role := model.Role(c.GetString("userRole"))

		if !access.Allowed(role) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":     "Operation forbidden",
				"requestID": requestID,
			})
			return
		}

		c.Next()
	}
}
