package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/artemdev/contacts-book-rest-api/internal/model"
	"github.com/artemdev/contacts-book-rest-api/pkg/security"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// NewAuthMiddleware resolves the bearer access token to a user and sets
// userID, userEmail and userRole on the request context. Tokens with
// the wrong scope are rejected so a refresh token can't be used to
// reach protected routes
func NewAuthMiddleware(d *gorm.DB, tokens *security.Tokens) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.MustGet("requestID").(string)

		tokenStr := BearerToken(c)
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     "Missing bearer token",
				"requestID": requestID,
			})
			return
		}

		email, err := tokens.ResolveSubject(tokenStr, security.ScopeAccess)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     "Authorization token invalid",
				"requestID": requestID,
			})

			zap.L().Debug("Failed to resolve access token", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		// The token might outlive the account, so resolve the user on
		// every request
		var user model.User

		err = d.Where("email = ?", email).First(&user).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error":     "Authorization token invalid",
					"requestID": requestID,
				})
				return
			}

			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to check if user exists", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		if !user.IsConfirmed {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     "Please confirm your email before using the service",
				"requestID": requestID,
			})
			return
		}

		c.Set("userID", user.ID)
		c.Set("userEmail", user.Email)
		c.Set("userRole", string(user.Role))
		c.Next()
	}
}

// BearerToken extracts the raw token from the Authorization header.
// Returns an empty string when the header is missing or malformed
func BearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")

	token, found := strings.CutPrefix(header, "Bearer ")
	if !found {
		return ""
	}

	return strings.TrimSpace(token)
}
