package auth

import (
	"errors"
	"net/http"

	"github.com/artemdev/contacts-book-rest-api/internal"
	"github.com/artemdev/contacts-book-rest-api/internal/repository"
	"github.com/artemdev/contacts-book-rest-api/pkg/security"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Confirm flips the confirmation flag for the email embedded in the
// token. Confirming twice is a no-op, not an error
func Confirm(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	token := c.Param("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "No confirmation token provided",
			"requestID": requestID,
		})
		return
	}

	email, err := d.Tokens.ResolveSubject(token, security.ScopeConfirm)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Verification error",
			"requestID": requestID,
		})

		zap.L().Debug("Failed to resolve confirmation token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	user, err := d.Users.FindByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     "Verification error",
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if user.IsConfirmed {
		c.JSON(http.StatusOK, gin.H{
			"message":   "Your email is already confirmed",
			"requestID": requestID,
		})
		return
	}

	if err := d.Users.ConfirmEmail(email); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to confirm email", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Email confirmed",
		"requestID": requestID,
	})
}
