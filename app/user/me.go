// Package user contains endpoints operating on the authenticated
// user's own account
package user

import (
	"net/http"

	"github.com/artemdev/contacts-book-rest-api/internal"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func Me(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	email := c.MustGet("userEmail").(string)

	user, err := d.Users.FindByEmail(email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, user)
}
