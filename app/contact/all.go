package contact

import (
	"net/http"

	"github.com/artemdev/contacts-book-rest-api/internal"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// All lists contacts across every user. The route is gated on the
// admin role
func All(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	skip, limit, ok := pagination(c, requestID)
	if !ok {
		return
	}

	contacts, err := d.Contacts.ListAll(skip, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to list all contacts", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, contacts)
}
