package contact

import (
	"net/http"
	"time"

	"github.com/artemdev/contacts-book-rest-api/internal"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Birthdays lists the caller's contacts whose birthday comes up within
// the next week
func Birthdays(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	contacts, err := d.Contacts.UpcomingBirthdays(userID, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to query upcoming birthdays", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, contacts)
}
