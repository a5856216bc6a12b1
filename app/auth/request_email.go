package auth

import (
	"net/http"

	"github.com/artemdev/contacts-book-rest-api/internal"
	"github.com/artemdev/contacts-book-rest-api/internal/service"
	"github.com/artemdev/contacts-book-rest-api/pkg/validators"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type requestEmailBody struct {
	Email string `json:"email"`
}

// RequestEmail re-sends the confirmation mail. The response doesn't
// reveal whether the account exists
func RequestEmail(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var data requestEmailBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})
		return
	}

	if err := validators.EmailValidator(data.Email); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}

	user, err := d.Users.FindByEmail(data.Email)
	if err == nil && user.IsConfirmed {
		c.JSON(http.StatusOK, gin.H{
			"message":   "Your email is already confirmed",
			"requestID": requestID,
		})
		return
	}

	if err == nil {
		confirmToken, err := d.Tokens.CreateConfirmationToken(user.Email)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to generate confirmation token", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		d.Tasks.Enqueue(service.Task{
			Name: "confirmation_mail",
			Run: func() error {
				return d.Mail.SendConfirmationMail(user.Email, user.Username, confirmToken)
			},
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Check your email for confirmation",
		"requestID": requestID,
	})
}
