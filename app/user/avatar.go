package user

import (
	"net/http"
	"strings"

	"github.com/artemdev/contacts-book-rest-api/internal"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UpdateAvatar stores an uploaded image in S3 and points the user's
// avatar URL at it
func UpdateAvatar(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)
	email := c.MustGet("userEmail").(string)

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "No avatar file provided",
			"requestID": requestID,
		})
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Avatar must be an image",
			"requestID": requestID,
		})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to open uploaded avatar", zap.Error(err), zap.String("requestID", requestID))
		return
	}
	defer f.Close()

	url, err := d.S3.UploadAvatar(c.Request.Context(), userID, f, contentType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to upload avatar to S3", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	user, err := d.Users.UpdateAvatar(email, url)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to update avatar", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, user)
}
