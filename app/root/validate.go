package root

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Validate answers 200 with the resolved user ID when the presented
// access token passed the auth middleware
func Validate(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"userID": c.GetString("userID"),
	})
}
