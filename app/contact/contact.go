// Package contact contains the owner-scoped contact CRUD endpoints
package contact

import (
	"net/http"
	"strconv"

	"github.com/artemdev/contacts-book-rest-api/internal/model"
	"github.com/gin-gonic/gin"
)

const notFoundMessage = "Contact not found. It either doesn't exist or you don't own it"

type contactBody struct {
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	Email          string     `json:"email"`
	Phone          string     `json:"phone"`
	Birthday       model.Date `json:"birthday"`
	AdditionalNote string     `json:"additional_note"`
}

func (b *contactBody) toModel() *model.Contact {
	return &model.Contact{
		FirstName:      b.FirstName,
		LastName:       b.LastName,
		Email:          b.Email,
		Phone:          b.Phone,
		Birthday:       b.Birthday,
		AdditionalNote: b.AdditionalNote,
	}
}

// contactID parses the :id route param. Writes the 400 response itself
// so handlers can just bail out
func contactID(c *gin.Context, requestID string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid contact ID provided",
			"requestID": requestID,
		})
		return 0, false
	}

	return uint(id), true
}

func pagination(c *gin.Context, requestID string) (skip, limit int, ok bool) {
	skipStr := c.DefaultQuery("skip", "0")
	skip, err := strconv.Atoi(skipStr)
	if err != nil || skip < 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid skip provided",
			"requestID": requestID,
		})
		return 0, 0, false
	}

	limitStr := c.DefaultQuery("limit", "100")
	limit, err = strconv.Atoi(limitStr)
	if err != nil || limit <= 0 || limit > 250 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid limit provided",
			"requestID": requestID,
		})
		return 0, 0, false
	}

	return skip, limit, true
}
