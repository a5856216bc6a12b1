// Package auth contains the signup, login and token lifecycle endpoints
package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/artemdev/contacts-book-rest-api/internal"
	"github.com/artemdev/contacts-book-rest-api/internal/model"
	"github.com/artemdev/contacts-book-rest-api/internal/repository"
	"github.com/artemdev/contacts-book-rest-api/internal/service"
	"github.com/artemdev/contacts-book-rest-api/pkg/validators"
	"github.com/gin-gonic/gin"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.uber.org/zap"
)

// Unconfirmed accounts are cleaned up after this long
const confirmationGrace = time.Hour * 24 * 7

type signupBody struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

func Signup(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var data signupBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Malformed or invalid JSON request body",
			"requestID": requestID,
		})

		zap.L().Debug("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if err := validators.EmailValidator(data.Email); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}

	if err := validators.PasswordValidator(data.Password); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}

	if data.Username == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Username field can't be empty",
			"requestID": requestID,
		})
		return
	}

	hash, err := d.Argon.GenerateFromPassword(data.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to hash password", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	userID, err := gonanoid.New(16)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to generate user ID", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	// Best-effort avatar lookup. No avatar is fine
	var avatar *string
	if url := d.Avatars.Lookup(data.Email); url != "" {
		avatar = &url
	}

	expiry := time.Now().Add(confirmationGrace)

	user := &model.User{
		ID:           userID,
		Email:        data.Email,
		Username:     data.Username,
		PasswordHash: hash,
		Avatar:       avatar,
		Role:         model.RoleUser,
		ExpiresAt:    &expiry,
	}

	if err := d.Users.Create(user); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			c.JSON(http.StatusConflict, gin.H{
				"error":     "This email is already registered. Please login or use a different email",
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to create user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	confirmToken, err := d.Tokens.CreateConfirmationToken(user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to generate confirmation token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	// Mail delivery must never block or fail the signup
	d.Tasks.Enqueue(service.Task{
		Name: "confirmation_mail",
		Run: func() error {
			return d.Mail.SendConfirmationMail(user.Email, user.Username, confirmToken)
		},
	})

	c.JSON(http.StatusCreated, user)
}
