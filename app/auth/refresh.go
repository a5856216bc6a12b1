package auth

import (
	"errors"
	"net/http"

	"github.com/artemdev/contacts-book-rest-api/internal"
	"github.com/artemdev/contacts-book-rest-api/internal/repository"
	"github.com/artemdev/contacts-book-rest-api/pkg/middleware"
	"github.com/artemdev/contacts-book-rest-api/pkg/security"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Refresh rotates the token pair. The presented refresh token has to
// match the one stored on the user record; on a mismatch the stored
// token is cleared, which forces a fresh login everywhere
func Refresh(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	tokenStr := middleware.BearerToken(c)
	if tokenStr == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":     "Missing bearer token",
			"requestID": requestID,
		})
		return
	}

	email, err := d.Tokens.ResolveSubject(tokenStr, security.ScopeRefresh)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":     "Refresh token invalid",
			"requestID": requestID,
		})

		zap.L().Debug("Failed to resolve refresh token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	user, err := d.Users.FindByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":     "Refresh token invalid",
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

	if user.RefreshToken == nil || *user.RefreshToken != tokenStr {
		if err := d.Users.SetRefreshToken(user.ID, nil); err != nil {
			zap.L().Error("Failed to clear refresh token", zap.Error(err), zap.String("requestID", requestID))
		}

		c.JSON(http.StatusUnauthorized, gin.H{
			"error":     "Invalid refresh token",
			"requestID": requestID,
		})
		return
	}

	issueTokenPair(c, d, requestID, user.ID, user.Email)
}

// issueTokenPair mints a fresh access/refresh pair and persists the
// refresh token so it can be checked and revoked later
func issueTokenPair(c *gin.Context, d *internal.Deps, requestID, userID, email string) {
	accessToken, err := d.Tokens.CreateAccessToken(email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to generate access token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	refreshToken, err := d.Tokens.CreateRefreshToken(email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to generate refresh token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if err := d.Users.SetRefreshToken(userID, &refreshToken); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to persist refresh token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"token_type":    "bearer",
	})
}
