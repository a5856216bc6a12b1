package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/artemdev/contacts-book-rest-api/internal/model"
	"github.com/artemdev/contacts-book-rest-api/pkg/security"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestBearerToken(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newCtx := func(header string) *gin.Context {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			c.Request.Header.Set("Authorization", header)
		}
		return c
	}

	assert.Equal(t, "abc123", BearerToken(newCtx("Bearer abc123")))
	assert.Equal(t, "abc123", BearerToken(newCtx("Bearer abc123 ")))
	assert.Equal(t, "", BearerToken(newCtx("")))
	assert.Equal(t, "", BearerToken(newCtx("Basic abc123")))
	assert.Equal(t, "", BearerToken(newCtx("abc123")))
}

func TestRequireRoles(t *testing.T) {
	gin.SetMode(gin.TestMode)

	adminOnly := RequireRoles(security.NewRoleAccess(model.RoleAdmin))

	run := func(role string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()

		r := gin.New()
		r.GET("/", func(c *gin.Context) {
			c.Set("requestID", "test")
			c.Set("userRole", role)
		}, adminOnly, func(c *gin.Context) {
			c.Status(http.StatusOK)
		})

		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		return w
	}

	assert.Equal(t, http.StatusOK, run("admin").Code)

	w := run("user")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Operation forbidden")
}

func TestRateLimiter(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/", RateLimiterMiddleware(RateLimiterConfig{
		RequestsPerSecond: 1,
		Burst:             2,
	}), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	codes := make([]int, 0, 4)
	for range 4 {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"

		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	// Burst of two passes, the rest is throttled
	assert.Equal(t, http.StatusOK, codes[0])
	assert.Equal(t, http.StatusOK, codes[1])
	assert.Equal(t, http.StatusTooManyRequests, codes[2])
	assert.Equal(t, http.StatusTooManyRequests, codes[3])
}

func TestBodySizeLimiterFastReject(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.POST("/", BodySizeLimiter(8), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("way too large a body"))

	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}
