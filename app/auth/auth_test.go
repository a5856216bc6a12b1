package auth

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/artemdev/contacts-book-rest-api/internal"
	"github.com/artemdev/contacts-book-rest-api/internal/model"
	"github.com/artemdev/contacts-book-rest-api/internal/repository"
	"github.com/artemdev/contacts-book-rest-api/pkg/security"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDeps(t *testing.T) (*internal.Deps, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(model.User{}, model.Contact{}))

	tokens, err := security.NewTokens("0123456789abcdef0123456789abcdef",
		15*time.Minute, 7*24*time.Hour, 7*24*time.Hour)
	require.NoError(t, err)

	return &internal.Deps{
		DB:     db,
		Users:  repository.NewUserRepo(db),
		Argon:  security.NewArgon(),
		Tokens: tokens,
	}, db
}

func newAuthRouter(d *internal.Deps) *gin.Engine {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("requestID", "test") })

	r.POST("/login", func(c *gin.Context) { Login(c, d) })
	r.GET("/refresh", func(c *gin.Context) { Refresh(c, d) })
	r.GET("/confirm/:token", func(c *gin.Context) { Confirm(c, d) })

	return r
}

// closeDB kills the underlying connection so every query after it
// fails with a real database error
func closeDB(t *testing.T, db *gorm.DB) {
	t.Helper()

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())
}

func TestLoginUnknownEmail(t *testing.T) {
	d, _ := newTestDeps(t)
	r := newAuthRouter(d)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login",
		strings.NewReader(`{"email":"ghost@example.com","password":"password123"}`))
	req.Header.Set("Content-Type", "application/json")

	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid credentials")
}

func TestLoginDatabaseFailure(t *testing.T) {
	d, db := newTestDeps(t)
	r := newAuthRouter(d)

	closeDB(t, db)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login",
		strings.NewReader(`{"email":"ghost@example.com","password":"password123"}`))
	req.Header.Set("Content-Type", "application/json")

	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Internal server error")
}

func TestRefreshUnknownUser(t *testing.T) {
	d, _ := newTestDeps(t)
	r := newAuthRouter(d)

	token, err := d.Tokens.CreateRefreshToken("ghost@example.com")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/refresh", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Refresh token invalid")
}

func TestRefreshDatabaseFailure(t *testing.T) {
	d, db := newTestDeps(t)
	r := newAuthRouter(d)

	token, err := d.Tokens.CreateRefreshToken("ghost@example.com")
	require.NoError(t, err)

	closeDB(t, db)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/refresh", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Internal server error")
}

func TestConfirmUnknownUser(t *testing.T) {
	d, _ := newTestDeps(t)
	r := newAuthRouter(d)

	token, err := d.Tokens.CreateConfirmationToken("ghost@example.com")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/confirm/"+token, nil)

	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Verification error")
}

func TestConfirmDatabaseFailure(t *testing.T) {
	d, db := newTestDeps(t)
	r := newAuthRouter(d)

	token, err := d.Tokens.CreateConfirmationToken("ghost@example.com")
	require.NoError(t, err)

	closeDB(t, db)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/confirm/"+token, nil)

	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Internal server error")
}
