package repository

import (
	"fmt"
	"strings"
	"testing"

	"github.com/artemdev/contacts-book-rest-api/internal/model"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB returns a fresh in-memory database named after the test so
// parallel tests don't share state
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(model.User{}, model.Contact{}))

	return db
}

func createTestUser(t *testing.T, r *UserRepo, id, email string) *model.User {
	t.Helper()

	user := &model.User{
		ID:           id,
		Email:        email,
		Username:     strings.Split(email, "@")[0],
		PasswordHash: "$argon2id$fake",
		Role:         model.RoleUser,
	}
	require.NoError(t, r.Create(user))

	return user
}
