package repository

import (
	"testing"

	"github.com/artemdev/contacts-book-rest-api/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserCreateAndFindByEmail(t *testing.T) {
	users := NewUserRepo(newTestDB(t))

	created := createTestUser(t, users, "user-1", "ann@example.com")

	found, err := users.FindByEmail("ann@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, "ann", found.Username)
	assert.False(t, found.IsConfirmed)
	assert.Equal(t, model.RoleUser, found.Role)
}

func TestUserFindByEmailNotFound(t *testing.T) {
	users := NewUserRepo(newTestDB(t))

	_, err := users.FindByEmail("ghost@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserCreateDuplicateEmail(t *testing.T) {
	users := NewUserRepo(newTestDB(t))

	createTestUser(t, users, "user-1", "ann@example.com")

	err := users.Create(&model.User{
		ID:           "user-2",
		Email:        "ann@example.com",
		Username:     "ann2",
		PasswordHash: "x",
	})
	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestUserConfirmEmailIsIdempotent(t *testing.T) {
	users := NewUserRepo(newTestDB(t))

	createTestUser(t, users, "user-1", "ann@example.com")

	require.NoError(t, users.ConfirmEmail("ann@example.com"))

	// Second confirmation must not error and must leave the flag set
	require.NoError(t, users.ConfirmEmail("ann@example.com"))

	found, err := users.FindByEmail("ann@example.com")
	require.NoError(t, err)
	assert.True(t, found.IsConfirmed)
	assert.Nil(t, found.ExpiresAt)
}

func TestUserConfirmEmailUnknownUser(t *testing.T) {
	users := NewUserRepo(newTestDB(t))

	assert.ErrorIs(t, users.ConfirmEmail("ghost@example.com"), ErrNotFound)
}

func TestUserRefreshTokenRotation(t *testing.T) {
	users := NewUserRepo(newTestDB(t))

	u := createTestUser(t, users, "user-1", "ann@example.com")

	token := "refresh-token-1"
	require.NoError(t, users.SetRefreshToken(u.ID, &token))

	found, err := users.FindByEmail(u.Email)
	require.NoError(t, err)
	require.NotNil(t, found.RefreshToken)
	assert.Equal(t, token, *found.RefreshToken)

	// Clearing is the forced-logout path
	require.NoError(t, users.SetRefreshToken(u.ID, nil))

	found, err = users.FindByEmail(u.Email)
	require.NoError(t, err)
	assert.Nil(t, found.RefreshToken)
}

func TestUserUpdateAvatar(t *testing.T) {
	users := NewUserRepo(newTestDB(t))

	createTestUser(t, users, "user-1", "ann@example.com")

	updated, err := users.UpdateAvatar("ann@example.com", "https://example.com/a.png")
	require.NoError(t, err)
	require.NotNil(t, updated.Avatar)
	assert.Equal(t, "https://example.com/a.png", *updated.Avatar)

	_, err = users.UpdateAvatar("ghost@example.com", "https://example.com/a.png")
	assert.ErrorIs(t, err, ErrNotFound)
}
