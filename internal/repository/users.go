package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/artemdev/contacts-book-rest-api/internal/model"
	"gorm.io/gorm"
)

type UserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) FindByEmail(email string) (*model.User, error) {
	var user model.User

	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("failed to find user by email, %w", err)
	}

	return &user, nil
}

// Create inserts a new user. The pre-check is a courtesy for a nicer
// error, the unique index on email is the authoritative guard against
// racing duplicate inserts
func (r *UserRepo) Create(user *model.User) error {
	var found bool

	err := r.db.Model(model.User{}).
		Select("count(*) > 0").
		Where("email = ?", user.Email).
		Find(&found).
		Error
	if err != nil {
		return fmt.Errorf("failed to check if user is registered, %w", err)
	}

	if found {
		return ErrAlreadyExists
	}

	if err := r.db.Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrAlreadyExists
		}

		return fmt.Errorf("failed to create user, %w", err)
	}

	return nil
}

// SetRefreshToken persists token rotation. Passing nil clears the
// binding, which is the forced-logout path
func (r *UserRepo) SetRefreshToken(userID string, token *string) error {
	err := r.db.Model(model.User{}).
		Where("id = ?", userID).
		Update("refresh_token", token).
		Error
	if err != nil {
		return fmt.Errorf("failed to update refresh token, %w", err)
	}

	return nil
}

// ConfirmEmail flips is_confirmed in a single UPDATE. Confirming an
// already-confirmed user is a no-op, not an error
func (r *UserRepo) ConfirmEmail(email string) error {
	res := r.db.Model(model.User{}).
		Where("email = ?", email).
		Updates(map[string]any{
			"is_confirmed": true,
			"expires_at":   nil,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to confirm email, %w", res.Error)
	}

	if res.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *UserRepo) UpdateAvatar(email, url string) (*model.User, error) {
	res := r.db.Model(model.User{}).
		Where("email = ?", email).
		Update("avatar", url)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update avatar, %w", res.Error)
	}

	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	return r.FindByEmail(email)
}

func isUniqueViolation(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate")
}
