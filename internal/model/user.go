package model

import "time"

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type User struct {
	ID           string  `gorm:"primaryKey" json:"id"`
	Email        string  `gorm:"uniqueIndex;not null" json:"email"`
	Username     string  `gorm:"not null" json:"username"`
	PasswordHash string  `gorm:"not null" json:"-"`
	Avatar       *string `json:"avatar,omitempty"`
	IsConfirmed  bool    `gorm:"default:false" json:"is_confirmed"`
	// Rotated on every login and refresh. Cleared when a presented
	// refresh token doesn't match the stored one (forced logout)
	RefreshToken *string   `json:"-"`
	Role         Role      `gorm:"default:user" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	// Unconfirmed accounts expire and get cleaned up. Cleared on confirmation
	ExpiresAt *time.Time `json:"-"`

	Contacts []Contact `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
