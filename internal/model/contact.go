// Package model defines database models
package model

import "time"

type Contact struct {
	ID     uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID string `gorm:"index;not null" json:"-"`

	FirstName      string `gorm:"not null" json:"first_name"`
	LastName       string `gorm:"not null" json:"last_name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Birthday       Date   `gorm:"type:date" json:"birthday"`
	AdditionalNote string `json:"additional_note,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
