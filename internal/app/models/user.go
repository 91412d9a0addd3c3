package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID              int64     `json:"id" db:"id" example:"1"`
	Email           string    `json:"email" db:"email" example:"mira@tastemap.app"`
	Password        string    `json:"-" db:"password_hash"` // hashed, excluded from JSON
	Nickname        string    `json:"nickname" db:"nickname" example:"mira"`
	ProfileImageURL *string   `json:"profileImageUrl,omitempty" db:"profile_image_url"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time `json:"updatedAt" db:"updated_at"`
}
