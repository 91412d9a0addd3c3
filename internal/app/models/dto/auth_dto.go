package dto

import "time"

// RegisterRequest is the signup payload
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email" example:"mira@tastemap.app"`
	Password string `json:"password" binding:"required,min=8" example:"secret-password"`
	Nickname string `json:"nickname" binding:"required,min=2,max=30" example:"mira"`
}

// LoginRequest is the login payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserResponse is the public view of a user
type UserResponse struct {
	ID              int64     `json:"id" example:"1"`
	Email           string    `json:"email" example:"mira@tastemap.app"`
	Nickname        string    `json:"nickname" example:"mira"`
	ProfileImageURL *string   `json:"profileImageUrl,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

// UserBasicResponse is the minimal user reference embedded in other payloads
type UserBasicResponse struct {
	ID       int64  `json:"id" example:"1"`
	Nickname string `json:"nickname" example:"mira"`
}

// UpdateProfileRequest updates the caller's profile
type UpdateProfileRequest struct {
	Nickname        *string `json:"nickname,omitempty" binding:"omitempty,min=2,max=30"`
	ProfileImageURL *string `json:"profileImageUrl,omitempty"`
}
