package dto

import (
	"time"

	"github.com/demipay/demipay/pkg/domain/user"
)

// UserRead is the sanitized view of a user returned to callers. It never
// carries the password field.
type UserRead struct {
	ID             string           `json:"id"`
	Email          string           `json:"email"`
	FullName       string           `json:"full_name"`
	Phone          string           `json:"phone,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	LastLogin      time.Time        `json:"last_login"`
	IsActive       bool             `json:"is_active"`
	ProfilePicture string           `json:"profile_picture,omitempty"`
	Preferences    user.Preferences `json:"preferences"`
}

// SanitizeUser maps a domain user to its public view, dropping the password.
func SanitizeUser(u *user.User) *UserRead {
	if u == nil {
		return nil
	}
	return &UserRead{
		ID:             u.ID,
		Email:          u.Email,
		FullName:       u.FullName,
		Phone:          u.Phone,
		CreatedAt:      u.CreatedAt,
		LastLogin:      u.LastLogin,
		IsActive:       u.IsActive,
		ProfilePicture: u.ProfilePicture,
		Preferences:    u.Preferences,
	}
}

// RegisterInput is the profile submitted at registration.
type RegisterInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	FullName string `json:"full_name" validate:"required"`
	Phone    string `json:"phone" validate:"omitempty"`
	Currency string `json:"currency" validate:"omitempty,len=3,uppercase"`
}

// LoginOutput bundles the sanitized user with the issued bearer token.
type LoginOutput struct {
	User         *UserRead `json:"user"`
	SessionToken string    `json:"session"`
}
