// Package user defines the identity record of the ledger.
package user

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrInvalidCredentials is returned on a failed login. One error covers
	// unknown email, wrong password and inactive account so the caller cannot
	// tell which field failed.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrEmailTaken is returned when registering an email that already exists.
	ErrEmailTaken = errors.New("email already registered")
	// ErrRecipientNotFound is returned when a payment recipient email does not
	// resolve to a user.
	ErrRecipientNotFound = errors.New("recipient not found")
)

// Preferences is the per-user preference bag.
type Preferences struct {
	Theme         string `json:"theme"`
	Currency      string `json:"currency"`
	Notifications bool   `json:"notifications"`
	Language      string `json:"language"`
}

// DefaultPreferences returns the preferences assigned at registration.
func DefaultPreferences() Preferences {
	return Preferences{
		Theme:         "light",
		Currency:      "USD",
		Notifications: true,
		Language:      "en",
	}
}

// User represents an identity record. The password field is an opaque
// credential; whether it holds plaintext or a hash is decided by the
// CredentialVerifier in use, never by this package.
type User struct {
	ID             string      `json:"id"`
	Email          string      `json:"email"`
	Password       string      `json:"password"`
	FullName       string      `json:"full_name"`
	Phone          string      `json:"phone"`
	CreatedAt      time.Time   `json:"created_at"`
	LastLogin      time.Time   `json:"last_login"`
	IsActive       bool        `json:"is_active"`
	ProfilePicture string      `json:"profile_picture"`
	Preferences    Preferences `json:"preferences"`
}

// New creates a new active User with default preferences and a generated
// avatar URL.
func New(email, password, fullName, phone string) (*User, error) {
	if email == "" {
		return nil, errors.New("email cannot be empty")
	}
	if fullName == "" {
		return nil, errors.New("full name cannot be empty")
	}
	now := time.Now().UTC()
	return &User{
		ID:             "user-" + uuid.NewString(),
		Email:          email,
		Password:       password,
		FullName:       fullName,
		Phone:          phone,
		CreatedAt:      now,
		LastLogin:      now,
		IsActive:       true,
		ProfilePicture: fmt.Sprintf("https://api.dicebear.com/7.x/avataaars/svg?seed=%s", email),
		Preferences:    DefaultPreferences(),
	}, nil
}

// NewFromData creates a User from raw data (used for store hydration).
func NewFromData(
	id, email, password, fullName string,
	created, lastLogin time.Time,
	active bool,
) *User {
	return &User{
		ID:          id,
		Email:       email,
		Password:    password,
		FullName:    fullName,
		CreatedAt:   created,
		LastLogin:   lastLogin,
		IsActive:    active,
		Preferences: DefaultPreferences(),
	}
}
