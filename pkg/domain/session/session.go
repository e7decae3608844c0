// Package session defines the bearer-token session record.
package session

import (
	"time"

	"github.com/google/uuid"
)

// DefaultTTL is how long an issued session is stamped valid for.
const DefaultTTL = 24 * time.Hour

// Metadata carries client details captured at login.
type Metadata struct {
	IPAddress string
	UserAgent string
}

// Session is an authenticated context bound to a user by an opaque bearer
// token. ExpiresAt is recorded but not consulted for authorization decisions;
// the legacy behavior keeps it inert and so do we.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Token     string    `json:"token"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
	IPAddress string    `json:"ip_address"`
	UserAgent string    `json:"user_agent"`
}

// New issues a session for the given user with the given token.
func New(userID, token string, ttl time.Duration, meta Metadata) *Session {
	now := time.Now().UTC()
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Session{
		ID:        "session-" + uuid.NewString(),
		UserID:    userID,
		Token:     token,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
	}
}

// Expired reports whether the session is past its stamped expiry.
func (s *Session) Expired() bool {
	return time.Now().UTC().After(s.ExpiresAt)
}
