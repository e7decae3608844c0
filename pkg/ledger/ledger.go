package ledger

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/demipay/demipay/pkg/domain"
	"github.com/demipay/demipay/pkg/storage"
)

// Default store keys, matching the browser build's localStorage keys.
const (
	DefaultDatabaseKey = "demipay_database"
	DefaultSessionKey  = "demipay_session"
)

// Ledger persists a Database through a key-value store. The whole snapshot is
// serialized as one JSON document under DatabaseKey; the active session token
// is a second scalar value under SessionKey. A full load-mutate-serialize-
// store cycle is the unit of durability.
type Ledger struct {
	store       storage.Store
	databaseKey string
	sessionKey  string
	logger      *slog.Logger
}

// New creates a Ledger over the given store. Empty keys fall back to the
// defaults.
func New(store storage.Store, databaseKey, sessionKey string, logger *slog.Logger) *Ledger {
	if databaseKey == "" {
		databaseKey = DefaultDatabaseKey
	}
	if sessionKey == "" {
		sessionKey = DefaultSessionKey
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Ledger{
		store:       store,
		databaseKey: databaseKey,
		sessionKey:  sessionKey,
		logger:      logger,
	}
}

// Load reads the stored database snapshot. Returns (nil, nil) when no
// snapshot exists yet, signalling the caller to bootstrap from seed data.
func (l *Ledger) Load() (*Database, error) {
	raw, ok, err := l.store.Get(l.databaseKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	if !ok {
		return nil, nil
	}
	var db Database
	if err := json.Unmarshal([]byte(raw), &db); err != nil {
		return nil, fmt.Errorf("%w: decoding database snapshot: %v", domain.ErrPersistence, err)
	}
	l.logger.Debug("ledger snapshot loaded",
		"users", len(db.Users),
		"wallets", len(db.Wallets),
		"sessions", len(db.Sessions),
		"transactions", len(db.Transactions),
	)
	return &db, nil
}

// Save serializes the database and writes it under the database key.
func (l *Ledger) Save(db *Database) error {
	raw, err := json.Marshal(db)
	if err != nil {
		return fmt.Errorf("%w: encoding database snapshot: %v", domain.ErrPersistence, err)
	}
	if err := l.store.Set(l.databaseKey, string(raw)); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	return nil
}

// SessionToken returns the stored active-session token, if any.
func (l *Ledger) SessionToken() (string, bool, error) {
	token, ok, err := l.store.Get(l.sessionKey)
	if err != nil {
		return "", false, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	return token, ok, nil
}

// SetSessionToken stores token as the active-session reference.
func (l *Ledger) SetSessionToken(token string) error {
	if err := l.store.Set(l.sessionKey, token); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	return nil
}

// ClearSessionToken removes the active-session reference.
func (l *Ledger) ClearSessionToken() error {
	if err := l.store.Remove(l.sessionKey); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	return nil
}

// Reset removes both stored keys so the next load re-seeds.
func (l *Ledger) Reset() error {
	if err := l.store.Remove(l.databaseKey); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	if err := l.store.Remove(l.sessionKey); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	return nil
}
