// Package ledger holds the in-memory ledger database and its persistence
// through the key-value store.
package ledger

import (
	"github.com/demipay/demipay/pkg/domain/session"
	"github.com/demipay/demipay/pkg/domain/transaction"
	"github.com/demipay/demipay/pkg/domain/user"
	"github.com/demipay/demipay/pkg/domain/wallet"
)

// Database is the aggregate of all ledger collections. Lookups are simple
// scans; at mock scale (dozens of records) an index buys nothing, and
// uniqueness for email and token is enforced by scan-before-insert.
type Database struct {
	Users        []*user.User               `json:"users"`
	Wallets      []*wallet.Wallet           `json:"wallets"`
	Sessions     []*session.Session         `json:"sessions"`
	Transactions []*transaction.Transaction `json:"transactions"`
}

// NewDatabase returns an empty database.
func NewDatabase() *Database {
	return &Database{
		Users:        []*user.User{},
		Wallets:      []*wallet.Wallet{},
		Sessions:     []*session.Session{},
		Transactions: []*transaction.Transaction{},
	}
}

// UserByEmail scans for a user by exact email match.
func (d *Database) UserByEmail(email string) *user.User {
	for _, u := range d.Users {
		if u.Email == email {
			return u
		}
	}
	return nil
}

// UserByID scans for a user by id.
func (d *Database) UserByID(id string) *user.User {
	for _, u := range d.Users {
		if u.ID == id {
			return u
		}
	}
	return nil
}

// WalletByUserID scans for the wallet owned by the given user.
func (d *Database) WalletByUserID(userID string) *wallet.Wallet {
	for _, w := range d.Wallets {
		if w.UserID == userID {
			return w
		}
	}
	return nil
}

// SessionByToken scans for a session by bearer token.
func (d *Database) SessionByToken(token string) *session.Session {
	for _, s := range d.Sessions {
		if s.Token == token {
			return s
		}
	}
	return nil
}

// TransactionByID scans for a transaction by id.
func (d *Database) TransactionByID(id string) *transaction.Transaction {
	for _, t := range d.Transactions {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// TransactionsForUser returns every transaction where the user is sender or
// recipient, in insertion order.
func (d *Database) TransactionsForUser(userID string) []*transaction.Transaction {
	var out []*transaction.Transaction
	for _, t := range d.Transactions {
		if t.SenderID == userID || t.RecipientID == userID {
			out = append(out, t)
		}
	}
	return out
}

// RemoveSession removes the session with the given id. Removing an absent
// session is a no-op.
func (d *Database) RemoveSession(id string) {
	for i, s := range d.Sessions {
		if s.ID == id {
			d.Sessions = append(d.Sessions[:i], d.Sessions[i+1:]...)
			return
		}
	}
}

// ReplaceWallet swaps in a new value for the wallet with the same id.
func (d *Database) ReplaceWallet(w *wallet.Wallet) {
	for i, existing := range d.Wallets {
		if existing.ID == w.ID {
			d.Wallets[i] = w
			return
		}
	}
}
