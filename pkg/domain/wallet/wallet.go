// Package wallet defines the wallet entity and its balance invariant.
package wallet

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/demipay/demipay/pkg/money"
	"github.com/google/uuid"
)

var (
	// ErrWalletNotFound is returned when no wallet exists for a user. Should
	// not occur given registration atomicity, but handled defensively.
	ErrWalletNotFound = errors.New("wallet not found")
	// ErrInsufficientBalance is returned when a debit would take the balance
	// below zero.
	ErrInsufficientBalance = errors.New("insufficient balance")
)

// Wallet holds a single user's funds. Exactly one wallet exists per user,
// created atomically with the user at registration.
//
// Invariants:
//   - Balance is never negative after a committed operation.
//   - A wallet is never shared between users.
type Wallet struct {
	ID        string      `json:"id"`
	UserID    string      `json:"user_id"`
	Balance   money.Money `json:"balance"`
	Address   string      `json:"wallet_address"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// New creates a zero-balance wallet for the given user.
func New(userID, ownerFullName string, currency money.Currency) (*Wallet, error) {
	if userID == "" {
		return nil, errors.New("wallet must have an owner")
	}
	if !currency.IsValid() {
		return nil, fmt.Errorf("%w: %v", money.ErrInvalidCurrency, currency)
	}
	now := time.Now().UTC()
	return &Wallet{
		ID:        "wallet-" + uuid.NewString(),
		UserID:    userID,
		Balance:   money.Zero(currency),
		Address:   GenerateAddress(ownerFullName, now),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// GenerateAddress builds the human-readable wallet address, e.g.
// "DP-ALICE-JOHNSON-1735689600000".
func GenerateAddress(fullName string, at time.Time) string {
	name := strings.ToUpper(strings.Join(strings.Fields(fullName), "-"))
	if name == "" {
		name = "WALLET"
	}
	return fmt.Sprintf("DP-%s-%d", name, at.UnixMilli())
}

// Credit adds funds to the wallet and stamps UpdatedAt. Credits are allowed
// to be non-positive, but never drive the balance below zero.
func (w *Wallet) Credit(m money.Money) error {
	next, err := w.Balance.Add(m)
	if err != nil {
		return err
	}
	if next.IsNegative() {
		return money.ErrNegativeAmount
	}
	w.Balance = next
	w.UpdatedAt = time.Now().UTC()
	return nil
}

// Debit removes funds from the wallet and stamps UpdatedAt.
// Fails with ErrInsufficientBalance instead of letting the balance go
// negative.
func (w *Wallet) Debit(m money.Money) error {
	next, err := w.Balance.Subtract(m)
	if err != nil {
		return err
	}
	if next.IsNegative() {
		return ErrInsufficientBalance
	}
	w.Balance = next
	w.UpdatedAt = time.Now().UTC()
	return nil
}

// Clone returns a copy of the wallet. Services mutate clones and swap them in
// only after the whole operation is known to commit.
func (w *Wallet) Clone() *Wallet {
	c := *w
	return &c
}
