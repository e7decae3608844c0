// Package transaction defines the immutable transaction record.
package transaction

import (
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/demipay/demipay/pkg/money"
	"github.com/google/uuid"
)

var (
	// ErrInvalidAmount is returned when a payment amount is not positive.
	ErrInvalidAmount = errors.New("amount must be greater than 0")
	// ErrSelfTransferNotAllowed is returned when sender and recipient are the
	// same user.
	ErrSelfTransferNotAllowed = errors.New("cannot send payment to yourself")
	// ErrTransactionNotFound is returned when a lookup by id misses.
	ErrTransactionNotFound = errors.New("transaction not found")
)

// ExternalSender is the sentinel sender id for funds arriving from outside
// the modeled user set.
const ExternalSender = "external"

// Kind distinguishes outgoing from incoming transactions.
type Kind string

// Transaction kinds
const (
	KindSend    Kind = "send"
	KindReceive Kind = "receive"
)

// StatusCompleted is the only status the mock models; there are no pending or
// failed transactions.
const StatusCompleted = "completed"

// Transaction is an immutable ledger entry. Once created it is never
// mutated; balances change only at creation time.
//
// Invariants:
//   - Amount is positive.
//   - Fee is zero for receive transactions.
type Transaction struct {
	ID          string      `json:"id"`
	SenderID    string      `json:"sender_id"`
	RecipientID string      `json:"recipient_id"`
	Amount      money.Money `json:"amount"`
	Currency    money.Code  `json:"currency"`
	Kind        Kind        `json:"type"`
	Status      string      `json:"status"`
	Note        string      `json:"note"`
	Reference   string      `json:"transaction_hash"`
	CreatedAt   time.Time   `json:"created_at"`
	CompletedAt time.Time   `json:"completed_at"`
	Fee         money.Money `json:"fee"`
}

// NewSend records an outgoing transfer between two users.
func NewSend(senderID, recipientID string, amount, fee money.Money, note string) (*Transaction, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if senderID == recipientID {
		return nil, ErrSelfTransferNotAllowed
	}
	if fee.IsNegative() {
		return nil, money.ErrNegativeAmount
	}
	now := time.Now().UTC()
	return &Transaction{
		ID:          "txn-" + uuid.NewString(),
		SenderID:    senderID,
		RecipientID: recipientID,
		Amount:      amount,
		Currency:    amount.CurrencyCode(),
		Kind:        KindSend,
		Status:      StatusCompleted,
		Note:        note,
		Reference:   GenerateReference(now),
		CreatedAt:   now,
		CompletedAt: now,
		Fee:         fee,
	}, nil
}

// NewReceive records an incoming payment from the external sentinel. The
// legacy mock accepts any usable numeric amount here, including non-positive
// ones, so no positivity check is applied.
func NewReceive(recipientID string, amount money.Money, note string) *Transaction {
	if note == "" {
		note = "Incoming payment"
	}
	now := time.Now().UTC()
	return &Transaction{
		ID:          "txn-" + uuid.NewString(),
		SenderID:    ExternalSender,
		RecipientID: recipientID,
		Amount:      amount,
		Currency:    amount.CurrencyCode(),
		Kind:        KindReceive,
		Status:      StatusCompleted,
		Note:        note,
		Reference:   GenerateReference(now),
		CreatedAt:   now,
		CompletedAt: now,
		Fee:         money.Zero(amount.Currency()),
	}
}

// GenerateReference builds the human-readable reference string, e.g.
// "TXN-2025-01-01-A1B2C3".
func GenerateReference(at time.Time) string {
	const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	buf := make([]byte, 6)
	_, _ = rand.Read(buf)
	for i, b := range buf {
		buf[i] = alphabet[int(b)%len(alphabet)]
	}
	return fmt.Sprintf("TXN-%s-%s", at.Format("2006-01-02"), buf)
}
