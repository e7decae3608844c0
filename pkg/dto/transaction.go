package dto

import (
	"time"

	"github.com/demipay/demipay/pkg/domain/transaction"
)

// External counterparty fallbacks used when a transaction side does not
// resolve to a known user.
const (
	ExternalName  = "External"
	ExternalEmail = "external@example.com"
)

// TransactionRead is a history entry enriched with counterparty display
// details.
type TransactionRead struct {
	ID             string    `json:"id"`
	SenderID       string    `json:"sender_id"`
	RecipientID    string    `json:"recipient_id"`
	Amount         float64   `json:"amount"`
	Currency       string    `json:"currency"`
	Kind           string    `json:"type"`
	Status         string    `json:"status"`
	Note           string    `json:"note"`
	Reference      string    `json:"transaction_hash"`
	CreatedAt      time.Time `json:"created_at"`
	CompletedAt    time.Time `json:"completed_at"`
	Fee            float64   `json:"fee"`
	SenderName     string    `json:"sender_name"`
	SenderEmail    string    `json:"sender_email"`
	RecipientName  string    `json:"recipient_name"`
	RecipientEmail string    `json:"recipient_email"`
}

// ReadTransaction maps a ledger entry to its read view with external
// fallbacks; callers overwrite the counterparty fields they can resolve.
func ReadTransaction(t *transaction.Transaction) *TransactionRead {
	if t == nil {
		return nil
	}
	return &TransactionRead{
		ID:             t.ID,
		SenderID:       t.SenderID,
		RecipientID:    t.RecipientID,
		Amount:         t.Amount.AmountFloat(),
		Currency:       t.Currency.String(),
		Kind:           string(t.Kind),
		Status:         t.Status,
		Note:           t.Note,
		Reference:      t.Reference,
		CreatedAt:      t.CreatedAt,
		CompletedAt:    t.CompletedAt,
		Fee:            t.Fee.AmountFloat(),
		SenderName:     ExternalName,
		SenderEmail:    ExternalEmail,
		RecipientName:  ExternalName,
		RecipientEmail: ExternalEmail,
	}
}

// HistoryRead is a page of transaction history. Total counts every matching
// transaction before pagination.
type HistoryRead struct {
	Transactions []*TransactionRead `json:"transactions"`
	Total        int                `json:"total"`
}

// PaymentOutput bundles a committed transaction with the caller's new
// balance.
type PaymentOutput struct {
	Transaction *TransactionRead `json:"transaction"`
	NewBalance  float64          `json:"new_balance"`
}
