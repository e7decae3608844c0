package dto

import (
	"time"

	"github.com/demipay/demipay/pkg/domain/wallet"
)

// BalanceRead is the response of a balance query.
type BalanceRead struct {
	Balance       float64 `json:"balance"`
	Currency      string  `json:"currency"`
	WalletAddress string  `json:"wallet_address"`
}

// WalletRead is the full wallet detail view.
type WalletRead struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Balance   float64   `json:"balance"`
	Currency  string    `json:"currency"`
	Address   string    `json:"wallet_address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ReadWallet maps a domain wallet to its detail view.
func ReadWallet(w *wallet.Wallet) *WalletRead {
	if w == nil {
		return nil
	}
	return &WalletRead{
		ID:        w.ID,
		UserID:    w.UserID,
		Balance:   w.Balance.AmountFloat(),
		Currency:  w.Balance.CurrencyCode().String(),
		Address:   w.Address,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}
