// Package wallet implements the wallet ledger engine: balance reads, fee
// computation and atomic balance transfers with transaction recording.
package wallet

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/demipay/demipay/pkg/config"
	"github.com/demipay/demipay/pkg/domain/transaction"
	"github.com/demipay/demipay/pkg/domain/user"
	domainwallet "github.com/demipay/demipay/pkg/domain/wallet"
	"github.com/demipay/demipay/pkg/dto"
	"github.com/demipay/demipay/pkg/ledger"
	"github.com/demipay/demipay/pkg/money"
)

// DefaultFeeRate is the surcharge applied to outgoing transfers: 0.5%.
const DefaultFeeRate = 0.005

// SessionContext resolves the authenticated caller. Satisfied by the auth
// service.
type SessionContext interface {
	CurrentUserRecord() (*user.User, error)
}

// Engine executes wallet operations against the shared ledger database.
// Single-writer: operations are synchronous state transitions; each call
// either commits and persists or fails without durable mutation.
type Engine struct {
	db      *ledger.Database
	books   *ledger.Ledger
	session SessionContext
	feeRate float64
	latency *config.Latency
	logger  *slog.Logger
}

// New creates the engine. A non-positive fee rate falls back to
// DefaultFeeRate; latency may be nil to disable simulated delays.
func New(
	db *ledger.Database,
	books *ledger.Ledger,
	session SessionContext,
	feeRate float64,
	latency *config.Latency,
	logger *slog.Logger,
) *Engine {
	if feeRate <= 0 {
		feeRate = DefaultFeeRate
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		db:      db,
		books:   books,
		session: session,
		feeRate: feeRate,
		latency: latency,
		logger:  logger,
	}
}

// FeeRate returns the configured outgoing-transfer fee rate.
func (e *Engine) FeeRate() float64 { return e.feeRate }

// GetBalance returns the caller's balance, currency and wallet address.
func (e *Engine) GetBalance(ctx context.Context) (*dto.BalanceRead, error) {
	if err := e.simulate(ctx, e.walletDelay()); err != nil {
		return nil, err
	}
	u, err := e.session.CurrentUserRecord()
	if err != nil {
		return nil, err
	}
	w := e.db.WalletByUserID(u.ID)
	if w == nil {
		return nil, domainwallet.ErrWalletNotFound
	}
	return &dto.BalanceRead{
		Balance:       w.Balance.AmountFloat(),
		Currency:      w.Balance.CurrencyCode().String(),
		WalletAddress: w.Address,
	}, nil
}

// GetWalletDetails returns the caller's full wallet record.
func (e *Engine) GetWalletDetails(ctx context.Context) (*dto.WalletRead, error) {
	if err := e.simulate(ctx, e.walletDelay()); err != nil {
		return nil, err
	}
	u, err := e.session.CurrentUserRecord()
	if err != nil {
		return nil, err
	}
	w := e.db.WalletByUserID(u.ID)
	if w == nil {
		return nil, domainwallet.ErrWalletNotFound
	}
	return dto.ReadWallet(w), nil
}

// SendPayment transfers amount to the user behind recipientEmail, debiting
// the sender amount plus the fee and crediting the recipient the amount
// exactly. All mutations land atomically: wallets are debited and credited
// on clones that are swapped in together with the transaction record, then
// persisted as one write; a failed write rolls everything back.
func (e *Engine) SendPayment(
	ctx context.Context,
	recipientEmail string,
	amount float64,
	note string,
) (*dto.PaymentOutput, error) {
	log := e.logger.With("context", "SendPayment", "recipient", recipientEmail)
	if err := e.simulate(ctx, e.paymentDelay()); err != nil {
		return nil, err
	}
	sender, err := e.session.CurrentUserRecord()
	if err != nil {
		return nil, err
	}

	senderWallet := e.db.WalletByUserID(sender.ID)
	if senderWallet == nil {
		return nil, domainwallet.ErrWalletNotFound
	}
	sendAmount, err := money.New(amount, senderWallet.Balance.Currency())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", transaction.ErrInvalidAmount, err)
	}
	if !sendAmount.IsPositive() {
		return nil, transaction.ErrInvalidAmount
	}

	recipient := e.db.UserByEmail(recipientEmail)
	if recipient == nil {
		return nil, user.ErrRecipientNotFound
	}
	if recipient.ID == sender.ID {
		return nil, transaction.ErrSelfTransferNotAllowed
	}
	recipientWallet := e.db.WalletByUserID(recipient.ID)
	if recipientWallet == nil {
		return nil, domainwallet.ErrWalletNotFound
	}

	fee, err := sendAmount.Multiply(e.feeRate)
	if err != nil {
		return nil, err
	}
	total, err := sendAmount.Add(fee)
	if err != nil {
		return nil, err
	}
	if enough, err := e.covers(senderWallet, total); err != nil {
		return nil, err
	} else if !enough {
		log.Info("SendPayment failed", "error", domainwallet.ErrInsufficientBalance)
		return nil, domainwallet.ErrInsufficientBalance
	}

	// Apply the transfer on clones so a failure at any point leaves the
	// live database untouched.
	debited := senderWallet.Clone()
	credited := recipientWallet.Clone()
	if err := debited.Debit(total); err != nil {
		return nil, err
	}
	if err := credited.Credit(sendAmount); err != nil {
		return nil, err
	}
	txn, err := transaction.NewSend(sender.ID, recipient.ID, sendAmount, fee, note)
	if err != nil {
		return nil, err
	}

	e.db.ReplaceWallet(debited)
	e.db.ReplaceWallet(credited)
	e.db.Transactions = append(e.db.Transactions, txn)
	if err := e.books.Save(e.db); err != nil {
		e.db.ReplaceWallet(senderWallet)
		e.db.ReplaceWallet(recipientWallet)
		e.db.Transactions = e.db.Transactions[:len(e.db.Transactions)-1]
		log.Error("SendPayment persistence failed", "error", err)
		return nil, err
	}

	log.Info("SendPayment successful",
		"reference", txn.Reference,
		"amount", sendAmount.String(),
		"fee", fee.String(),
	)
	return &dto.PaymentOutput{
		Transaction: enrich(txn, sender, recipient),
		NewBalance:  debited.Balance.AmountFloat(),
	}, nil
}

// ReceivePayment credits the caller's wallet with funds from outside the
// modeled user set. No fee is charged. The amount only has to be a usable
// number; non-positive amounts are accepted the way the legacy mock accepts
// them.
func (e *Engine) ReceivePayment(
	ctx context.Context,
	amount float64,
	note string,
) (*dto.PaymentOutput, error) {
	log := e.logger.With("context", "ReceivePayment")
	if err := e.simulate(ctx, e.paymentDelay()); err != nil {
		return nil, err
	}
	u, err := e.session.CurrentUserRecord()
	if err != nil {
		return nil, err
	}
	w := e.db.WalletByUserID(u.ID)
	if w == nil {
		return nil, domainwallet.ErrWalletNotFound
	}

	received, err := money.New(amount, w.Balance.Currency())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", transaction.ErrInvalidAmount, err)
	}

	credited := w.Clone()
	if err := credited.Credit(received); err != nil {
		return nil, err
	}
	txn := transaction.NewReceive(u.ID, received, note)

	e.db.ReplaceWallet(credited)
	e.db.Transactions = append(e.db.Transactions, txn)
	if err := e.books.Save(e.db); err != nil {
		e.db.ReplaceWallet(w)
		e.db.Transactions = e.db.Transactions[:len(e.db.Transactions)-1]
		log.Error("ReceivePayment persistence failed", "error", err)
		return nil, err
	}

	log.Info("ReceivePayment successful", "reference", txn.Reference, "amount", received.String())
	return &dto.PaymentOutput{
		Transaction: enrich(txn, nil, u),
		NewBalance:  credited.Balance.AmountFloat(),
	}, nil
}

// covers reports whether the wallet balance can pay total.
func (e *Engine) covers(w *domainwallet.Wallet, total money.Money) (bool, error) {
	short, err := w.Balance.LessThan(total)
	if err != nil {
		return false, err
	}
	return !short, nil
}

// enrich fills the counterparty display fields; a nil side keeps the
// external fallback.
func enrich(txn *transaction.Transaction, sender, recipient *user.User) *dto.TransactionRead {
	read := dto.ReadTransaction(txn)
	if sender != nil {
		read.SenderName = sender.FullName
		read.SenderEmail = sender.Email
	}
	if recipient != nil {
		read.RecipientName = recipient.FullName
		read.RecipientEmail = recipient.Email
	}
	return read
}

func (e *Engine) walletDelay() time.Duration {
	if e.latency == nil || !e.latency.Enabled {
		return 0
	}
	return e.latency.Wallet
}

func (e *Engine) paymentDelay() time.Duration {
	if e.latency == nil || !e.latency.Enabled {
		return 0
	}
	return e.latency.Payment
}

// simulate sleeps for the configured presentation delay, honoring
// cancellation. Never changes ordering or outcome.
func (e *Engine) simulate(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
