// Package query provides read-only projections over the ledger: balance-free
// history pages enriched with counterparty names, and transaction lookup.
package query

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/demipay/demipay/pkg/config"
	"github.com/demipay/demipay/pkg/domain/transaction"
	"github.com/demipay/demipay/pkg/domain/user"
	"github.com/demipay/demipay/pkg/dto"
	"github.com/demipay/demipay/pkg/ledger"
)

// DefaultLimit is the history page size when the caller passes none.
const DefaultLimit = 50

// SessionContext resolves the authenticated caller. Satisfied by the auth
// service.
type SessionContext interface {
	CurrentUserRecord() (*user.User, error)
}

// Service answers read-only queries against the shared ledger database.
type Service struct {
	db      *ledger.Database
	session SessionContext
	latency *config.Latency
	logger  *slog.Logger
}

// New creates the query service.
func New(
	db *ledger.Database,
	session SessionContext,
	latency *config.Latency,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{db: db, session: session, latency: latency, logger: logger}
}

// GetTransactionHistory returns a page of the caller's transactions, newest
// first, with counterparty display details. Total counts every matching
// transaction before pagination. A non-positive limit falls back to
// DefaultLimit; a negative offset is treated as zero.
func (s *Service) GetTransactionHistory(
	ctx context.Context,
	limit, offset int,
) (*dto.HistoryRead, error) {
	if err := s.simulate(ctx); err != nil {
		return nil, err
	}
	u, err := s.session.CurrentUserRecord()
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if offset < 0 {
		offset = 0
	}

	matches := s.db.TransactionsForUser(u.ID)
	total := len(matches)

	// Stable sort keeps insertion order among equal timestamps.
	sorted := make([]*transaction.Transaction, total)
	copy(sorted, matches)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})

	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}
	page := sorted[offset:end]

	out := make([]*dto.TransactionRead, 0, len(page))
	for _, t := range page {
		out = append(out, s.enrich(t))
	}
	return &dto.HistoryRead{Transactions: out, Total: total}, nil
}

// GetTransaction returns any transaction by id. No ownership check is
// applied, matching the legacy behavior; the caller still has to be
// authenticated.
func (s *Service) GetTransaction(ctx context.Context, id string) (*dto.TransactionRead, error) {
	if err := s.simulate(ctx); err != nil {
		return nil, err
	}
	if _, err := s.session.CurrentUserRecord(); err != nil {
		return nil, err
	}
	t := s.db.TransactionByID(id)
	if t == nil {
		return nil, transaction.ErrTransactionNotFound
	}
	return s.enrich(t), nil
}

// enrich resolves both transaction sides to display names, leaving the
// external fallback for the sentinel or any unresolvable id.
func (s *Service) enrich(t *transaction.Transaction) *dto.TransactionRead {
	read := dto.ReadTransaction(t)
	if sender := s.db.UserByID(t.SenderID); sender != nil {
		read.SenderName = sender.FullName
		read.SenderEmail = sender.Email
	}
	if recipient := s.db.UserByID(t.RecipientID); recipient != nil {
		read.RecipientName = recipient.FullName
		read.RecipientEmail = recipient.Email
	}
	return read
}

func (s *Service) simulate(ctx context.Context) error {
	if s.latency == nil || !s.latency.Enabled || s.latency.Query <= 0 {
		return nil
	}
	select {
	case <-time.After(s.latency.Query):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
