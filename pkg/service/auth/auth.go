// Package auth implements the identity and session manager: credential
// checks, session issuance and revocation, and resolution of the current
// user. The current session lives on the Service instance, never in a
// package-level global, so independent instances cannot cross-contaminate.
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/demipay/demipay/pkg/domain"
	"github.com/demipay/demipay/pkg/domain/session"
	"github.com/demipay/demipay/pkg/domain/user"
	"github.com/demipay/demipay/pkg/domain/wallet"
	"github.com/demipay/demipay/pkg/dto"
	"github.com/demipay/demipay/pkg/ledger"
	"github.com/demipay/demipay/pkg/money"
	"github.com/go-playground/validator/v10"
)

// Service is the identity and session manager.
type Service struct {
	db       *ledger.Database
	books    *ledger.Ledger
	verifier CredentialVerifier
	tokens   TokenSource
	ttl      time.Duration
	meta     session.Metadata
	validate *validator.Validate
	logger   *slog.Logger

	currentUser    *user.User
	currentSession *session.Session
}

// New creates the service. A nil verifier falls back to plaintext comparison
// and a nil token source to opaque uuid tokens, matching the legacy mock.
func New(
	db *ledger.Database,
	books *ledger.Ledger,
	verifier CredentialVerifier,
	tokens TokenSource,
	ttl time.Duration,
	meta session.Metadata,
	logger *slog.Logger,
) *Service {
	if verifier == nil {
		verifier = PlaintextVerifier{}
	}
	if tokens == nil {
		tokens = OpaqueTokenSource{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		db:       db,
		books:    books,
		verifier: verifier,
		tokens:   tokens,
		ttl:      ttl,
		meta:     meta,
		validate: validator.New(),
		logger:   logger,
	}
}

// Login authenticates the credentials, issues a session and stores its token
// as the active-session reference. Unknown email, wrong password and
// inactive account all fail with the same ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (*dto.LoginOutput, error) {
	log := s.logger.With("context", "Login", "email", email)
	log.Debug("Login called")

	u := s.db.UserByEmail(email)
	if u == nil {
		// Burn a verify on a missing user so the failure cost does not
		// reveal which field was wrong.
		s.verifier.Verify("", password)
		log.Info("Login failed", "error", user.ErrInvalidCredentials)
		return nil, user.ErrInvalidCredentials
	}
	if !u.IsActive || !s.verifier.Verify(u.Password, password) {
		log.Info("Login failed", "error", user.ErrInvalidCredentials)
		return nil, user.ErrInvalidCredentials
	}

	token, err := s.freshToken(u)
	if err != nil {
		return nil, fmt.Errorf("generating session token: %w", err)
	}
	sess := session.New(u.ID, token, s.ttl, s.meta)

	prevLogin := u.LastLogin
	s.db.Sessions = append(s.db.Sessions, sess)
	u.LastLogin = time.Now().UTC()

	if err := s.books.Save(s.db); err != nil {
		s.db.RemoveSession(sess.ID)
		u.LastLogin = prevLogin
		log.Error("Login persistence failed", "error", err)
		return nil, err
	}
	if err := s.books.SetSessionToken(token); err != nil {
		log.Error("Login session-token write failed", "error", err)
		return nil, err
	}

	s.currentUser = u
	s.currentSession = sess
	log.Info("Login successful", "userID", u.ID)
	return &dto.LoginOutput{User: dto.SanitizeUser(u), SessionToken: token}, nil
}

// Register creates a new user together with a zero-balance wallet in one
// durable write. Fails with ErrEmailTaken on a duplicate email.
func (s *Service) Register(ctx context.Context, input dto.RegisterInput) (*dto.UserRead, error) {
	log := s.logger.With("context", "Register", "email", input.Email)
	log.Debug("Register called")

	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if s.db.UserByEmail(input.Email) != nil {
		log.Info("Register failed", "error", user.ErrEmailTaken)
		return nil, user.ErrEmailTaken
	}

	u, err := user.New(input.Email, input.Password, input.FullName, input.Phone)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	currency := money.DefaultCurrency
	if input.Currency != "" {
		currency = money.Code(input.Currency).ToCurrency()
	}
	w, err := wallet.New(u.ID, u.FullName, currency)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	s.db.Users = append(s.db.Users, u)
	s.db.Wallets = append(s.db.Wallets, w)
	if err := s.books.Save(s.db); err != nil {
		// Neither record is committed if the combined write fails.
		s.db.Users = s.db.Users[:len(s.db.Users)-1]
		s.db.Wallets = s.db.Wallets[:len(s.db.Wallets)-1]
		log.Error("Register persistence failed", "error", err)
		return nil, err
	}

	log.Info("Register successful", "userID", u.ID)
	return dto.SanitizeUser(u), nil
}

// Logout revokes the current session and clears the active-session
// reference. Calling it with no active session is a no-op, not an error.
func (s *Service) Logout(ctx context.Context) error {
	log := s.logger.With("context", "Logout")
	if s.currentSession == nil {
		log.Debug("Logout with no active session")
		return nil
	}

	s.db.RemoveSession(s.currentSession.ID)
	if err := s.books.Save(s.db); err != nil {
		log.Error("Logout persistence failed", "error", err)
		return err
	}
	if err := s.books.ClearSessionToken(); err != nil {
		log.Error("Logout session-token clear failed", "error", err)
		return err
	}

	log.Info("Logout successful", "userID", s.currentSession.UserID)
	s.currentSession = nil
	s.currentUser = nil
	return nil
}

// Restore resolves a previously stored session token back to a live session,
// the way the browser build picks up its session across reloads. Missing or
// unresolvable tokens leave the service anonymous.
func (s *Service) Restore(ctx context.Context) error {
	log := s.logger.With("context", "Restore")
	token, ok, err := s.books.SessionToken()
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	sess := s.db.SessionByToken(token)
	if sess == nil {
		log.Debug("stored session token no longer resolves, clearing")
		return s.books.ClearSessionToken()
	}
	u := s.db.UserByID(sess.UserID)
	if u == nil {
		log.Debug("stored session has no user, clearing")
		return s.books.ClearSessionToken()
	}
	s.currentSession = sess
	s.currentUser = u
	log.Info("session restored", "userID", u.ID)
	return nil
}

// IsAuthenticated reports whether a session is active.
func (s *Service) IsAuthenticated() bool {
	return s.currentUser != nil && s.currentSession != nil
}

// CurrentUser returns the sanitized active user, or nil when anonymous.
func (s *Service) CurrentUser() *dto.UserRead {
	if !s.IsAuthenticated() {
		return nil
	}
	return dto.SanitizeUser(s.currentUser)
}

// CurrentUserRecord returns the active user's full domain record. Wallet and
// query services resolve their caller through this.
func (s *Service) CurrentUserRecord() (*user.User, error) {
	if !s.IsAuthenticated() {
		return nil, domain.ErrNotAuthenticated
	}
	return s.currentUser, nil
}

// CurrentSession returns the active session, or nil when anonymous.
func (s *Service) CurrentSession() *session.Session {
	return s.currentSession
}

// freshToken mints a token and re-mints on the off chance an issued session
// already carries it, keeping token uniqueness across the run.
func (s *Service) freshToken(u *user.User) (string, error) {
	for {
		token, err := s.tokens.Token(u)
		if err != nil {
			return "", err
		}
		if s.db.SessionByToken(token) == nil {
			return token, nil
		}
	}
}
