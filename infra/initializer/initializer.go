// Package initializer wires the ledger stack: logger, store, database
// bootstrap, services and session restore.
package initializer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/demipay/demipay/internal/fixtures"
	"github.com/demipay/demipay/pkg/config"
	"github.com/demipay/demipay/pkg/domain/session"
	"github.com/demipay/demipay/pkg/ledger"
	"github.com/demipay/demipay/pkg/service/auth"
	"github.com/demipay/demipay/pkg/service/query"
	"github.com/demipay/demipay/pkg/service/wallet"
	"github.com/demipay/demipay/pkg/storage"
)

// App bundles the wired services.
type App struct {
	Config *config.App
	Logger *slog.Logger
	DB     *ledger.Database
	Books  *ledger.Ledger
	Auth   *auth.Service
	Wallet *wallet.Engine
	Query  *query.Service
}

// Initialize builds the full stack from configuration: opens the store,
// loads the stored snapshot (seeding it on first run), wires the services
// over the shared database and restores any stored session.
func Initialize(ctx context.Context, cfg *config.App) (*App, error) {
	logger := setupLogger(cfg.Log)

	store, err := openStore(cfg.Store)
	if err != nil {
		return nil, err
	}
	books := ledger.New(store, cfg.Store.DatabaseKey, cfg.Store.SessionKey, logger)

	db, err := loadOrSeed(books, logger)
	if err != nil {
		return nil, err
	}

	verifier, err := pickVerifier(cfg.Auth)
	if err != nil {
		return nil, err
	}
	tokens, err := pickTokenSource(cfg.Auth)
	if err != nil {
		return nil, err
	}
	meta := session.Metadata{IPAddress: "127.0.0.1", UserAgent: "demipay-cli"}

	authSvc := auth.New(db, books, verifier, tokens, cfg.Auth.SessionTTL, meta, logger)
	if err := authSvc.Restore(ctx); err != nil {
		return nil, err
	}

	return &App{
		Config: cfg,
		Logger: logger,
		DB:     db,
		Books:  books,
		Auth:   authSvc,
		Wallet: wallet.New(db, books, authSvc, cfg.Fee.Rate, cfg.Latency, logger),
		Query:  query.New(db, authSvc, cfg.Latency, logger),
	}, nil
}

// Reset wipes the stored database and session, then rebuilds the stack from
// the seed document.
func Reset(ctx context.Context, cfg *config.App) (*App, error) {
	store, err := openStore(cfg.Store)
	if err != nil {
		return nil, err
	}
	books := ledger.New(store, cfg.Store.DatabaseKey, cfg.Store.SessionKey, slog.Default())
	if err := books.Reset(); err != nil {
		return nil, err
	}
	return Initialize(ctx, cfg)
}

func openStore(cfg *config.Store) (storage.Store, error) {
	if cfg.Path == "" {
		return storage.NewMemoryStore(), nil
	}
	return storage.NewFileStore(cfg.Path)
}

// loadOrSeed returns the stored snapshot, writing the embedded seed through
// the store on first run.
func loadOrSeed(books *ledger.Ledger, logger *slog.Logger) (*ledger.Database, error) {
	db, err := books.Load()
	if err != nil {
		return nil, err
	}
	if db != nil {
		return db, nil
	}

	logger.Info("no stored database, bootstrapping from seed")
	db, err = fixtures.SeedDatabase()
	if err != nil {
		return nil, err
	}
	if err := books.Save(db); err != nil {
		return nil, err
	}
	return db, nil
}

func pickVerifier(cfg *config.Auth) (auth.CredentialVerifier, error) {
	switch cfg.Verifier {
	case "", "plaintext":
		return auth.PlaintextVerifier{}, nil
	case "bcrypt":
		return auth.BcryptVerifier{}, nil
	default:
		return nil, fmt.Errorf("unknown credential verifier %q", cfg.Verifier)
	}
}

func pickTokenSource(cfg *config.Auth) (auth.TokenSource, error) {
	switch cfg.TokenSource {
	case "", "opaque":
		return auth.OpaqueTokenSource{}, nil
	case "jwt":
		if cfg.Jwt == nil || cfg.Jwt.Secret == "" {
			return nil, fmt.Errorf("jwt token source requires a secret")
		}
		return auth.JWTTokenSource{Cfg: cfg.Jwt}, nil
	default:
		return nil, fmt.Errorf("unknown token source %q", cfg.TokenSource)
	}
}
