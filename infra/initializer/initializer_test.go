package initializer_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/demipay/demipay/infra/initializer"
	"github.com/demipay/demipay/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(storePath string) *config.App {
	return &config.App{
		Env:     "test",
		Log:     &config.Log{Level: 8, Format: "text", TimeFormat: "15:04:05", Prefix: "[test]"},
		Store:   &config.Store{Path: storePath},
		Auth:    &config.Auth{TokenSource: "opaque", Verifier: "plaintext"},
		Fee:     &config.Fee{Rate: 0.005},
		Latency: &config.Latency{},
	}
}

func TestInitialize_SeedsOnFirstRun(t *testing.T) {
	app, err := initializer.Initialize(context.Background(), testConfig(""))
	require.NoError(t, err)

	assert.Len(t, app.DB.Users, 2)
	assert.NotNil(t, app.DB.UserByEmail("demo@demipay.com"))
	assert.False(t, app.Auth.IsAuthenticated())

	// The seed was written through the store, not just held in memory.
	stored, err := app.Books.Load()
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Len(t, stored.Users, 2)
}

func TestInitialize_RestoresSessionAcrossRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	cfg := testConfig(path)
	ctx := context.Background()

	app, err := initializer.Initialize(ctx, cfg)
	require.NoError(t, err)
	_, err = app.Auth.Login(ctx, "demo@demipay.com", "demo1234")
	require.NoError(t, err)

	// A second Initialize over the same file picks the session back up.
	restarted, err := initializer.Initialize(ctx, cfg)
	require.NoError(t, err)
	assert.True(t, restarted.Auth.IsAuthenticated())
	assert.Equal(t, "demo@demipay.com", restarted.Auth.CurrentUser().Email)
}

func TestReset_RestoresSeedState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	cfg := testConfig(path)
	ctx := context.Background()

	app, err := initializer.Initialize(ctx, cfg)
	require.NoError(t, err)
	_, err = app.Auth.Login(ctx, "demo@demipay.com", "demo1234")
	require.NoError(t, err)
	_, err = app.Wallet.ReceivePayment(ctx, 500, "")
	require.NoError(t, err)

	fresh, err := initializer.Reset(ctx, cfg)
	require.NoError(t, err)
	assert.False(t, fresh.Auth.IsAuthenticated())

	demo := fresh.DB.UserByEmail("demo@demipay.com")
	require.NotNil(t, demo)
	w := fresh.DB.WalletByUserID(demo.ID)
	require.NotNil(t, w)
	assert.Equal(t, int64(125050), w.Balance.Amount())
}

func TestInitialize_RejectsBadAuthConfig(t *testing.T) {
	cfg := testConfig("")
	cfg.Auth.TokenSource = "jwt" // no secret configured

	_, err := initializer.Initialize(context.Background(), cfg)
	assert.Error(t, err)
}
