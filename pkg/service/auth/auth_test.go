package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/demipay/demipay/internal/fixtures"
	"github.com/demipay/demipay/pkg/config"
	"github.com/demipay/demipay/pkg/domain"
	"github.com/demipay/demipay/pkg/domain/session"
	"github.com/demipay/demipay/pkg/domain/user"
	"github.com/demipay/demipay/pkg/dto"
	"github.com/demipay/demipay/pkg/ledger"
	"github.com/demipay/demipay/pkg/service/auth"
	"github.com/demipay/demipay/pkg/storage"
	"github.com/demipay/demipay/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jwtConfig() *config.Jwt {
	return &config.Jwt{Secret: "test-secret", Expiry: 24 * time.Hour}
}

func newAuthService(t *testing.T) (*auth.Service, *ledger.Database, *storage.MemoryStore) {
	t.Helper()
	store := storage.NewMemoryStore()
	books := ledger.New(store, "", "", nil)
	db, err := fixtures.SeedDatabase()
	require.NoError(t, err)
	require.NoError(t, books.Save(db))
	svc := auth.New(db, books, nil, nil, 0, session.Metadata{}, nil)
	return svc, db, store
}

func TestLogin_Success(t *testing.T) {
	t.Parallel()
	svc, db, _ := newAuthService(t)

	out, err := svc.Login(context.Background(), "demo@demipay.com", "demo1234")
	require.NoError(t, err)
	require.NotNil(t, out.User)
	assert.Equal(t, "demo@demipay.com", out.User.Email)
	assert.NotEmpty(t, out.SessionToken)
	assert.True(t, svc.IsAuthenticated())
	require.NotNil(t, db.SessionByToken(out.SessionToken))
}

func TestLogin_InvalidCredentials(t *testing.T) {
	t.Parallel()
	svc, _, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Login(ctx, "demo@demipay.com", "wrong")
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody@example.com", "demo1234")
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)

	assert.False(t, svc.IsAuthenticated())
}

func TestLogin_InactiveAccount(t *testing.T) {
	t.Parallel()
	svc, db, _ := newAuthService(t)
	db.UserByEmail("demo@demipay.com").IsActive = false

	_, err := svc.Login(context.Background(), "demo@demipay.com", "demo1234")
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)
}

func TestLogin_TokensUniqueAcrossSessions(t *testing.T) {
	t.Parallel()
	svc, db, _ := newAuthService(t)
	ctx := context.Background()

	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		out, err := svc.Login(ctx, "demo@demipay.com", "demo1234")
		require.NoError(t, err)
		assert.False(t, seen[out.SessionToken])
		seen[out.SessionToken] = true
	}
	assert.Len(t, db.Sessions, 5)
}

func TestLogin_PersistenceFailureRollsBack(t *testing.T) {
	t.Parallel()
	svc, db, store := newAuthService(t)
	store.FailWrites = true

	_, err := svc.Login(context.Background(), "demo@demipay.com", "demo1234")
	assert.ErrorIs(t, err, domain.ErrPersistence)
	assert.Empty(t, db.Sessions)
	assert.False(t, svc.IsAuthenticated())
}

func TestRegister_CreatesUserAndWalletTogether(t *testing.T) {
	t.Parallel()
	svc, db, _ := newAuthService(t)

	u, err := svc.Register(context.Background(), dto.RegisterInput{
		Email:    "alice@example.com",
		Password: "s3cret99",
		FullName: "Alice Johnson",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", u.Email)
	assert.True(t, u.IsActive)
	assert.Equal(t, "light", u.Preferences.Theme)
	assert.Equal(t, "USD", u.Preferences.Currency)

	w := db.WalletByUserID(u.ID)
	require.NotNil(t, w)
	assert.True(t, w.Balance.IsZero())
	assert.Equal(t, "USD", w.Balance.CurrencyCode().String())
}

func TestRegister_EmailTaken(t *testing.T) {
	t.Parallel()
	svc, _, _ := newAuthService(t)

	_, err := svc.Register(context.Background(), dto.RegisterInput{
		Email:    "demo@demipay.com",
		Password: "whatever1",
		FullName: "Demo Again",
	})
	assert.ErrorIs(t, err, user.ErrEmailTaken)
}

func TestRegister_InvalidInput(t *testing.T) {
	t.Parallel()
	svc, _, _ := newAuthService(t)

	_, err := svc.Register(context.Background(), dto.RegisterInput{
		Email:    "not-an-email",
		Password: "whatever1",
		FullName: "X",
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestRegister_PersistenceFailureCommitsNeither(t *testing.T) {
	t.Parallel()
	svc, db, store := newAuthService(t)
	store.FailWrites = true

	_, err := svc.Register(context.Background(), dto.RegisterInput{
		Email:    "alice@example.com",
		Password: "s3cret99",
		FullName: "Alice Johnson",
	})
	assert.ErrorIs(t, err, domain.ErrPersistence)
	assert.Nil(t, db.UserByEmail("alice@example.com"))
	assert.Len(t, db.Wallets, 2)
}

func TestLogout_Idempotent(t *testing.T) {
	t.Parallel()
	svc, db, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Login(ctx, "demo@demipay.com", "demo1234")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx))
	assert.False(t, svc.IsAuthenticated())
	assert.Empty(t, db.Sessions)

	// Second logout is a no-op, not an error.
	require.NoError(t, svc.Logout(ctx))
	assert.False(t, svc.IsAuthenticated())
}

func TestCurrentUser_Sanitized(t *testing.T) {
	t.Parallel()
	svc, _, _ := newAuthService(t)
	ctx := context.Background()

	assert.Nil(t, svc.CurrentUser())

	out, err := svc.Login(ctx, "demo@demipay.com", "demo1234")
	require.NoError(t, err)

	cu := svc.CurrentUser()
	require.NotNil(t, cu)
	assert.Equal(t, out.User.ID, cu.ID)
	// UserRead has no password field at all; the login payload is the same
	// sanitized shape.
	assert.Equal(t, "Demo User", cu.FullName)
}

func TestRestore_ResumesStoredSession(t *testing.T) {
	t.Parallel()
	store := storage.NewMemoryStore()
	books := ledger.New(store, "", "", nil)
	db, err := fixtures.SeedDatabase()
	require.NoError(t, err)
	require.NoError(t, books.Save(db))
	ctx := context.Background()

	first := auth.New(db, books, nil, nil, 0, session.Metadata{}, nil)
	out, err := first.Login(ctx, "demo@demipay.com", "demo1234")
	require.NoError(t, err)

	// Simulate a process restart over the same store.
	reloaded, err := books.Load()
	require.NoError(t, err)
	second := auth.New(reloaded, books, nil, nil, 0, session.Metadata{}, nil)
	require.NoError(t, second.Restore(ctx))

	assert.True(t, second.IsAuthenticated())
	assert.Equal(t, out.User.ID, second.CurrentUser().ID)
}

func TestRestore_ClearsDanglingToken(t *testing.T) {
	t.Parallel()
	svc, _, store := newAuthService(t)
	require.NoError(t, store.Set(ledger.DefaultSessionKey, "token-dangling"))

	require.NoError(t, svc.Restore(context.Background()))
	assert.False(t, svc.IsAuthenticated())
	_, ok, err := store.Get(ledger.DefaultSessionKey)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBcryptVerifier(t *testing.T) {
	t.Parallel()
	hash, err := utils.HashPassword("demo1234")
	require.NoError(t, err)

	v := auth.BcryptVerifier{}
	assert.True(t, v.Verify(hash, "demo1234"))
	assert.False(t, v.Verify(hash, "wrong"))
	assert.False(t, v.Verify("", "demo1234"))
}

func TestPlaintextVerifier(t *testing.T) {
	t.Parallel()
	v := auth.PlaintextVerifier{}
	assert.True(t, v.Verify("demo1234", "demo1234"))
	assert.False(t, v.Verify("demo1234", "demo12345"))
	assert.False(t, v.Verify("", ""))
}

func TestJWTTokenSource(t *testing.T) {
	t.Parallel()
	src := auth.JWTTokenSource{Cfg: jwtConfig()}
	u, err := user.New("alice@example.com", "pw", "Alice Johnson", "")
	require.NoError(t, err)

	a, err := src.Token(u)
	require.NoError(t, err)
	b, err := src.Token(u)
	require.NoError(t, err)
	assert.NotEmpty(t, a)
	// Two tokens minted for the same user are still distinct.
	assert.NotEqual(t, a, b)
}
