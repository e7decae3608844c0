package fixtures_test

import (
	"testing"

	"github.com/demipay/demipay/internal/fixtures"
	"github.com/demipay/demipay/pkg/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedDatabase(t *testing.T) {
	t.Parallel()
	db, err := fixtures.SeedDatabase()
	require.NoError(t, err)

	require.Len(t, db.Users, 2)
	require.Len(t, db.Wallets, 2)
	assert.Empty(t, db.Sessions)
	require.Len(t, db.Transactions, 2)

	demo := db.UserByEmail("demo@demipay.com")
	require.NotNil(t, demo)
	assert.True(t, demo.IsActive)

	w := db.WalletByUserID(demo.ID)
	require.NotNil(t, w)
	assert.Equal(t, int64(125050), w.Balance.Amount())
	assert.Equal(t, money.USD, w.Balance.CurrencyCode())
}

func TestSeedDatabase_FreshCopies(t *testing.T) {
	t.Parallel()
	a, err := fixtures.SeedDatabase()
	require.NoError(t, err)
	b, err := fixtures.SeedDatabase()
	require.NoError(t, err)

	a.Users = a.Users[:0]
	assert.Len(t, b.Users, 2)
}
