package storage_test

import (
	"path/filepath"
	"testing"

	"github.com/demipay/demipay/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	t.Parallel()
	s := storage.NewMemoryStore()

	_, ok, err := s.Get("missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set("k", "v"))
	v, ok, err := s.Get("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", v)

	require.NoError(t, s.Remove("k"))
	_, ok, err = s.Get("k")
	require.NoError(t, err)
	assert.False(t, ok)

	// Removing an absent key is not an error.
	require.NoError(t, s.Remove("k"))
}

func TestMemoryStore_FailWrites(t *testing.T) {
	t.Parallel()
	s := storage.NewMemoryStore()
	s.FailWrites = true
	assert.ErrorIs(t, s.Set("k", "v"), storage.ErrWriteFailed)
}

func TestFileStore_RoundTrip(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "store.json")
	s, err := storage.NewFileStore(path)
	require.NoError(t, err)

	require.NoError(t, s.Set("demipay_database", `{"users":[]}`))
	require.NoError(t, s.Set("demipay_session", "token-123"))

	// A fresh handle over the same file sees the same values.
	reopened, err := storage.NewFileStore(path)
	require.NoError(t, err)

	v, ok, err := reopened.Get("demipay_database")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `{"users":[]}`, v)

	v, ok, err = reopened.Get("demipay_session")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "token-123", v)
}

func TestFileStore_Remove(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "store.json")
	s, err := storage.NewFileStore(path)
	require.NoError(t, err)

	require.NoError(t, s.Set("k", "v"))
	require.NoError(t, s.Remove("k"))
	_, ok, err := s.Get("k")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Remove("never-existed"))
}

func TestFileStore_EmptyPath(t *testing.T) {
	t.Parallel()
	_, err := storage.NewFileStore("")
	assert.Error(t, err)
}
