package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "nested", "pocketbook.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLiteStoreGetSet(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)

	_, err := s.Get(ctx, "incomes")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Set(ctx, "incomes", `{"version":1,"records":[]}`))
	require.NoError(t, s.Set(ctx, "incomes", `{"version":1,"records":[{"name":"Salary"}]}`))
	require.NoError(t, s.Set(ctx, "goals", `[]`))

	v, err := s.Get(ctx, "incomes")
	require.NoError(t, err)
	assert.Equal(t, `{"version":1,"records":[{"name":"Salary"}]}`, v)

	keys, err := s.Keys(ctx)
	require.NoError(t, err)
	require.Len(t, keys, 2)
	assert.Equal(t, "goals", keys[0].Key)
	assert.Equal(t, "incomes", keys[1].Key)
	assert.Equal(t, int64(2), keys[1].Writes)
	assert.Equal(t, len(v), keys[1].Size)
}

func TestSQLiteStorePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "pocketbook.db")

	s, err := NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "expenses", "[]"))
	require.NoError(t, s.Close())

	s, err = NewSQLiteStore(path)
	require.NoError(t, err)
	defer s.Close()

	v, err := s.Get(ctx, "expenses")
	require.NoError(t, err)
	assert.Equal(t, "[]", v)

	version, dirty, err := SchemaVersion(path)
	require.NoError(t, err)
	assert.False(t, dirty)
	assert.Equal(t, uint(2), version)
}
