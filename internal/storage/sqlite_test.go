package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestSQLite(t *testing.T, path string) *SQLiteStore {
	t.Helper()
	store, err := OpenSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestOpenSQLite_RequiresPath(t *testing.T) {
	_, err := OpenSQLite("  ")
	require.Error(t, err)
}

func TestSQLiteStore_Contract(t *testing.T) {
	store := openTestSQLite(t, filepath.Join(t.TempDir(), "kv.db"))
	testStoreContract(t, store)
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kv.db")
	ctx := context.Background()

	first, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, first.Put(ctx, "jobs_v1", "[]"))
	require.NoError(t, first.Close())

	// Reopening must not re-run the applied migration.
	second := openTestSQLite(t, path)
	got, err := second.Get(ctx, "jobs_v1")
	require.NoError(t, err)
	assert.Equal(t, "[]", got)

	var applied int
	require.NoError(t, second.sqlDB.QueryRow(`SELECT COUNT(1) FROM schema_migrations`).Scan(&applied))
	assert.Equal(t, 1, applied)
}

func TestSQLiteStore_CloseNil(t *testing.T) {
	var store *SQLiteStore
	assert.NoError(t, store.Close())
}

func TestUpMigration(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"no markers", "CREATE TABLE t (a INT);", "CREATE TABLE t (a INT);"},
		{"up only", "-- +migrate Up\nCREATE TABLE t (a INT);", "\nCREATE TABLE t (a INT);"},
		{"up and down", "-- +migrate Up\nCREATE TABLE t (a INT);\n-- +migrate Down\nDROP TABLE t;", "\nCREATE TABLE t (a INT);\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, upMigration(tt.content))
		})
	}
}
