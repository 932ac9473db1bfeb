package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testStoreContract exercises the behaviour every Store backend must share.
func testStoreContract(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("get missing key returns ErrNotFound", func(t *testing.T) {
		_, err := store.Get(ctx, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("put then get round-trips the value", func(t *testing.T) {
		value := `[{"id":1,"title":"Frontend Intern","Company":"Acme Co"}]`
		require.NoError(t, store.Put(ctx, "jobs_v1", value))

		got, err := store.Get(ctx, "jobs_v1")
		require.NoError(t, err)
		assert.Equal(t, value, got)
	})

	t.Run("put overwrites the whole value", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "overwrite", "a much longer first value"))
		require.NoError(t, store.Put(ctx, "overwrite", "short"))

		got, err := store.Get(ctx, "overwrite")
		require.NoError(t, err)
		assert.Equal(t, "short", got)
	})

	t.Run("delete removes the value", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "gone", "value"))
		require.NoError(t, store.Delete(ctx, "gone"))

		_, err := store.Get(ctx, "gone")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("delete of missing key is not an error", func(t *testing.T) {
		assert.NoError(t, store.Delete(ctx, "never-stored"))
	})

	t.Run("blank key is rejected", func(t *testing.T) {
		_, err := store.Get(ctx, "")
		assert.ErrorIs(t, err, ErrEmptyKey)
		assert.ErrorIs(t, store.Put(ctx, "", "v"), ErrEmptyKey)
		assert.ErrorIs(t, store.Delete(ctx, ""), ErrEmptyKey)
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := store.Get(cancelled, "jobs_v1")
		assert.ErrorIs(t, err, context.Canceled)
		assert.ErrorIs(t, store.Put(cancelled, "jobs_v1", "v"), context.Canceled)
		assert.ErrorIs(t, store.Delete(cancelled, "jobs_v1"), context.Canceled)
	})
}
