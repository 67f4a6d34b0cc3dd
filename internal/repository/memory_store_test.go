package repository_test

import (
	"context"
	"testing"

	errorvalues "github.com/limbo/dayslide/internal/error_values"
	"github.com/limbo/dayslide/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryKVStore(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryKVStore()

	t.Run("missing key", func(t *testing.T) {
		_, err := store.Get(ctx, "nope")
		assert.ErrorIs(t, err, errorvalues.ErrKeyNotFound)
	})
	t.Run("set and get", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "k", []byte("v1")))
		v, err := store.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("v1"), v)
	})
	t.Run("values are copied", func(t *testing.T) {
		in := []byte("abc")
		require.NoError(t, store.Set(ctx, "copy", in))
		in[0] = 'x'
		out, err := store.Get(ctx, "copy")
		require.NoError(t, err)
		assert.Equal(t, []byte("abc"), out)
		out[1] = 'y'
		again, _ := store.Get(ctx, "copy")
		assert.Equal(t, []byte("abc"), again)
	})
	t.Run("delete ignores absent keys", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, "k", "never-set"))
		_, err := store.Get(ctx, "k")
		assert.ErrorIs(t, err, errorvalues.ErrKeyNotFound)
	})
}
