// Package storagetest holds the behaviour every storage.KV backend must share.
package storagetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/andreasstove999/ecommerce-system/pokedeck-go/internal/storage"
)

// Run exercises kv against the storage.KV contract. newKV must return an
// empty store for each call.
func Run(t *testing.T, newKV func(t *testing.T) storage.KV) {
	t.Helper()
	ctx := context.Background()

	t.Run("missing key", func(t *testing.T) {
		kv := newKV(t)
		_, err := kv.Get(ctx, "nope")
		require.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("set then get", func(t *testing.T) {
		kv := newKV(t)
		require.NoError(t, kv.Set(ctx, "cart", `[{"id":"25"}]`))

		got, err := kv.Get(ctx, "cart")
		require.NoError(t, err)
		require.Equal(t, `[{"id":"25"}]`, got)
	})

	t.Run("overwrite", func(t *testing.T) {
		kv := newKV(t)
		require.NoError(t, kv.Set(ctx, "cart", "a"))
		require.NoError(t, kv.Set(ctx, "cart", "b"))

		got, err := kv.Get(ctx, "cart")
		require.NoError(t, err)
		require.Equal(t, "b", got)
	})

	t.Run("empty value is stored", func(t *testing.T) {
		kv := newKV(t)
		require.NoError(t, kv.Set(ctx, "cart", ""))

		got, err := kv.Get(ctx, "cart")
		require.NoError(t, err)
		require.Empty(t, got)
	})

	t.Run("keys are independent", func(t *testing.T) {
		kv := newKV(t)
		require.NoError(t, kv.Set(ctx, "visitors/a/cart", "A"))
		require.NoError(t, kv.Set(ctx, "visitors/b/cart", "B"))
		require.NoError(t, kv.Delete(ctx, "visitors/a/cart"))

		_, err := kv.Get(ctx, "visitors/a/cart")
		require.ErrorIs(t, err, storage.ErrNotFound)
		got, err := kv.Get(ctx, "visitors/b/cart")
		require.NoError(t, err)
		require.Equal(t, "B", got)
	})

	t.Run("delete missing is a no-op", func(t *testing.T) {
		kv := newKV(t)
		require.NoError(t, kv.Delete(ctx, "never-set"))
	})

	t.Run("cancelled context", func(t *testing.T) {
		kv := newKV(t)
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		require.Error(t, kv.Set(cctx, "cart", "x"))
	})
}
