package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/andreasstove999/ecommerce-system/pokedeck-go/internal/storage"
	"github.com/andreasstove999/ecommerce-system/pokedeck-go/internal/storage/memory"
)

type failingKV struct{ err error }

func (f failingKV) Get(context.Context, string) (string, error) { return "", f.err }
func (f failingKV) Set(context.Context, string, string) error   { return f.err }
func (f failingKV) Delete(context.Context, string) error        { return f.err }

func TestSlotPersisterRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()
	p := NewSlotPersister(kv, VisitorSlot("v1"))

	want := []Item{
		{ID: "25", Name: "pikachu", ImageURL: "https://img.example/25.png", Quantity: 3},
		{ID: "1", Name: "bulbasaur", ImageURL: "https://img.example/1.png", Quantity: 1},
	}
	require.NoError(t, p.Save(ctx, want))

	got, err := p.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, want, got)

	raw, err := kv.Get(ctx, "visitors/v1/cart")
	require.NoError(t, err)
	require.JSONEq(t, `[
		{"id":"25","name":"pikachu","img":"https://img.example/25.png","quantity":3},
		{"id":"1","name":"bulbasaur","img":"https://img.example/1.png","quantity":1}
	]`, raw)
}

func TestSlotPersisterMissingSlotIsEmpty(t *testing.T) {
	got, err := NewSlotPersister(memory.New(), "").Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Empty(t, got)
}

func TestSlotPersisterErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("read error", func(t *testing.T) {
		_, err := NewSlotPersister(failingKV{err: errors.New("io")}, "").Load(ctx)
		require.Error(t, err)
	})

	t.Run("write error", func(t *testing.T) {
		err := NewSlotPersister(failingKV{err: errors.New("io")}, "").Save(ctx, nil)
		require.Error(t, err)
	})

	t.Run("corrupt slot", func(t *testing.T) {
		kv := memory.New()
		require.NoError(t, kv.Set(ctx, DefaultSlot, "{oops"))

		_, err := NewSlotPersister(kv, "").Load(ctx)
		require.ErrorIs(t, err, ErrCorruptSlot)
	})
}

func TestStoreClearEmptiesPersistedSlot(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()
	s, err := Open(ctx, NewSlotPersister(kv, ""))
	require.NoError(t, err)

	require.NoError(t, s.Add(ctx, pikachu))
	require.NoError(t, s.Clear(ctx))

	reloaded, err := NewSlotPersister(kv, "").Load(ctx)
	require.NoError(t, err)
	require.Empty(t, reloaded)
}

func TestStoreReopenRestoresCart(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()

	first, err := Open(ctx, NewSlotPersister(kv, ""))
	require.NoError(t, err)
	require.NoError(t, first.Add(ctx, pikachu))
	require.NoError(t, first.Add(ctx, pikachu))
	require.NoError(t, first.Add(ctx, Item{ID: "7", Name: "squirtle"}))

	second, err := Open(ctx, NewSlotPersister(kv, ""))
	require.NoError(t, err)
	require.Equal(t, first.Items(), second.Items())
}

func TestDecode(t *testing.T) {
	for _, raw := range []string{"", "null", "[]"} {
		items, err := Decode(raw)
		require.NoError(t, err, raw)
		require.Empty(t, items, raw)
	}

	_, err := Decode(`{"id":"1"}`)
	require.ErrorIs(t, err, ErrCorruptSlot)
}

func TestEncodeNil(t *testing.T) {
	raw, err := Encode(nil)
	require.NoError(t, err)
	require.Equal(t, "[]", raw)
}

var _ storage.KV = failingKV{}
