package ui

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/andreasstove999/ecommerce-system/pokedeck-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/pokedeck-go/internal/storage/memory"
)

func newStore(t *testing.T) *cart.Store {
	t.Helper()
	s, err := cart.Open(context.Background(), cart.NewSlotPersister(memory.New(), ""))
	require.NoError(t, err)
	return s
}

func TestDispatchDefaultEvents(t *testing.T) {
	ctx := context.Background()
	d := NewDispatcher()
	s := newStore(t)

	require.Equal(t, []string{"add", "clear", "decrease", "increase", "remove"}, d.Events())

	add := Event{Name: EventAdd, Item: cart.Item{ID: "25", Name: "pikachu"}}
	require.NoError(t, d.Dispatch(ctx, s, add))
	require.NoError(t, d.Dispatch(ctx, s, add))
	require.NoError(t, d.Dispatch(ctx, s, Event{Name: EventIncrease, ItemID: "25"}))
	require.Equal(t, 3, s.Items()[0].Quantity)

	require.NoError(t, d.Dispatch(ctx, s, Event{Name: EventDecrease, ItemID: "25"}))
	require.Equal(t, 2, s.Items()[0].Quantity)

	require.NoError(t, d.Dispatch(ctx, s, Event{Name: EventAdd, Item: cart.Item{ID: "7"}}))
	require.NoError(t, d.Dispatch(ctx, s, Event{Name: EventRemove, Item: cart.Item{ID: "25"}}))
	require.Equal(t, []string{"7"}, ids(s.Items()))

	require.NoError(t, d.Dispatch(ctx, s, Event{Name: EventClear}))
	require.Empty(t, s.Items())
}

func TestDispatchUnknownEvent(t *testing.T) {
	err := NewDispatcher().Dispatch(context.Background(), newStore(t), Event{Name: "explode"})
	require.ErrorIs(t, err, ErrUnknownEvent)
}

func TestDispatchMissingItem(t *testing.T) {
	ctx := context.Background()
	d := NewDispatcher()
	s := newStore(t)

	require.ErrorIs(t, d.Dispatch(ctx, s, Event{Name: EventIncrease}), ErrMissingItem)
	require.ErrorIs(t, d.Dispatch(ctx, s, Event{Name: EventAdd}), cart.ErrInvalidItem)
}

func TestRegisterOverrides(t *testing.T) {
	d := NewDispatcher()
	called := ""
	d.Register("wish", func(_ context.Context, _ *cart.Store, ev Event) error {
		called = ev.ItemID
		return nil
	})

	require.NoError(t, d.Dispatch(context.Background(), newStore(t), Event{Name: "wish", ItemID: "151"}))
	require.Equal(t, "151", called)
	require.Contains(t, d.Events(), "wish")
}

func TestEventDecodesFromJSON(t *testing.T) {
	var ev Event
	require.NoError(t, json.Unmarshal([]byte(`{"event":"add","item":{"id":"25","name":"pikachu","img":"x.png"}}`), &ev))
	require.Equal(t, EventAdd, ev.Name)
	require.Equal(t, cart.Item{ID: "25", Name: "pikachu", ImageURL: "x.png"}, ev.Item)

	require.NoError(t, json.Unmarshal([]byte(`{"event":"remove","id":"25"}`), &ev))
	require.Equal(t, "25", ev.ItemID)
}

func ids(items []cart.Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}
