package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/andreasstove999/ecommerce-system/pokedeck-go/internal/storage"
)

// ErrCorruptSlot is returned when a slot does not hold a JSON cart array.
var ErrCorruptSlot = errors.New("corrupt cart slot")

// DefaultSlot is the slot name used when a cart is not namespaced.
const DefaultSlot = "cart"

// VisitorSlot is the slot holding the cart of one visitor.
func VisitorSlot(visitorID string) string {
	if visitorID == "" {
		return DefaultSlot
	}
	return "visitors/" + visitorID + "/" + DefaultSlot
}

// SlotPersister keeps the cart as a JSON array in one key-value slot.
type SlotPersister struct {
	kv  storage.KV
	key string
}

func NewSlotPersister(kv storage.KV, key string) *SlotPersister {
	if key == "" {
		key = DefaultSlot
	}
	return &SlotPersister{kv: kv, key: key}
}

// Load returns an empty cart when the slot was never written.
func (p *SlotPersister) Load(ctx context.Context) ([]Item, error) {
	raw, err := p.kv.Get(ctx, p.key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return []Item{}, nil
		}
		return nil, fmt.Errorf("read slot %q: %w", p.key, err)
	}
	return Decode(raw)
}

func (p *SlotPersister) Save(ctx context.Context, items []Item) error {
	raw, err := Encode(items)
	if err != nil {
		return err
	}
	if err := p.kv.Set(ctx, p.key, raw); err != nil {
		return fmt.Errorf("write slot %q: %w", p.key, err)
	}
	return nil
}

// Encode serializes items as the slot's JSON array; nil encodes as [].
func Encode(items []Item) (string, error) {
	if items == nil {
		items = []Item{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("encode cart: %w", err)
	}
	return string(b), nil
}

// Decode parses a slot value. Blank and "null" values are an empty cart.
func Decode(raw string) ([]Item, error) {
	items := []Item{}
	if raw == "" || raw == "null" {
		return items, nil
	}
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptSlot, err)
	}
	if items == nil {
		items = []Item{}
	}
	return items, nil
}
