package cart

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sync"
)

// ErrInvalidItem is returned by Add for a blank or malformed item id.
var ErrInvalidItem = errors.New("invalid item id")

// idPattern keeps ids usable as a single URL path segment.
var idPattern = regexp.MustCompile(`^[0-9a-z-]{1,64}$`)

// Persister saves and restores the whole cart.
type Persister interface {
	Load(ctx context.Context) ([]Item, error)
	Save(ctx context.Context, items []Item) error
}

// Listener is told about every applied mutation, after it was persisted.
type Listener func(ctx context.Context, ch Change)

// Store owns one cart. Every state-changing operation persists the full
// cart before listeners run; on a failed save the in-memory cart is left
// as it was.
type Store struct {
	persister Persister

	mu        sync.Mutex
	items     []Item
	revision  int64
	listeners []Listener
}

// Open loads the cart through p once and returns a ready store.
func Open(ctx context.Context, p Persister) (*Store, error) {
	items, err := p.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	return &Store{persister: p, items: normalize(items)}, nil
}

// Subscribe registers l for all future mutations.
func (s *Store) Subscribe(l Listener) {
	if l == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// Add increments the quantity of an existing id or appends the item at
// quantity one. The stored name and image are those of the first add.
func (s *Store) Add(ctx context.Context, item Item) error {
	if !idPattern.MatchString(item.ID) {
		return fmt.Errorf("%w: %q", ErrInvalidItem, item.ID)
	}
	return s.mutate(ctx, OpAdd, item.ID, func(items []Item) ([]Item, bool) {
		if i := indexOf(items, item.ID); i >= 0 {
			items[i].Quantity++
			return items, true
		}
		item.Quantity = 1
		return append(items, item), true
	})
}

// Increase bumps the quantity of id by one. Unknown ids are ignored.
func (s *Store) Increase(ctx context.Context, id string) error {
	return s.mutate(ctx, OpIncrease, id, func(items []Item) ([]Item, bool) {
		i := indexOf(items, id)
		if i < 0 {
			return items, false
		}
		items[i].Quantity++
		return items, true
	})
}

// Decrease lowers the quantity of id by one but never below one; use
// Remove to drop the line.
func (s *Store) Decrease(ctx context.Context, id string) error {
	return s.mutate(ctx, OpDecrease, id, func(items []Item) ([]Item, bool) {
		i := indexOf(items, id)
		if i < 0 || items[i].Quantity <= 1 {
			return items, false
		}
		items[i].Quantity--
		return items, true
	})
}

// Remove deletes the line for id and leaves the others untouched.
func (s *Store) Remove(ctx context.Context, id string) error {
	return s.mutate(ctx, OpRemove, id, func(items []Item) ([]Item, bool) {
		i := indexOf(items, id)
		if i < 0 {
			return items, false
		}
		return append(items[:i], items[i+1:]...), true
	})
}

// Clear empties the cart and the persisted slot. It always persists, even
// when the cart is already empty.
func (s *Store) Clear(ctx context.Context) error {
	return s.mutate(ctx, OpClear, "", func([]Item) ([]Item, bool) {
		return []Item{}, true
	})
}

// Items returns a copy of the cart in insertion order.
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneItems(s.items)
}

// Count is the number of distinct lines, not the total quantity.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func (s *Store) TotalQuantity() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, it := range s.items {
		total += it.Quantity
	}
	return total
}

// Revision counts applied mutations since the store was opened.
func (s *Store) Revision() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revision
}

func (s *Store) mutate(ctx context.Context, op Op, id string, apply func([]Item) ([]Item, bool)) error {
	s.mu.Lock()

	next, changed := apply(cloneItems(s.items))
	if !changed {
		s.mu.Unlock()
		return nil
	}
	if err := s.persister.Save(ctx, next); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("save cart after %s: %w", op, err)
	}
	s.items = next
	s.revision++

	ch := Change{Op: op, ItemID: id, Items: cloneItems(next), Revision: s.revision}
	listeners := append([]Listener(nil), s.listeners...)
	s.mu.Unlock()

	for _, l := range listeners {
		l(ctx, ch)
	}
	return nil
}

func indexOf(items []Item, id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}
