// Package ui maps named page events onto cart operations.
package ui

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/andreasstove999/ecommerce-system/pokedeck-go/internal/cart"
)

var (
	ErrUnknownEvent = errors.New("unknown event")
	ErrMissingItem  = errors.New("event needs an item id")
)

const (
	EventAdd      = "add"
	EventIncrease = "increase"
	EventDecrease = "decrease"
	EventRemove   = "remove"
	EventClear    = "clear"
)

// Event is one user action. Item is read by add; ItemID by the quantity
// events.
type Event struct {
	Name   string    `json:"event"`
	ItemID string    `json:"id,omitempty"`
	Item   cart.Item `json:"item"`
}

// Handler applies one event to a cart.
type Handler func(ctx context.Context, store *cart.Store, ev Event) error

type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

// NewDispatcher returns a dispatcher with the five cart events registered.
func NewDispatcher() *Dispatcher {
	d := &Dispatcher{handlers: make(map[string]Handler)}
	d.Register(EventAdd, func(ctx context.Context, s *cart.Store, ev Event) error {
		return s.Add(ctx, ev.Item)
	})
	d.Register(EventIncrease, byID((*cart.Store).Increase))
	d.Register(EventDecrease, byID((*cart.Store).Decrease))
	d.Register(EventRemove, byID((*cart.Store).Remove))
	d.Register(EventClear, func(ctx context.Context, s *cart.Store, _ Event) error {
		return s.Clear(ctx)
	})
	return d
}

// Register maps name to h, replacing any earlier mapping.
func (d *Dispatcher) Register(name string, h Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[name] = h
}

func (d *Dispatcher) Dispatch(ctx context.Context, store *cart.Store, ev Event) error {
	d.mu.RLock()
	h, ok := d.handlers[ev.Name]
	d.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownEvent, ev.Name)
	}
	return h(ctx, store, ev)
}

// Events lists the registered names in sorted order.
func (d *Dispatcher) Events() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	names := make([]string, 0, len(d.handlers))
	for name := range d.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func byID(op func(*cart.Store, context.Context, string) error) Handler {
	return func(ctx context.Context, s *cart.Store, ev Event) error {
		id := ev.ItemID
		if id == "" {
			id = ev.Item.ID
		}
		if id == "" {
			return ErrMissingItem
		}
		return op(s, ctx, id)
	}
}
