// Package session keeps one cart store per visitor.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/andreasstove999/ecommerce-system/pokedeck-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/pokedeck-go/internal/events"
	"github.com/andreasstove999/ecommerce-system/pokedeck-go/internal/storage"
)

// DefaultMaxCarts bounds the carts a Registry keeps in memory.
const DefaultMaxCarts = 10000

// Registry loads each visitor's cart on first use and keeps the most
// recently used stores in memory. An evicted cart is loaded again from
// storage on its next use.
type Registry struct {
	kv        storage.KV
	publisher events.CartPublisher
	logger    *slog.Logger
	maxCarts  int

	// mu guards the check-then-add of a freshly loaded store.
	mu    sync.Mutex
	carts *lru.Cache[string, *cart.Store]
}

type Option func(*Registry)

// WithMaxCarts sets the in-memory bound; n <= 0 keeps DefaultMaxCarts.
func WithMaxCarts(n int) Option {
	return func(r *Registry) {
		if n > 0 {
			r.maxCarts = n
		}
	}
}

// NewRegistry wires every opened cart to pub. A nil pub publishes nothing.
func NewRegistry(kv storage.KV, pub events.CartPublisher, logger *slog.Logger, opts ...Option) *Registry {
	if pub == nil {
		pub = events.Nop{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	r := &Registry{
		kv:        kv,
		publisher: pub,
		logger:    logger,
		maxCarts:  DefaultMaxCarts,
	}
	for _, opt := range opts {
		opt(r)
	}

	// maxCarts is always positive, the only case lru.New rejects.
	r.carts, _ = lru.NewWithEvict(r.maxCarts, func(visitorID string, _ *cart.Store) {
		r.logger.Debug("cart evicted", "visitor_id", visitorID)
	})
	return r
}

// Cart returns the store of visitorID, loading it from storage when it is
// not held in memory.
func (r *Registry) Cart(ctx context.Context, visitorID string) (*cart.Store, error) {
	if s, ok := r.carts.Get(visitorID); ok {
		return s, nil
	}

	p := &recoveringPersister{
		SlotPersister: cart.NewSlotPersister(r.kv, cart.VisitorSlot(visitorID)),
		visitorID:     visitorID,
		logger:        r.logger,
	}
	opened, err := cart.Open(ctx, p)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.carts.Get(visitorID); ok {
		return s, nil
	}
	opened.Subscribe(events.CartListener(r.publisher, visitorID, r.logger))
	r.carts.Add(visitorID, opened)
	r.logger.DebugContext(ctx, "cart loaded", "visitor_id", visitorID, "items", opened.Count())
	return opened, nil
}

// Len is the number of carts held in memory.
func (r *Registry) Len() int {
	return r.carts.Len()
}

// recoveringPersister starts a visitor over with an empty cart when the
// stored slot cannot be decoded. The next save overwrites the slot.
type recoveringPersister struct {
	*cart.SlotPersister
	visitorID string
	logger    *slog.Logger
}

func (p *recoveringPersister) Load(ctx context.Context) ([]cart.Item, error) {
	items, err := p.SlotPersister.Load(ctx)
	if errors.Is(err, cart.ErrCorruptSlot) {
		p.logger.WarnContext(ctx, "discarding corrupt cart slot", "visitor_id", p.visitorID, "error", err)
		return []cart.Item{}, nil
	}
	return items, err
}
