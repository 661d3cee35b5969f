// Package search runs catalog lookups for page visitors.
package search

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/text/language"

	"github.com/andreasstove999/ecommerce-system/pokedeck-go/internal/catalog"
	"github.com/andreasstove999/ecommerce-system/pokedeck-go/internal/i18n"
)

// Catalog is the lookup side of catalog.Client.
type Catalog interface {
	Lookup(ctx context.Context, query string) (catalog.Creature, error)
}

// Result is what the page shows for one search. The zero Result is a
// cleared display.
type Result struct {
	Query    string
	Creature *catalog.Creature
	// Message is the localized failure text, empty on success.
	Message string
	Err     error
	// Superseded is set when a newer search of the same visitor started
	// before this one finished. Its outcome must not be shown.
	Superseded bool
}

func (r Result) Found() bool { return r.Creature != nil }

type inflight struct {
	seq    uint64
	cancel context.CancelFunc
}

// Searcher keeps at most one lookup in flight per visitor.
type Searcher struct {
	catalog Catalog
	logger  *slog.Logger

	mu       sync.Mutex
	seq      uint64
	inflight map[string]inflight
}

func New(c Catalog, logger *slog.Logger) *Searcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Searcher{
		catalog:  c,
		logger:   logger,
		inflight: make(map[string]inflight),
	}
}

// Search looks query up for visitor. A blank query cancels the visitor's
// pending lookup and returns a cleared Result without calling the catalog.
func (s *Searcher) Search(ctx context.Context, visitor, query string, lang language.Tag) Result {
	query = strings.TrimSpace(query)
	if query == "" {
		s.cancel(visitor)
		return Result{}
	}

	lookupCtx, seq := s.begin(ctx, visitor)
	creature, err := s.catalog.Lookup(lookupCtx, query)
	if !s.finish(visitor, seq) {
		return Result{Query: query, Superseded: true}
	}

	if err != nil {
		level := slog.LevelWarn
		if errors.Is(err, catalog.ErrNotFound) || errors.Is(err, catalog.ErrInvalidQuery) {
			level = slog.LevelInfo
		}
		s.logger.Log(ctx, level, "catalog lookup failed", "visitor_id", visitor, "query", query, "error", err)
		return Result{Query: query, Message: i18n.Text(lang, i18n.KeySearchNotFound), Err: err}
	}
	return Result{Query: query, Creature: &creature}
}

// Pending reports how many visitors have a lookup in flight.
func (s *Searcher) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.inflight)
}

func (s *Searcher) begin(ctx context.Context, visitor string) (context.Context, uint64) {
	lookupCtx, cancel := context.WithCancel(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if prev, ok := s.inflight[visitor]; ok {
		prev.cancel()
	}
	s.seq++
	s.inflight[visitor] = inflight{seq: s.seq, cancel: cancel}
	return lookupCtx, s.seq
}

// finish releases the lookup and reports whether it is still the visitor's
// latest one.
func (s *Searcher) finish(visitor string, seq uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.inflight[visitor]
	if !ok || cur.seq != seq {
		return false
	}
	cur.cancel()
	delete(s.inflight, visitor)
	return true
}

func (s *Searcher) cancel(visitor string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cur, ok := s.inflight[visitor]; ok {
		cur.cancel()
		delete(s.inflight, visitor)
	}
}
