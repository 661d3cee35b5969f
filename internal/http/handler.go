// Package httpapi serves the search page, the cart forms and the JSON API.
package httpapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"golang.org/x/text/language"

	"github.com/andreasstove999/ecommerce-system/pokedeck-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/pokedeck-go/internal/middleware"
	"github.com/andreasstove999/ecommerce-system/pokedeck-go/internal/search"
	"github.com/andreasstove999/ecommerce-system/pokedeck-go/internal/ui"
	"github.com/andreasstove999/ecommerce-system/pokedeck-go/internal/view"
)

// Carts hands out the cart of a visitor.
type Carts interface {
	Cart(ctx context.Context, visitorID string) (*cart.Store, error)
}

type Searcher interface {
	Search(ctx context.Context, visitor, query string, lang language.Tag) search.Result
}

type Deps struct {
	Logger     *slog.Logger
	Carts      Carts
	Searcher   Searcher
	Dispatcher *ui.Dispatcher
	Renderer   *view.Renderer
	// DefaultLang is used when the request names no supported language.
	DefaultLang language.Tag
}

type Handler struct {
	logger     *slog.Logger
	carts      Carts
	searcher   Searcher
	dispatcher *ui.Dispatcher
	renderer   *view.Renderer
	lang       language.Tag
}

func NewHandler(d Deps) *Handler {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.Dispatcher == nil {
		d.Dispatcher = ui.NewDispatcher()
	}
	return &Handler{
		logger:     d.Logger,
		carts:      d.Carts,
		searcher:   d.Searcher,
		dispatcher: d.Dispatcher,
		renderer:   d.Renderer,
		lang:       d.DefaultLang,
	}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) requestLang(r *http.Request) language.Tag {
	if tag, ok := middleware.GetLanguage(r.Context()); ok {
		return tag
	}
	return h.defaultLang()
}

// visitorCart loads the caller's cart, answering 500 itself on failure.
func (h *Handler) visitorCart(w http.ResponseWriter, r *http.Request, asJSON bool) (*cart.Store, bool) {
	vid := middleware.GetVisitorID(r.Context())
	store, err := h.carts.Cart(r.Context(), vid)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "load cart failed",
			"visitor_id", vid,
			"correlation_id", middleware.GetCorrelationID(r.Context()),
			"error", err,
		)
		if asJSON {
			writeError(w, http.StatusInternalServerError, "failed to load cart")
		} else {
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
		return nil, false
	}
	return store, true
}

func (h *Handler) logMutationError(r *http.Request, ev ui.Event, err error) {
	h.logger.ErrorContext(r.Context(), "cart update failed",
		"visitor_id", middleware.GetVisitorID(r.Context()),
		"correlation_id", middleware.GetCorrelationID(r.Context()),
		"event", ev.Name,
		"error", err,
	)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{
		"error": msg,
	})
}
