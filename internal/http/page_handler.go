package httpapi

import (
	"bytes"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/andreasstove999/ecommerce-system/pokedeck-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/pokedeck-go/internal/export"
	"github.com/andreasstove999/ecommerce-system/pokedeck-go/internal/middleware"
	"github.com/andreasstove999/ecommerce-system/pokedeck-go/internal/ui"
	"github.com/andreasstove999/ecommerce-system/pokedeck-go/internal/view"
)

// Page renders the search box, the result card or error and the cart.
func (h *Handler) Page(w http.ResponseWriter, r *http.Request) {
	store, ok := h.visitorCart(w, r, false)
	if !ok {
		return
	}

	lang := h.requestLang(r)
	query := r.URL.Query().Get("q")
	res := h.searcher.Search(r.Context(), middleware.GetVisitorID(r.Context()), query, lang)

	page := view.Page{
		Lang:  lang,
		Query: query,
		Cart:  view.BuildCartView(store.Items()),
	}
	if !res.Superseded {
		page.Error = res.Message
		if res.Found() {
			card := view.BuildCard(*res.Creature)
			page.Card = &card
		}
	}

	var buf bytes.Buffer
	if err := h.renderer.Render(&buf, page); err != nil {
		h.logger.ErrorContext(r.Context(), "render page failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// AddItem handles the "add to cart" form of a result card.
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	item := cart.Item{
		ID:       strings.TrimSpace(r.PostForm.Get("id")),
		Name:     r.PostForm.Get("name"),
		ImageURL: r.PostForm.Get("img"),
	}
	if item.ID == "" {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	h.applyForm(w, r, ui.Event{Name: ui.EventAdd, Item: item})
}

var quantityActions = map[string]string{
	"increase": ui.EventIncrease,
	"decrease": ui.EventDecrease,
	"remove":   ui.EventRemove,
}

// ChangeQuantity handles the +, - and remove buttons of a cart row.
func (h *Handler) ChangeQuantity(w http.ResponseWriter, r *http.Request) {
	name, ok := quantityActions[chi.URLParam(r, "action")]
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	h.applyForm(w, r, ui.Event{Name: name, ItemID: chi.URLParam(r, "id")})
}

func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	h.applyForm(w, r, ui.Event{Name: ui.EventClear})
}

// applyForm dispatches ev and redirects back to the page, keeping the
// search that was on screen.
func (h *Handler) applyForm(w http.ResponseWriter, r *http.Request, ev ui.Event) {
	store, ok := h.visitorCart(w, r, false)
	if !ok {
		return
	}
	if err := h.dispatcher.Dispatch(r.Context(), store, ev); err != nil {
		if errors.Is(err, ui.ErrUnknownEvent) || errors.Is(err, ui.ErrMissingItem) || errors.Is(err, cart.ErrInvalidItem) {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		h.logMutationError(r, ev, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, pageURL(r.PostForm.Get("q")), http.StatusSeeOther)
}

func pageURL(query string) string {
	if strings.TrimSpace(query) == "" {
		return "/"
	}
	return "/?" + url.Values{"q": {query}}.Encode()
}

// ExportCart downloads the cart as a spreadsheet.
func (h *Handler) ExportCart(w http.ResponseWriter, r *http.Request) {
	store, ok := h.visitorCart(w, r, false)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, store.Items(), h.requestLang(r)); err != nil {
		h.logger.ErrorContext(r.Context(), "export cart failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", export.ContentTypeXLSX)
	w.Header().Set("Content-Disposition", `attachment; filename="pokedeck-cart.xlsx"`)
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
