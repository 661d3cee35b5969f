package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/andreasstove999/ecommerce-system/pokedeck-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/pokedeck-go/internal/middleware"
	"github.com/andreasstove999/ecommerce-system/pokedeck-go/internal/ui"
	"github.com/andreasstove999/ecommerce-system/pokedeck-go/internal/view"
)

func (h *Handler) APISearch(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		writeError(w, http.StatusBadRequest, "missing query")
		return
	}

	res := h.searcher.Search(r.Context(), middleware.GetVisitorID(r.Context()), query, h.requestLang(r))
	switch {
	case res.Superseded:
		writeError(w, http.StatusConflict, "superseded by a newer search")
	case !res.Found():
		writeError(w, http.StatusNotFound, res.Message)
	default:
		writeJSON(w, http.StatusOK, view.BuildCard(*res.Creature))
	}
}

func (h *Handler) APICart(w http.ResponseWriter, r *http.Request) {
	store, ok := h.visitorCart(w, r, true)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, view.BuildCartView(store.Items()))
}

// APICartEvent applies one UI event and answers with the updated cart.
func (h *Handler) APICartEvent(w http.ResponseWriter, r *http.Request) {
	var ev ui.Event
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	store, ok := h.visitorCart(w, r, true)
	if !ok {
		return
	}
	if err := h.dispatcher.Dispatch(r.Context(), store, ev); err != nil {
		switch {
		case errors.Is(err, ui.ErrUnknownEvent):
			writeError(w, http.StatusBadRequest, "unknown event")
		case errors.Is(err, ui.ErrMissingItem), errors.Is(err, cart.ErrInvalidItem):
			writeError(w, http.StatusBadRequest, "missing item id")
		default:
			h.logMutationError(r, ev, err)
			writeError(w, http.StatusInternalServerError, "failed to update cart")
		}
		return
	}
	writeJSON(w, http.StatusOK, view.BuildCartView(store.Items()))
}
