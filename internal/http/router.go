package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/text/language"

	"github.com/andreasstove999/ecommerce-system/pokedeck-go/internal/middleware"
)

func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Logger)
	r.Use(middleware.CorrelationID)

	r.Get("/health", h.Health)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Visitor)
		r.Use(middleware.Language(h.defaultLang()))

		r.Get("/", h.Page)

		r.Route("/cart", func(r chi.Router) {
			r.Post("/items", h.AddItem)
			r.Post("/items/{id}/{action}", h.ChangeQuantity)
			r.Post("/clear", h.ClearCart)
			r.Get("/export.xlsx", h.ExportCart)
		})

		r.Route("/api", func(r chi.Router) {
			r.Get("/search", h.APISearch)
			r.Get("/cart", h.APICart)
			r.Post("/cart/events", h.APICartEvent)
		})
	})

	return r
}

func (h *Handler) defaultLang() language.Tag {
	if h.lang == language.Und {
		return language.Spanish
	}
	return h.lang
}
