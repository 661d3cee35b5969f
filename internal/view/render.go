package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"golang.org/x/text/language"

	"github.com/andreasstove999/ecommerce-system/pokedeck-go/internal/i18n"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Page is everything the main page shows.
type Page struct {
	Lang  language.Tag
	Query string
	// Card is nil when there is nothing to show.
	Card  *Card
	Error string
	Cart  CartView
}

type Renderer struct {
	tmpl *template.Template
}

func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("page.html").Funcs(template.FuncMap{
		"t": func(tag language.Tag, key string) string { return i18n.Text(tag, key) },
	}).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

func (r *Renderer) Render(w io.Writer, p Page) error {
	if err := r.tmpl.ExecuteTemplate(w, "page.html", p); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	return nil
}
