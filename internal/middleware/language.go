package middleware

import (
	"context"
	"net/http"

	"golang.org/x/text/language"

	"github.com/andreasstove999/ecommerce-system/pokedeck-go/internal/i18n"
)

// Language resolves the page language and stores it in the request
// context. A language picked through the query string is remembered in a
// cookie.
func Language(fallback language.Tag) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tag, persist := i18n.ResolveTag(r, fallback)
			if persist {
				i18n.SetLanguageCookie(w, tag)
			}
			next.ServeHTTP(w, r.WithContext(WithLanguage(r.Context(), tag)))
		})
	}
}

func WithLanguage(ctx context.Context, tag language.Tag) context.Context {
	return context.WithValue(ctx, ctxLanguage, tag)
}

func GetLanguage(ctx context.Context) (language.Tag, bool) {
	tag, ok := ctx.Value(ctxLanguage).(language.Tag)
	return tag, ok
}
