package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// VisitorCookieName identifies one browser; its cart lives under this id.
const VisitorCookieName = "pokedeck_visitor"

// Visitor reads the visitor cookie, issuing a fresh id when it is missing or
// malformed, and stores the id in the request context.
func Visitor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		vid := ""
		if c, err := r.Cookie(VisitorCookieName); err == nil {
			if _, err := uuid.Parse(strings.TrimSpace(c.Value)); err == nil {
				vid = strings.TrimSpace(c.Value)
			}
		}
		if vid == "" {
			vid = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     VisitorCookieName,
				Value:    vid,
				Path:     "/",
				MaxAge:   int((365 * 24 * time.Hour).Seconds()),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		next.ServeHTTP(w, r.WithContext(WithVisitorID(r.Context(), vid)))
	})
}

func WithVisitorID(ctx context.Context, vid string) context.Context {
	return context.WithValue(ctx, ctxVisitorID, vid)
}

func GetVisitorID(ctx context.Context) string {
	if v := ctx.Value(ctxVisitorID); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
