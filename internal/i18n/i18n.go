// Package i18n resolves the visitor's language and prints page copy.
package i18n

import (
	"net/http"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	// LangParam is the query parameter used to select a language.
	LangParam = "lang"
	// LangCookieName stores the visitor's language preference.
	LangCookieName = "pokedeck_lang"
)

var supported = []language.Tag{language.Spanish, language.English}

var matcher = language.NewMatcher(supported)

// Supported returns the list of supported language tags. Spanish comes first.
func Supported() []language.Tag {
	return append([]language.Tag(nil), supported...)
}

// Printer returns a message printer for the supplied tag.
func Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag)
}

// ParseTag maps value onto a supported tag. Regional variants such as
// "en-GB" resolve to their base language.
func ParseTag(value string) (language.Tag, bool) {
	tag, err := language.Parse(strings.TrimSpace(value))
	if err != nil {
		return language.Und, false
	}
	return matchTags(tag)
}

func matchTags(tags ...language.Tag) (language.Tag, bool) {
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return language.Und, false
	}
	return supported[index], true
}

// ResolveTag picks the language for r: the lang query param, then the
// language cookie, then Accept-Language, then fallback.
// The bool reports whether the query param should be persisted as a cookie.
func ResolveTag(r *http.Request, fallback language.Tag) (language.Tag, bool) {
	if r == nil {
		return fallback, false
	}

	if v := strings.TrimSpace(r.URL.Query().Get(LangParam)); v != "" {
		if tag, ok := ParseTag(v); ok {
			return tag, true
		}
	}

	if c, err := r.Cookie(LangCookieName); err == nil {
		if tag, ok := ParseTag(c.Value); ok {
			return tag, false
		}
	}

	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil && len(tags) > 0 {
			if tag, ok := matchTags(tags...); ok {
				return tag, false
			}
		}
	}

	return fallback, false
}

// SetLanguageCookie persists the selected language on the response.
func SetLanguageCookie(w http.ResponseWriter, tag language.Tag) {
	http.SetCookie(w, &http.Cookie{
		Name:     LangCookieName,
		Value:    tag.String(),
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
}
