package i18n

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestParseTag(t *testing.T) {
	tests := []struct {
		in   string
		want language.Tag
		ok   bool
	}{
		{in: "es", want: language.Spanish, ok: true},
		{in: "en", want: language.English, ok: true},
		{in: "en-GB", want: language.English, ok: true},
		{in: " es-MX ", want: language.Spanish, ok: true},
		{in: "ja", ok: false},
		{in: "not a tag!", ok: false},
		{in: "", ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseTag(tt.in)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				require.Equal(t, tt.want, got)
			}
		})
	}
}

func TestResolveTag(t *testing.T) {
	t.Run("query param wins and asks for cookie", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/?lang=en", nil)
		r.AddCookie(&http.Cookie{Name: LangCookieName, Value: "es"})
		tag, persist := ResolveTag(r, language.Spanish)
		require.Equal(t, language.English, tag)
		require.True(t, persist)
	})

	t.Run("cookie before accept-language", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: LangCookieName, Value: "en"})
		r.Header.Set("Accept-Language", "es-ES,es;q=0.9")
		tag, persist := ResolveTag(r, language.Spanish)
		require.Equal(t, language.English, tag)
		require.False(t, persist)
	})

	t.Run("accept-language", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Accept-Language", "en-US,en;q=0.9")
		tag, _ := ResolveTag(r, language.Spanish)
		require.Equal(t, language.English, tag)
	})

	t.Run("unsupported falls back", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/?lang=xx", nil)
		r.Header.Set("Accept-Language", "ja")
		tag, persist := ResolveTag(r, language.Spanish)
		require.Equal(t, language.Spanish, tag)
		require.False(t, persist)
	})

	t.Run("nil request", func(t *testing.T) {
		tag, _ := ResolveTag(nil, language.English)
		require.Equal(t, language.English, tag)
	})
}

func TestSetLanguageCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	SetLanguageCookie(rec, language.English)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, LangCookieName, cookies[0].Name)
	require.Equal(t, "en", cookies[0].Value)
}

func TestText(t *testing.T) {
	require.Equal(t, "No se encontró el Pokémon. Intenta con otro nombre o ID.", Text(language.Spanish, KeySearchNotFound))
	require.Equal(t, "Pokémon not found. Try another name or ID.", Text(language.English, KeySearchNotFound))
	require.Equal(t, "Agregar al carrito", Text(language.Spanish, KeyCardAddToCart))
	require.Equal(t, "Eliminar", Text(language.Spanish, KeyCartRemove))
	require.Equal(t, "Tipos", Text(language.Spanish, KeyCardTypes))
}

func TestSupportedIsACopy(t *testing.T) {
	s := Supported()
	s[0] = language.Japanese
	require.Equal(t, language.Spanish, Supported()[0])
}
