package i18n

import (
	"net/http/httptest"
	"testing"

	"golang.org/x/text/language"
)

func TestMatchRequestDefaultsToEnglish(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	if got := MatchRequest(r); got != language.AmericanEnglish {
		t.Fatalf("tag = %v, want %v", got, language.AmericanEnglish)
	}
}

func TestMatchRequestPrefersHeaderLanguage(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("Accept-Language", "fr-FR,fr;q=0.9,en;q=0.5")

	got := MatchRequest(r)
	if base, _ := got.Base(); base.String() != "fr" {
		t.Fatalf("base language = %v, want fr", base)
	}
}

func TestLocalizeTranslatesKnownKey(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("Accept-Language", "pt-BR")

	got := Localize(r, "error.forbidden")
	if got != "Você não tem permissão para executar esta ação." {
		t.Fatalf("localized message = %q", got)
	}
}

func TestLocalizeFallsBackToBaseLocale(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("Accept-Language", "de-DE")

	got := Localize(r, "error.not_found")
	if got != "The requested record was not found." {
		t.Fatalf("localized message = %q", got)
	}
}
