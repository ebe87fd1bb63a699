// Package i18n localizes user-facing API messages.
package i18n

import (
	"net/http"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// BaseLocale is the canonical source locale for messages.
const BaseLocale = "en-US"

var supported = []language.Tag{
	language.AmericanEnglish,
	language.French,
	language.Portuguese,
}

var matcher = language.NewMatcher(supported)

var translations = map[language.Tag]map[string]string{
	language.AmericanEnglish: {
		"error.not_found":          "The requested record was not found.",
		"error.forbidden":          "You are not allowed to perform this action.",
		"error.unauthorized":       "Sign in to continue.",
		"error.invalid_input":      "The request is invalid.",
		"error.invalid_transition": "This request has already been resolved.",
		"error.unavailable":        "The service is temporarily unavailable.",
		"error.internal":           "Something went wrong. Please try again.",
	},
	language.French: {
		"error.not_found":          "L'enregistrement demandé est introuvable.",
		"error.forbidden":          "Vous n'êtes pas autorisé à effectuer cette action.",
		"error.unauthorized":       "Connectez-vous pour continuer.",
		"error.invalid_input":      "La requête est invalide.",
		"error.invalid_transition": "Cette demande a déjà été traitée.",
		"error.unavailable":        "Le service est temporairement indisponible.",
		"error.internal":           "Une erreur s'est produite. Veuillez réessayer.",
	},
	language.Portuguese: {
		"error.not_found":          "O registro solicitado não foi encontrado.",
		"error.forbidden":          "Você não tem permissão para executar esta ação.",
		"error.unauthorized":       "Entre na sua conta para continuar.",
		"error.invalid_input":      "A solicitação é inválida.",
		"error.invalid_transition": "Esta solicitação já foi resolvida.",
		"error.unavailable":        "O serviço está temporariamente indisponível.",
		"error.internal":           "Algo deu errado. Tente novamente.",
	},
}

var defaultCatalog = mustBuildCatalog()

func mustBuildCatalog() catalog.Catalog {
	builder := catalog.NewBuilder(catalog.Fallback(language.AmericanEnglish))
	for tag, messages := range translations {
		for key, text := range messages {
			if err := builder.SetString(tag, key, text); err != nil {
				panic(err)
			}
		}
	}
	return builder
}

// MatchRequest resolves the best supported language for an HTTP request.
func MatchRequest(r *http.Request) language.Tag {
	if r == nil {
		return language.AmericanEnglish
	}
	tags, _, err := language.ParseAcceptLanguage(r.Header.Get("Accept-Language"))
	if err != nil || len(tags) == 0 {
		return language.AmericanEnglish
	}
	tag, _, _ := matcher.Match(tags...)
	return tag
}

// Printer returns a message printer for the given language.
func Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag, message.Catalog(defaultCatalog))
}

// Localize renders one message key in the request's language.
func Localize(r *http.Request, key string) string {
	return Printer(MatchRequest(r)).Sprintf(key)
}
