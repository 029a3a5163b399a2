package service

import (
	"github.com/microcosm-cc/bluemonday"

	"github.com/MKhiriev/med-cms/models"
)

// sanitizer cleans admin supplied HTML. Rich fields keep user generated
// content markup, plain fields lose every tag.
type sanitizer struct {
	rich  *bluemonday.Policy
	plain *bluemonday.Policy
}

func newSanitizer() *sanitizer {
	return &sanitizer{
		rich:  bluemonday.UGCPolicy(),
		plain: bluemonday.StrictPolicy(),
	}
}

func (s *sanitizer) HTML(t models.Translatable) models.Translatable {
	return sanitizeTranslatable(t, s.rich)
}

func (s *sanitizer) Text(t models.Translatable) models.Translatable {
	return sanitizeTranslatable(t, s.plain)
}

func sanitizeTranslatable(t models.Translatable, policy *bluemonday.Policy) models.Translatable {
	out := make(models.Translatable, len(t))
	for locale, text := range t {
		out[locale] = policy.Sanitize(text)
	}
	return out
}
