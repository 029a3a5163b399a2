// Package i18n resolves the content locale of a request.
//
// Supported locales are the keys of translatable fields: ru (default), be
// and en. Resolution never fails: anything unsupported resolves to the
// default locale.
package i18n

import (
	"strings"

	"github.com/MKhiriev/med-cms/models"
	"golang.org/x/text/language"
)

// Matcher maps query parameters and Accept-Language headers onto the
// supported content locales.
type Matcher struct {
	defaultLocale string
	supported     []string
	matcher       language.Matcher
}

// NewMatcher builds a Matcher whose fallback is defaultLocale. An
// unsupported defaultLocale is replaced by [models.DefaultLocale].
func NewMatcher(defaultLocale string) *Matcher {
	if !models.IsSupportedLocale(defaultLocale) {
		defaultLocale = models.DefaultLocale
	}

	// the default goes first so that a no-confidence match returns it
	supported := []string{defaultLocale}
	for _, l := range models.SupportedLocales {
		if l != defaultLocale {
			supported = append(supported, l)
		}
	}

	tags := make([]language.Tag, 0, len(supported))
	for _, l := range supported {
		tags = append(tags, language.MustParse(l))
	}

	return &Matcher{
		defaultLocale: defaultLocale,
		supported:     supported,
		matcher:       language.NewMatcher(tags),
	}
}

// Default returns the fallback locale.
func (m *Matcher) Default() string {
	return m.defaultLocale
}

// Match resolves a single locale code ("be", "en-US") or an
// Accept-Language value ("en-GB,en;q=0.9,ru;q=0.8").
func (m *Matcher) Match(value string) string {
	if locale, ok := m.match(value); ok {
		return locale
	}
	return m.defaultLocale
}

// Resolve picks the request locale: the explicit query value wins over the
// Accept-Language header when it names a supported locale.
func (m *Matcher) Resolve(query, acceptLanguage string) string {
	if locale, ok := m.match(query); ok {
		return locale
	}
	return m.Match(acceptLanguage)
}

func (m *Matcher) match(value string) (string, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", false
	}

	if lower := strings.ToLower(value); models.IsSupportedLocale(lower) {
		return lower, true
	}

	tags, _, err := language.ParseAcceptLanguage(value)
	if err != nil || len(tags) == 0 {
		tag, err := language.Parse(value)
		if err != nil {
			return "", false
		}
		tags = []language.Tag{tag}
	}

	_, idx, confidence := m.matcher.Match(tags...)
	if confidence == language.No || idx < 0 || idx >= len(m.supported) {
		return "", false
	}
	return m.supported[idx], true
}
