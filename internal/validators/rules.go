package validators

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/MKhiriev/med-cms/models"
)

var (
	identificationNumberPattern = regexp.MustCompile(`^[A-Za-z0-9\-_]+$`)
	personNamePattern           = regexp.MustCompile(`^[а-яёА-ЯЁa-zA-Z\s\-]+$`)
	hospitalNamePattern         = regexp.MustCompile(`^[а-яёА-ЯЁa-zA-Z0-9\s\-№"«»().\/]+$`)
	slugPattern                 = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
)

func required(e *ValidationError, field, value string) bool {
	if strings.TrimSpace(value) == "" {
		e.Add(field, fmt.Sprintf("The %s field is required.", field))
		return false
	}
	return true
}

func length(e *ValidationError, field, value string, minLen, maxLen int) {
	n := utf8.RuneCountInString(value)
	if minLen > 0 && n < minLen {
		e.Add(field, fmt.Sprintf("The %s must be at least %d characters.", field, minLen))
	}
	if maxLen > 0 && n > maxLen {
		e.Add(field, fmt.Sprintf("The %s may not be greater than %d characters.", field, maxLen))
	}
}

func matches(e *ValidationError, field, value string, re *regexp.Regexp, message string) {
	if !re.MatchString(value) {
		e.Add(field, message)
	}
}

func email(e *ValidationError, field, value string) {
	if !required(e, field, value) {
		return
	}
	length(e, field, value, 0, 255)

	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != strings.TrimSpace(value) || !strings.Contains(addr.Address, "@") {
		e.Add(field, fmt.Sprintf("The %s must be a valid email address.", field))
	}
}

func personName(e *ValidationError, field, value string) {
	if !required(e, field, value) {
		return
	}
	length(e, field, value, 2, 50)
	matches(e, field, value, personNamePattern, fmt.Sprintf("The %s may only contain letters, spaces and hyphens.", field))
}

// password enforces 8..255 characters with at least one latin letter and one
// digit, confirmed by confirmation.
func password(e *ValidationError, field, value, confirmation string) {
	if !required(e, field, value) {
		return
	}
	length(e, field, value, 8, 255)

	var hasLetter, hasDigit bool
	for _, r := range value {
		switch {
		case r < unicode.MaxASCII && unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		e.Add(field, fmt.Sprintf("The %s must contain at least one letter and one digit.", field))
	}

	if required(e, field+"_confirmation", confirmation) && confirmation != value {
		e.Add(field, fmt.Sprintf("The %s confirmation does not match.", field))
	}
}

func oneOf(e *ValidationError, field, value string, allowed ...string) {
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	e.Add(field, fmt.Sprintf("The selected %s is invalid.", field))
}

// translatable requires known locale keys and, when needed, one non-empty
// value.
func translatable(e *ValidationError, field string, value models.Translatable, needed bool) {
	for locale, text := range value {
		if !models.IsSupportedLocale(locale) {
			e.Add(field, fmt.Sprintf("The %s has an unsupported locale %q.", field, locale))
		}
		if utf8.RuneCountInString(text) > 65535 {
			e.Add(field, fmt.Sprintf("The %s.%s is too long.", field, locale))
		}
	}
	if needed && value.IsEmpty() {
		e.Add(field, fmt.Sprintf("The %s field is required.", field))
	}
}

func nonNegative(e *ValidationError, field string, value *int) {
	if value != nil && *value < 0 {
		e.Add(field, fmt.Sprintf("The %s must be at least 0.", field))
	}
}
