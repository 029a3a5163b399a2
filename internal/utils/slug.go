package utils

import (
	"regexp"
	"strings"

	"github.com/mozillazg/go-unidecode"
)

const slugMaxLength = 255

var slugInvalid = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify transliterates s to ASCII and turns it into a lowercase slug of
// letters, digits and single hyphens.
//
//	Slugify("Главная страница") // "glavnaia-stranitsa"
func Slugify(s string) string {
	slug := strings.ToLower(unidecode.Unidecode(s))
	slug = slugInvalid.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	if len(slug) > slugMaxLength {
		slug = strings.TrimRight(slug[:slugMaxLength], "-")
	}
	return slug
}
