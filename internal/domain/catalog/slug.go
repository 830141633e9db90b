package catalog

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	nonSlug   = regexp.MustCompile(`[^a-z0-9\-]+`)
	multiDash = regexp.MustCompile(`-+`)
)

// Slugify turns a display name into a URL path segment.
// Example: "Qualité & Livraison" -> "qualite-livraison"
func Slugify(name string) string {
	folded, _, err := transform.String(
		transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC),
		name,
	)
	if err != nil {
		folded = name
	}

	base := strings.ToLower(strings.TrimSpace(folded))
	base = strings.ReplaceAll(base, " ", "-")
	base = nonSlug.ReplaceAllString(base, "")
	base = multiDash.ReplaceAllString(base, "-")
	return strings.Trim(base, "-")
}

// pageHref is the href a page gets when the admin leaves it empty.
func pageHref(name string) string {
	if slug := Slugify(name); slug != "" {
		return "/" + slug
	}
	return ""
}
