package site

import (
	"regexp"
	"strings"
)

var slugInvalidRE = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify normalizes a title to a URL-safe token: lower-cased, runs of
// non-alphanumerics collapsed to single hyphens. Deterministic; distinct
// titles mapping to the same slug is an accepted corner case.
func Slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = slugInvalidRE.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}
