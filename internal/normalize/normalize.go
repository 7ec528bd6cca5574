// Package normalize provides utilities for normalizing user input before it
// reaches the catalog API.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks removes combining marks after canonical decomposition, so
// "Héloïse" and "Heloise" issue the same search.
//
//nolint:gochecknoglobals // Stateless transformer chain, safe to share.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Query canonicalizes a raw search query: trims, collapses internal
// whitespace, lowercases, and strips diacritics. Returns "" for
// whitespace-only input, which callers treat as "clear results".
func Query(raw string) string {
	folded, _, err := transform.String(stripMarks, raw)
	if err != nil {
		// Transform failures only happen on invalid UTF-8; fall back to
		// the raw input rather than dropping the user's query.
		folded = raw
	}

	return strings.ToLower(strings.Join(strings.Fields(folded), " "))
}
