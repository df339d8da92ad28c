package domain

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var foldTransformer = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// FoldText lowers case and strips diacritics, mirroring what the database
// does with lower(unaccent(...)) when the search vector is built. Equality
// filters run through this so "Automática" and "automatica" match the same
// rows.
func FoldText(s string) string {
	folded, _, err := transform.String(foldTransformer, s)
	if err != nil {
		// Removal of combining marks cannot fail on valid UTF-8; fall
		// back to plain lowering for anything else.
		return strings.ToLower(strings.TrimSpace(s))
	}
	return strings.ToLower(strings.TrimSpace(folded))
}

// FoldAll folds every value, dropping entries that become empty.
func FoldAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if folded := FoldText(v); folded != "" {
			out = append(out, folded)
		}
	}
	return out
}
