// Package textnorm folds Portuguese text for case- and accent-insensitive matching.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var ordinals = strings.NewReplacer("º", "o", "ª", "a")

// Fold lowercases s, turns ordinal indicators into letters and strips
// diacritics: "Adiantamento de 13º Salário" -> "adiantamento de 13o salario".
func Fold(s string) string {
	s = ordinals.Replace(strings.ToLower(s))
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// ContainsFold reports whether needle occurs in s after folding both.
func ContainsFold(s, needle string) bool {
	return strings.Contains(Fold(s), Fold(needle))
}
