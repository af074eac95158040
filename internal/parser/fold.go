package parser

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	foldChain    = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// Fold strips diacritics: NFD decompose, drop combining marks, recompose.
func Fold(s string) string {
	out, _, err := transform.String(foldChain, s)
	if err != nil {
		return s
	}
	return out
}

// NormalizeKey folds accents, lowercases and collapses whitespace. This is the
// canonical form used as cache and matching key everywhere.
func NormalizeKey(s string) string {
	s = Fold(strings.TrimSpace(s))
	s = strings.ToLower(s)
	return whitespaceRe.ReplaceAllString(s, " ")
}

// NormalizeColumnName normalizes a human-entered column header: accents
// folded, lowercased, all whitespace removed.
func NormalizeColumnName(name string) string {
	name = Fold(strings.TrimSpace(name))
	name = strings.ToLower(name)
	return whitespaceRe.ReplaceAllString(name, "")
}
