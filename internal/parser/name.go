package parser

import (
	"regexp"
	"strings"

	"atelier/internal/model"
)

// particles that open a compound French surname
var particles = map[string]bool{
	"le": true, "de": true, "du": true, "la": true, "les": true, "des": true,
}

// SplitName splits free text into (firstname, lastname).
//
// A leading particle binds to the surname: "Le Maire Jean" → ("Jean", "Le Maire").
// Otherwise the first token is the firstname and the rest the lastname.
// Single-token input keeps the token as firstname, lastname stays empty.
func SplitName(full string) (firstname, lastname string) {
	tokens := strings.Fields(CleanString(full))
	switch len(tokens) {
	case 0:
		return "", ""
	case 1:
		return tokens[0], ""
	}

	if particles[strings.ToLower(Fold(tokens[0]))] {
		return tokens[len(tokens)-1], strings.Join(tokens[:len(tokens)-1], " ")
	}
	return tokens[0], strings.Join(tokens[1:], " ")
}

// ExtractFirstname returns the firstname part of a free-text name.
func ExtractFirstname(full string) string {
	first, _ := SplitName(full)
	return first
}

// ExtractLastname returns the lastname part of a free-text name.
func ExtractLastname(full string) string {
	_, last := SplitName(full)
	return last
}

// NameHeuristic decides whether a (firstname, lastname) pair is evidently
// transposed. Heuristics are approximate and swappable.
type NameHeuristic interface {
	ShouldInvert(firstname, lastname string) bool
}

// FrenchNameHeuristic detects transpositions from curated common-name lists
// plus length and particle cues.
type FrenchNameHeuristic struct{}

// ShouldInvert reports whether firstname/lastname look swapped.
func (FrenchNameHeuristic) ShouldInvert(firstname, lastname string) bool {
	first := NormalizeKey(firstname)
	last := NormalizeKey(lastname)
	if first == "" || last == "" {
		return false
	}

	lastLooksFirst := commonFirstnames[last]
	firstLooksLast := commonLastnames[first]

	if lastLooksFirst && firstLooksLast {
		return true
	}
	if lastLooksFirst && !commonFirstnames[first] && len(firstname) > len(lastname)+2 {
		return true
	}
	// a particle opens surnames, not firstnames
	firstTokens := strings.Fields(first)
	lastTokens := strings.Fields(last)
	if len(firstTokens) > 0 && particles[firstTokens[0]] &&
		(len(lastTokens) == 0 || !particles[lastTokens[0]]) {
		return true
	}
	return false
}

var (
	civilityRe = regexp.MustCompile(`(?i)\b(m\.?|mr\.?|mme\.?|mlle\.?|monsieur|madame|mademoiselle)\s`)
	// French mobile/landline shapes, including +33 prefixed and bare 10-digit runs
	phoneRe     = regexp.MustCompile(`(?:\+33[\s.\-]?[1-9](?:[\s.\-]?\d{2}){4})|(?:0[1-9](?:[\s.\-]?\d{2}){4})|(?:\b\d{10}\b)`)
	freeEmailRe = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
)

// noise tokens seen around names in contact blocks
var nameNoise = map[string]bool{
	"tel": true, "tel.": true, "tél": true, "tél.": true, "portable": true,
	"fixe": true, "mail": true, "email": true, "e-mail": true,
	"conjoint": true, "conjointe": true, "locataire": true, "proprietaire": true,
	"propriétaire": true, "et": true, "ou": true, "/": true, "-": true, ":": true,
}

// ParsePersonName extracts a person name from an unstructured contact block
// mixing civility, name, phones and noise words.
func ParsePersonName(text string) model.PersonName {
	text = phoneRe.ReplaceAllString(text, " ")
	text = freeEmailRe.ReplaceAllString(text, " ")
	text = civilityRe.ReplaceAllString(text, " ")

	var kept []string
	for _, tok := range strings.Fields(text) {
		t := strings.Trim(tok, ",;:()\"'")
		if t == "" || nameNoise[strings.ToLower(Fold(t))] {
			continue
		}
		if !containsLetter(t) {
			continue
		}
		kept = append(kept, t)
	}
	if len(kept) == 0 {
		return model.PersonName{}
	}
	if len(kept) == 1 {
		return model.PersonName{Firstname: kept[0]}
	}

	// all-caps tokens are the surname when the block mixes cases
	var caps, mixed []string
	for _, t := range kept {
		if isAllCaps(t) {
			caps = append(caps, t)
		} else {
			mixed = append(mixed, t)
		}
	}
	if len(caps) > 0 && len(mixed) > 0 {
		return model.PersonName{
			Firstname: strings.Join(mixed, " "),
			Lastname:  strings.Join(caps, " "),
		}
	}

	first, last := SplitName(strings.Join(kept, " "))
	return model.PersonName{Firstname: first, Lastname: last}
}

// ExtractPhones scans free text for French phone patterns, normalizes +33 to 0
// and deduplicates preserving encounter order. The first match is the primary.
func ExtractPhones(text string) []string {
	var out []string
	seen := map[string]bool{}
	for _, m := range phoneRe.FindAllString(text, -1) {
		digits := digitRe.ReplaceAllString(m, "")
		if strings.HasPrefix(digits, "33") && len(digits) == 11 {
			digits = "0" + digits[2:]
		}
		if len(digits) < 8 || len(digits) > 15 || seen[digits] {
			continue
		}
		seen[digits] = true
		out = append(out, digits)
	}
	return out
}

// ExtractEmail returns the first email found in free text, lowercased.
func ExtractEmail(text string) string {
	m := freeEmailRe.FindString(text)
	return strings.ToLower(m)
}

func containsLetter(s string) bool {
	for _, r := range s {
		if ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') || r > 127 {
			return true
		}
	}
	return false
}

func isAllCaps(s string) bool {
	hasLetter := false
	for _, r := range Fold(s) {
		if 'a' <= r && r <= 'z' {
			return false
		}
		if 'A' <= r && r <= 'Z' {
			hasLetter = true
		}
	}
	return hasLetter
}
