package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/rs/zerolog"
)

var (
	emailRe = regexp.MustCompile(`^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`)
	digitRe = regexp.MustCompile(`\D`)
	// trailing "dire 2900" style annotation: the entered amount with the
	// operationally agreed one appended after it
	direRe       = regexp.MustCompile(`(?i)\s*dire\b.*$`)
	arithmeticRe = regexp.MustCompile(`^\s*([0-9][0-9\s.,\x{00a0}]*?)\s*([+\-])\s*([0-9][0-9\s.,\x{00a0}]*)\s*$`)
)

// Normalizer cleans raw cell values into typed primitives. All methods degrade
// to the zero value on unparseable input, never to an error.
type Normalizer struct {
	maxAmount float64
	log       *zerolog.Logger
}

// NewNormalizer creates a normalizer with the given amount ceiling.
func NewNormalizer(maxAmount float64, log *zerolog.Logger) *Normalizer {
	return &Normalizer{maxAmount: maxAmount, log: log}
}

// CleanString trims a raw value, mapping "null"/"NULL" literals and empty
// strings to "".
func CleanString(v string) string {
	v = strings.TrimSpace(v)
	if v == "" || strings.EqualFold(v, "null") {
		return ""
	}
	return v
}

// CleanPhone strips non-digits and validates the digit count. Anything outside
// [8,15] digits is rejected outright, there is no partial-match fallback.
func CleanPhone(v string) string {
	digits := digitRe.ReplaceAllString(v, "")
	if len(digits) < 8 || len(digits) > 15 {
		return ""
	}
	return digits
}

// CleanEmail lowercases, trims and validates against a minimal
// local@domain.tld pattern.
func CleanEmail(v string) string {
	v = strings.ToLower(strings.TrimSpace(v))
	if !emailRe.MatchString(v) {
		return ""
	}
	return v
}

// CleanSIRET strips non-digits; a SIRET is valid only at exactly 14 digits.
func CleanSIRET(v string) string {
	digits := digitRe.ReplaceAllString(v, "")
	if len(digits) != 14 {
		return ""
	}
	return digits
}

// ParseNumber parses a messy currency/number cell. It tolerates French and
// international separators, embedded "dire X" annotations, slash-appended
// comments and a single +/- arithmetic expression. Free text is rejected.
func (n *Normalizer) ParseNumber(v string) *float64 {
	v = CleanString(v)
	if v == "" {
		return nil
	}

	// reject free text: after dropping the "dire" annotation and slashes,
	// no letter may remain
	check := direRe.ReplaceAllString(v, "")
	check = strings.ReplaceAll(check, "/", "")
	for _, r := range check {
		if unicode.IsLetter(r) {
			n.logDrop(v, "letters in numeric field")
			return nil
		}
	}

	// keep only the part before a slash comment
	if idx := strings.IndexByte(v, '/'); idx >= 0 {
		v = v[:idx]
	}

	// a single top-level +/- between two numeric groups is an expression;
	// an unparseable operand fails the whole value
	if m := arithmeticRe.FindStringSubmatch(v); m != nil {
		left := n.ParseNumber(m[1])
		right := n.ParseNumber(m[3])
		if left == nil || right == nil {
			n.logDrop(v, "unparseable arithmetic operand")
			return nil
		}
		result := *left + *right
		if m[2] == "-" {
			result = *left - *right
		}
		return n.clamp(v, result)
	}

	// keep the first number, drop the "dire X" annotation
	v = direRe.ReplaceAllString(v, "")

	// an operator that survived the expression branch means more than one
	// +/- term; stripping it would concatenate the digit groups
	if strings.Contains(v, "+") || strings.IndexByte(v, '-') > 0 {
		n.logDrop(v, "unparseable arithmetic expression")
		return nil
	}

	f, ok := parseSeparated(v)
	if !ok {
		n.logDrop(v, "no numeric value")
		return nil
	}
	return n.clamp(v, f)
}

// parseSeparated resolves French vs international separator conventions and
// parses the result as a float.
func parseSeparated(v string) (float64, bool) {
	var b strings.Builder
	for _, r := range v {
		switch {
		case r >= '0' && r <= '9', r == ',', r == '.', r == '-':
			b.WriteRune(r)
		}
	}
	s := b.String()
	if s == "" || s == "-" {
		return 0, false
	}

	if strings.Contains(s, ",") {
		// comma is always the decimal separator; dots and spaces before it
		// are thousands separators
		last := strings.LastIndexByte(s, ',')
		intPart := strings.ReplaceAll(s[:last], ".", "")
		intPart = strings.ReplaceAll(intPart, ",", "")
		s = intPart + "." + strings.ReplaceAll(s[last+1:], ".", "")
	} else if strings.Count(s, ".") > 1 {
		// multiple dots: all but the last are thousands separators
		last := strings.LastIndexByte(s, '.')
		s = strings.ReplaceAll(s[:last], ".", "") + "." + s[last+1:]
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// clamp bounds a parsed amount to the persistence layer's numeric(12,2) range.
func (n *Normalizer) clamp(raw string, f float64) *float64 {
	max := n.maxAmount
	if max <= 0 {
		max = 9_999_999_999.99
	}
	if f > max || f < -max {
		clamped := max
		if f < 0 {
			clamped = -max
		}
		if n.log != nil {
			n.log.Warn().
				Str("raw", raw).
				Float64("parsed", f).
				Float64("clamped", clamped).
				Msg("amount beyond persistence bound, clamped")
		}
		return &clamped
	}
	return &f
}

func (n *Normalizer) logDrop(raw, reason string) {
	if n.log != nil {
		n.log.Debug().Str("raw", raw).Str("reason", reason).Msg("unparseable number")
	}
}

var dateLayouts = []string{
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"2-1-2006",
	"2006-01-02",
}

// ParseDate parses DD/MM/YYYY, DD-MM-YYYY or YYYY-MM-DD into ISO 8601.
// Years outside [1900, 2100] and unparseable input yield "".
func ParseDate(v string) string {
	v = CleanString(v)
	if v == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, v)
		if err != nil {
			continue
		}
		if t.Year() < 1900 || t.Year() > 2100 {
			return ""
		}
		return t.Format("2006-01-02")
	}
	return ""
}

// FormatAmount renders an amount the way ParseNumber re-reads it, for logs and
// round-trip audits.
func FormatAmount(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// FormatDerivation renders a margin derivation trail for audit logs.
func FormatDerivation(intervention, sst, material, margin float64) string {
	return fmt.Sprintf("%s - %s - %s = %s",
		FormatAmount(intervention), FormatAmount(sst), FormatAmount(material), FormatAmount(margin))
}
