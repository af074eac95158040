package parser

import (
	"testing"

	"github.com/rs/zerolog"
)

func testNormalizer() *Normalizer {
	log := zerolog.Nop()
	return NewNormalizer(9_999_999_999.99, &log)
}

func TestCleanString_NullLiterals(t *testing.T) {
	t.Parallel()

	if got := CleanString("  null "); got != "" {
		t.Fatalf("null literal not cleaned: %q", got)
	}
	if got := CleanString("NULL"); got != "" {
		t.Fatalf("NULL literal not cleaned: %q", got)
	}
	if got := CleanString("  Dupont  "); got != "Dupont" {
		t.Fatalf("want Dupont got %q", got)
	}
}

func TestCleanPhone_DigitBounds(t *testing.T) {
	t.Parallel()

	if got := CleanPhone("0612345678"); got != "0612345678" {
		t.Fatalf("10 digits must pass unchanged, got %q", got)
	}
	if got := CleanPhone("06 12 34 56 78"); got != "0612345678" {
		t.Fatalf("separators must be stripped, got %q", got)
	}
	if got := CleanPhone("123"); got != "" {
		t.Fatalf("3 digits must be rejected, got %q", got)
	}
	if got := CleanPhone("1234567890123456"); got != "" {
		t.Fatalf("16 digits must be rejected, got %q", got)
	}
}

func TestCleanEmail(t *testing.T) {
	t.Parallel()

	if got := CleanEmail(" Jean.Dupont@Example.FR "); got != "jean.dupont@example.fr" {
		t.Fatalf("unexpected email: %q", got)
	}
	if got := CleanEmail("pas un email"); got != "" {
		t.Fatalf("invalid email must yield empty, got %q", got)
	}
}

func TestCleanSIRET(t *testing.T) {
	t.Parallel()

	if got := CleanSIRET("123 456 789 00012"); got != "12345678900012" {
		t.Fatalf("unexpected siret: %q", got)
	}
	if got := CleanSIRET("12345678"); got != "" {
		t.Fatalf("siren-length input must be rejected, got %q", got)
	}
}

func TestParseNumber_FrenchSeparators(t *testing.T) {
	t.Parallel()

	n := testNormalizer()

	got := n.ParseNumber("2 976,55 dire 2900")
	if got == nil || *got != 2976.55 {
		t.Fatalf("2 976,55 dire 2900: got %v", got)
	}

	got = n.ParseNumber("1.234.567,89")
	if got == nil || *got != 1234567.89 {
		t.Fatalf("1.234.567,89: got %v", got)
	}

	got = n.ParseNumber("1.234.56")
	if got == nil || *got != 1234.56 {
		t.Fatalf("multiple dots, last decimal: got %v", got)
	}

	got = n.ParseNumber("150.50")
	if got == nil || *got != 150.50 {
		t.Fatalf("single dot decimal: got %v", got)
	}
}

func TestParseNumber_Arithmetic(t *testing.T) {
	t.Parallel()

	n := testNormalizer()

	got := n.ParseNumber("102+75,11")
	if got == nil || *got != 177.11 {
		t.Fatalf("102+75,11: got %v", got)
	}

	got = n.ParseNumber("200 - 50")
	if got == nil || *got != 150 {
		t.Fatalf("200 - 50: got %v", got)
	}
}

func TestParseNumber_RejectsMultiOperator(t *testing.T) {
	t.Parallel()

	n := testNormalizer()

	// more than one operator never silently degrades to digit concatenation
	for _, v := range []string{"1+2+3", "100+50+25", "100-50-25", "100+-50"} {
		if got := n.ParseNumber(v); got != nil {
			t.Fatalf("%s must be rejected, got %v", v, *got)
		}
	}

	// a leading sign is still a plain negative number, not an expression
	got := n.ParseNumber("-50")
	if got == nil || *got != -50 {
		t.Fatalf("-50: got %v", got)
	}
}

func TestParseNumber_RejectsFreeText(t *testing.T) {
	t.Parallel()

	n := testNormalizer()

	if got := n.ParseNumber("abc123"); got != nil {
		t.Fatalf("abc123 must be rejected, got %v", got)
	}
	if got := n.ParseNumber("a voir avec le client"); got != nil {
		t.Fatalf("free text must be rejected, got %v", got)
	}
}

func TestParseNumber_SlashComment(t *testing.T) {
	t.Parallel()

	n := testNormalizer()

	got := n.ParseNumber("120,50/150")
	if got == nil || *got != 120.50 {
		t.Fatalf("slash keeps the first value: got %v", got)
	}

	// letters after the slash still poison the whole value
	if got := n.ParseNumber("120,50 / a confirmer"); got != nil {
		t.Fatalf("letters after slash must reject, got %v", got)
	}
}

func TestParseNumber_Clamp(t *testing.T) {
	t.Parallel()

	n := testNormalizer()

	got := n.ParseNumber("99999999999999")
	if got == nil || *got != 9_999_999_999.99 {
		t.Fatalf("over-bound value must clamp, got %v", got)
	}
}

func TestParseNumber_IdempotentOnOwnOutput(t *testing.T) {
	t.Parallel()

	n := testNormalizer()

	for _, in := range []string{"2 976,55", "102+75,11", "1.234.567,89", "150.50", "-42"} {
		first := n.ParseNumber(in)
		if first == nil {
			t.Fatalf("%s did not parse", in)
		}
		second := n.ParseNumber(FormatAmount(*first))
		if second == nil || *second != *first {
			t.Fatalf("%s not idempotent: first=%v second=%v", in, first, second)
		}
	}
}

func TestParseDate_Formats(t *testing.T) {
	t.Parallel()

	if got := ParseDate("25/03/2024"); got != "2024-03-25" {
		t.Fatalf("DD/MM/YYYY: got %q", got)
	}
	if got := ParseDate("25-03-2024"); got != "2024-03-25" {
		t.Fatalf("DD-MM-YYYY: got %q", got)
	}
	if got := ParseDate("2024-03-25"); got != "2024-03-25" {
		t.Fatalf("ISO passthrough: got %q", got)
	}
	if got := ParseDate("25/03/1850"); got != "" {
		t.Fatalf("year below 1900 must be rejected, got %q", got)
	}
	if got := ParseDate("bientot"); got != "" {
		t.Fatalf("free text must be rejected, got %q", got)
	}
}
