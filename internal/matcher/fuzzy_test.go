package matcher

import (
	"context"
	"errors"
	"testing"
	"time"

	"atelier/internal/model"
)

func testCandidates() []Candidate {
	return []Candidate{
		{ID: "a1", PlainName: "ABBAS Virginie", Firstname: "Virginie", Lastname: "ABBAS"},
		{ID: "a2", PlainName: "DUPONT Jean 75", CompanyName: "Dupont Rénovation", Firstname: "Jean", Lastname: "DUPONT"},
		{ID: "a3", PlainName: "Plombexpress", CompanyName: "Plombexpress SARL"},
	}
}

func TestMatch_ExactPlainName(t *testing.T) {
	t.Parallel()

	m := New()
	got := m.Match("abbas virginie", testCandidates())
	if got.EntityID != "a1" || got.Strategy != model.StrategyExactPlain {
		t.Fatalf("unexpected: %+v", got)
	}
}

func TestMatch_AccentAndCaseInsensitive(t *testing.T) {
	t.Parallel()

	m := New()
	got := m.Match("ABBÀS VIRGINIE", testCandidates())
	if got.EntityID != "a1" {
		t.Fatalf("accent folding failed: %+v", got)
	}
}

func TestMatch_InvertedWithTrailingDigits(t *testing.T) {
	t.Parallel()

	m := New()
	got := m.Match("Virginie ABBAS 34", testCandidates())
	if got.EntityID != "a1" {
		t.Fatalf("unexpected: %+v", got)
	}
	if got.Strategy != model.StrategyDigitsStripped {
		t.Fatalf("strategy must report the digit-stripped retry, got %s (%s)", got.Strategy, got.Reason)
	}
}

func TestMatch_CandidateTrailingDigitsStripped(t *testing.T) {
	t.Parallel()

	m := New()
	got := m.Match("DUPONT Jean", testCandidates())
	if got.EntityID != "a2" || got.Strategy != model.StrategyExactPlain {
		t.Fatalf("unexpected: %+v", got)
	}
}

func TestMatch_CompanyName(t *testing.T) {
	t.Parallel()

	m := New()
	got := m.Match("Dupont Rénovation", testCandidates())
	if got.EntityID != "a2" {
		t.Fatalf("unexpected: %+v", got)
	}
}

func TestMatch_CompositeFirstSegment(t *testing.T) {
	t.Parallel()

	m := New()
	// the full query matches nothing; its first segment is a prefix of a3
	got := m.Match("PLOMBEXP / reprise chantier Tubize", testCandidates())
	if got.EntityID != "a3" || got.Strategy != model.StrategyComposite {
		t.Fatalf("unexpected: %+v", got)
	}
}

func TestMatch_PartialPlainName(t *testing.T) {
	t.Parallel()

	m := New()
	got := m.Match("Plombexpress agence de Lille", testCandidates())
	if got.EntityID != "a3" || got.Strategy != model.StrategyPartialPlain {
		t.Fatalf("unexpected: %+v", got)
	}
}

func TestMatch_PartialRequiresMinLength(t *testing.T) {
	t.Parallel()

	m := New()
	// "bas" sits inside "abbas virginie" but is too short for containment
	got := m.Match("bas", testCandidates())
	if got.EntityID != "" || got.Strategy != model.StrategyNone {
		t.Fatalf("unexpected: %+v", got)
	}
}

func TestMatch_NoMatch(t *testing.T) {
	t.Parallel()

	m := New()
	got := m.Match("SOCIETE INCONNUE", testCandidates())
	if got.EntityID != "" || got.Strategy != model.StrategyNone {
		t.Fatalf("unexpected: %+v", got)
	}
}

func TestThrottle_Spacing(t *testing.T) {
	t.Parallel()

	th := NewThrottle(30 * time.Millisecond)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 3; i++ {
		if err := th.Wait(ctx); err != nil {
			t.Fatalf("wait: %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed < 55*time.Millisecond {
		t.Fatalf("three calls must span two intervals, took %v", elapsed)
	}
}

func TestThrottle_WithRetry(t *testing.T) {
	t.Parallel()

	th := NewThrottle(0)
	attempts := 0
	err := th.WithRetry(context.Background(), 1, func() error {
		attempts++
		if attempts == 1 {
			return errors.New("connection reset")
		}
		return nil
	})
	if err != nil || attempts != 2 {
		t.Fatalf("single retry expected: err=%v attempts=%d", err, attempts)
	}

	attempts = 0
	err = th.WithRetry(context.Background(), 1, func() error {
		attempts++
		return errors.New("still down")
	})
	if err == nil || attempts != 2 {
		t.Fatalf("must give up after one retry: err=%v attempts=%d", err, attempts)
	}
}

func TestClassifyDocument_Taxonomy(t *testing.T) {
	t.Parallel()

	cases := []struct {
		file string
		want model.DocumentKind
	}{
		{"Attestation décennale 2024.pdf", model.DocAssurance},
		{"RIB artisan.pdf", model.DocRIB},
		{"kbis_2023.pdf", model.DocKbis},
		{"Contrat sous-traitance signé.pdf", model.DocContrat},
		{"devis 42.pdf", model.DocDevis},
		{"facture_mars.pdf", model.DocFacture},
		{"IMG_2041.jpg", model.DocPhoto},
		{"notes.txt", model.DocToClassify},
	}
	for _, c := range cases {
		if got := ClassifyDocument(c.file); got.Kind != c.want {
			t.Fatalf("ClassifyDocument(%q) = %s, want %s", c.file, got.Kind, c.want)
		}
	}
}
