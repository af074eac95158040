package cost

import (
	"testing"

	"github.com/rs/zerolog"

	"atelier/internal/parser"
)

func testEngine() *Engine {
	log := zerolog.Nop()
	norm := parser.NewNormalizer(9_999_999_999.99, &log)
	return NewEngine(norm, -200, 200, &log)
}

func TestIsValidCostValue(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want bool
	}{
		{"150", true},
		{"2 976,55 dire 2900", true},
		{"120/150", true},
		{"https://fournisseur.fr/panier/42", true},
		{"a voir", false},
		{"env. 150", false},
		{"", false},
	}
	for _, c := range cases {
		if got := IsValidCostValue(c.in); got != c.want {
			t.Fatalf("IsValidCostValue(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestParseMaterialCost_Shapes(t *testing.T) {
	t.Parallel()

	e := testEngine()

	got := e.ParseMaterialCost("https://fournisseur.fr/panier/42")
	if got.URL == "" || got.Amount == nil || *got.Amount != 0 {
		t.Fatalf("bare URL: %+v", got)
	}

	got = e.ParseMaterialCost("89,90 https://fournisseur.fr/panier/42")
	if got.URL == "" || got.Amount == nil || *got.Amount != 89.90 {
		t.Fatalf("composite: %+v", got)
	}

	got = e.ParseMaterialCost("89,90")
	if got.URL != "" || got.Amount == nil || *got.Amount != 89.90 {
		t.Fatalf("plain amount: %+v", got)
	}
}

func TestComputeCosts_Margin(t *testing.T) {
	t.Parallel()

	e := testEngine()

	b := e.ComputeCosts("100", "50", "400")
	if b.Margin == nil || *b.Margin != 250 {
		t.Fatalf("margin: %+v", b.Margin)
	}
}

func TestComputeCosts_MissingComponentsTreatedAsZero(t *testing.T) {
	t.Parallel()

	e := testEngine()

	b := e.ComputeCosts("", "", "400")
	if b.Margin == nil || *b.Margin != 400 {
		t.Fatalf("margin with missing components: %+v", b.Margin)
	}
}

func TestComputeCosts_ImplausibleMarginDiscarded(t *testing.T) {
	t.Parallel()

	e := testEngine()

	// margin = 100 - 500 = -400, i.e. -400% of the intervention
	b := e.ComputeCosts("500", "", "100")
	if b.Margin != nil {
		t.Fatalf("implausible margin must be discarded, got %v", *b.Margin)
	}
	if b.Subcontractor == nil || *b.Subcontractor != 500 {
		t.Fatalf("individual costs must survive: %+v", b)
	}
	if b.Intervention == nil || *b.Intervention != 100 {
		t.Fatalf("individual costs must survive: %+v", b)
	}
}

func TestComputeCosts_NegativeButPlausibleMarginKept(t *testing.T) {
	t.Parallel()

	e := testEngine()

	// margin = 100 - 150 = -50, i.e. -50%: inside bounds, kept
	b := e.ComputeCosts("150", "", "100")
	if b.Margin == nil || *b.Margin != -50 {
		t.Fatalf("plausible negative margin must be kept: %+v", b.Margin)
	}
}

func TestComputeCosts_BoundaryMarginKept(t *testing.T) {
	t.Parallel()

	e := testEngine()

	// margin = 100 - 300 = -200, exactly -200%: bounds are inclusive
	b := e.ComputeCosts("300", "", "100")
	if b.Margin == nil || *b.Margin != -200 {
		t.Fatalf("boundary margin must be kept: %+v", b.Margin)
	}
}

func TestComputeCosts_NoInterventionNoMargin(t *testing.T) {
	t.Parallel()

	e := testEngine()

	b := e.ComputeCosts("100", "50", "")
	if b.Margin != nil {
		t.Fatalf("no intervention amount, no margin: %v", *b.Margin)
	}
}

func TestCostRows_Tagging(t *testing.T) {
	t.Parallel()

	e := testEngine()
	b := e.ComputeCosts("100", "50", "400")
	rows := CostRows("itv-1", b)
	if len(rows) != 4 {
		t.Fatalf("want 4 rows got %d", len(rows))
	}
	kinds := map[string]bool{}
	for _, r := range rows {
		kinds[string(r.CostType)] = true
		if r.InterventionID != "itv-1" {
			t.Fatalf("bad intervention id: %+v", r)
		}
	}
	for _, k := range []string{"sst", "materiel", "intervention", "marge"} {
		if !kinds[k] {
			t.Fatalf("missing cost type %s in %v", k, rows)
		}
	}
}
