package exporter

import (
	"context"
	"path/filepath"
	"testing"

	"atelier/internal/model"
	"atelier/internal/store"
)

func TestExportRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	st, err := store.New(filepath.Join(t.TempDir(), "atelier.db"))
	if err != nil {
		t.Fatalf("store.New: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	tradeID, _, err := st.FindOrCreate(ctx, model.KindTrade, "Plomberie")
	if err != nil {
		t.Fatalf("FindOrCreate: %v", err)
	}
	agencyID, _, err := st.FindOrCreate(ctx, model.KindAgency, "Montpellier")
	if err != nil {
		t.Fatalf("FindOrCreate: %v", err)
	}

	artisans := []*model.CanonicalArtisan{{
		ID:        "a1",
		RowNo:     2,
		Firstname: "Virginie",
		Lastname:  "ABBAS",
		PlainName: "ABBAS Virginie 34",
		Email:     "v.abbas@example.fr",
		Address:   model.Address{Street: "3 rue des Lilas", PostalCode: "34000", City: "Montpellier"},
		AgencyID:  agencyID,
		TradeIDs:  []string{tradeID},
	}}
	if err := st.BatchInsertArtisans(ctx, artisans); err != nil {
		t.Fatalf("BatchInsertArtisans: %v", err)
	}

	sst := 100.0
	margin := 250.0
	itv := &model.CanonicalIntervention{
		ID:           "i1",
		RowNo:        2,
		Reference:    "INT-001",
		SSTArtisanID: "a1",
		TradeID:      tradeID,
	}
	rows := []model.MappedRow{{
		Intervention: itv,
		CostRows: []model.CostRow{
			{InterventionID: "i1", CostType: model.CostTypeSST, Amount: sst},
			{InterventionID: "i1", CostType: model.CostTypeMargin, Amount: margin},
		},
	}}
	if err := st.BatchInsertInterventions(ctx, rows); err != nil {
		t.Fatalf("BatchInsertInterventions: %v", err)
	}

	f, err := NewExporter(st).Export(ctx)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	defer f.Close()

	cell := func(sheet, ref string) string {
		t.Helper()
		v, err := f.GetCellValue(sheet, ref)
		if err != nil {
			t.Fatalf("GetCellValue(%s!%s): %v", sheet, ref, err)
		}
		return v
	}

	if got := cell("Artisans", "A1"); got != "Nom complet" {
		t.Fatalf("artisan header = %q", got)
	}
	if got := cell("Artisans", "A2"); got != "ABBAS Virginie 34" {
		t.Fatalf("artisan plain name = %q", got)
	}
	// joined reference names, not ids
	if got := cell("Artisans", "L2"); got != "Montpellier" {
		t.Fatalf("artisan agency = %q", got)
	}
	if got := cell("Artisans", "P2"); got != "Plomberie" {
		t.Fatalf("artisan trades = %q", got)
	}

	if got := cell("Interventions", "A2"); got != "INT-001" {
		t.Fatalf("intervention reference = %q", got)
	}
	if got := cell("Interventions", "I2"); got != "ABBAS Virginie 34" {
		t.Fatalf("intervention sst = %q", got)
	}
	if got := cell("Interventions", "K2"); got != "100" {
		t.Fatalf("intervention sst cost = %q", got)
	}
	// no material cost on the row: the cell stays empty
	if got := cell("Interventions", "L2"); got != "" {
		t.Fatalf("intervention material cost = %q, want empty", got)
	}
	if got := cell("Interventions", "N2"); got != "250" {
		t.Fatalf("intervention margin = %q", got)
	}
}
