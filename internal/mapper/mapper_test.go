package mapper

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"atelier/internal/cost"
	"atelier/internal/matcher"
	"atelier/internal/model"
	"atelier/internal/parser"
	"atelier/internal/resolver"
)

type memStore struct {
	calls  int
	byName map[string]string
}

func (s *memStore) FindOrCreate(_ context.Context, kind model.ReferenceKind, name string) (string, bool, error) {
	s.calls++
	key := string(kind) + "/" + name
	if s.byName == nil {
		s.byName = map[string]string{}
	}
	if id, ok := s.byName[key]; ok {
		return id, false, nil
	}
	s.byName[key] = key
	return key, true, nil
}

func (s *memStore) GetByCode(_ context.Context, kind model.ReferenceKind, code string) (string, error) {
	return string(kind) + "#" + code, nil
}

func newTestMapper(store *memStore) *RowMapper {
	log := zerolog.Nop()
	norm := parser.NewNormalizer(9_999_999_999.99, &log)
	engine := cost.NewEngine(norm, -200, 200, &log)
	res := resolver.New(store, resolver.NewCache(), &log)
	return New(norm, parser.FrenchNameHeuristic{}, engine, res, &log)
}

func artisanRow(rowNo int, fields map[string]string) model.RawRow {
	return model.RawRow{RowNo: rowNo, Fields: fields}
}

func TestMapArtisan_FullRow(t *testing.T) {
	t.Parallel()

	store := &memStore{}
	m := newTestMapper(store)

	row := artisanRow(2, map[string]string{
		"Nom complet": "ABBAS Virginie 34",
		"Société":     "AV Rénov",
		"Email ":      "Virginie.Abbas@Example.FR",
		"téléphone":   "06 12 34 56 78",
		"SIRET":       "123 456 789 00012",
		"Adresse":     "3 A RUE DE LA DIVISION LECLERC 67120 DORLISHEIM",
		"Agence":      "Strasbourg",
		"Métier":      "Plomberie / Chauffage",
		"Statut":      "OK",
	})

	a := m.MapArtisan(context.Background(), row)

	if a.PlainName != "ABBAS Virginie 34" {
		t.Fatalf("plain name must keep the raw value: %q", a.PlainName)
	}
	if a.Firstname != "Virginie" || a.Lastname != "ABBAS" {
		t.Fatalf("name split: %q %q", a.Firstname, a.Lastname)
	}
	if a.Email != "virginie.abbas@example.fr" {
		t.Fatalf("email (tolerant header): %q", a.Email)
	}
	if a.Phone != "0612345678" {
		t.Fatalf("phone (case-variant header): %q", a.Phone)
	}
	if a.SIRET != "12345678900012" {
		t.Fatalf("siret: %q", a.SIRET)
	}
	if a.Address.PostalCode != "67120" || a.Address.City != "DORLISHEIM" {
		t.Fatalf("address: %+v", a.Address)
	}
	// name suffix "34" wins over the postal code derivation
	if a.Department != "34" {
		t.Fatalf("department tier priority: %q", a.Department)
	}
	if a.AgencyID == "" || a.StatusID == "" {
		t.Fatalf("references not resolved: %+v", a)
	}
	if len(a.TradeIDs) != 2 {
		t.Fatalf("multi-valued trade cell: %v", a.TradeIDs)
	}
}

func TestMapArtisan_SharedReferencesResolveOnce(t *testing.T) {
	t.Parallel()

	store := &memStore{}
	m := newTestMapper(store)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		m.MapArtisan(ctx, artisanRow(i+2, map[string]string{
			"Nom complet": "DUPONT Jean",
			"Agence":      "Nantes",
		}))
	}

	if store.calls != 1 {
		t.Fatalf("one find-or-create per distinct reference name, got %d", store.calls)
	}
}

func TestMapIntervention_FullRow(t *testing.T) {
	t.Parallel()

	store := &memStore{}
	m := newTestMapper(store)

	candidates := []matcher.Candidate{
		{ID: "art-1", PlainName: "ABBAS Virginie"},
	}

	row := artisanRow(5, map[string]string{
		"Référence":         "ITV-0042",
		"Date":              "25/03/2024",
		"Adresse":           "12 rue des Lilas 75011 Paris",
		"SST":               "Virginie ABBAS 34",
		"Locataire":         "Mme MARTIN Sylvie 06 12 34 56 78",
		"Coût SST":          "100",
		"Coût matériel":     "50",
		"Coût intervention": "400",
		"Statut":            "Terminé",
		"Client":            "Agence IMMOPLUS contact@immoplus.fr",
	})

	out := m.MapIntervention(context.Background(), row, candidates)
	itv := out.Intervention

	if itv.Reference != "ITV-0042" || itv.Date != "2024-03-25" {
		t.Fatalf("base fields: %+v", itv)
	}
	if itv.SSTArtisanID != "art-1" {
		t.Fatalf("SST fuzzy attach failed: %q", itv.SSTArtisanID)
	}
	if itv.Tenant == nil || itv.Tenant.Name.Lastname != "MARTIN" {
		t.Fatalf("tenant block: %+v", itv.Tenant)
	}
	if len(itv.Tenant.Phones) != 1 || itv.Tenant.Phones[0] != "0612345678" {
		t.Fatalf("tenant phones: %+v", itv.Tenant.Phones)
	}
	if itv.Costs == nil || itv.Costs.Margin == nil || *itv.Costs.Margin != 250 {
		t.Fatalf("costs: %+v", itv.Costs)
	}
	if len(out.CostRows) != 4 {
		t.Fatalf("cost rows: %+v", out.CostRows)
	}
	if out.Client == nil || itv.ClientID != out.Client.ID {
		t.Fatalf("client linkage: %+v", out.Client)
	}
	if out.Client.Email != "contact@immoplus.fr" {
		t.Fatalf("client email: %q", out.Client.Email)
	}
	if itv.StatusID == "" {
		t.Fatalf("intervention status unresolved")
	}
}

func TestMapIntervention_UnresolvedReferenceDoesNotBlockRow(t *testing.T) {
	t.Parallel()

	store := &memStore{}
	m := newTestMapper(store)

	out := m.MapIntervention(context.Background(), artisanRow(3, map[string]string{
		"Référence": "ITV-0001",
		"Statut":    "?", // curated as ignorable
	}), nil)

	if out.Intervention == nil || out.Intervention.Reference != "ITV-0001" {
		t.Fatalf("row must still be produced: %+v", out.Intervention)
	}
	if out.Intervention.StatusID != "" {
		t.Fatalf("ignorable status must leave the FK empty")
	}
}
