package mapper

import (
	"context"

	"atelier/internal/cost"
	"atelier/internal/matcher"
	"atelier/internal/model"
	"atelier/internal/parser"
)

// MapIntervention maps one intervention sheet row to a canonical intervention
// plus its derived client, cost rows and SST link. sstCandidates are the
// already-resolved artisans the SST cell is matched against.
func (m *RowMapper) MapIntervention(ctx context.Context, row model.RawRow, sstCandidates []matcher.Candidate) model.MappedRow {
	fields := row.Fields

	itv := &model.CanonicalIntervention{
		ID:          newID(),
		RowNo:       row.RowNo,
		Reference:   parser.Field(fields, "Référence", "Réf", "N° intervention"),
		Address:     parser.ExtractAddress(parser.Field(fields, "Adresse", "Adresse intervention", "Lieu")),
		Description: parser.Field(fields, "Description", "Nature des travaux", "Travaux"),
		Date:        parser.ParseDate(parser.Field(fields, "Date", "Date intervention", "Date RDV")),
	}

	itv.AgencyID = m.resolve(ctx, model.KindAgency, parser.Field(fields, "Agence"))
	itv.ManagerID = m.resolve(ctx, model.KindManager, parser.Field(fields, "Chargé d'affaires", "Gestionnaire"))
	itv.StatusID = m.resolve(ctx, model.KindInterventionStatus, parser.Field(fields, "Statut", "Etat"))
	itv.TradeID = m.resolve(ctx, model.KindTrade, parser.Field(fields, "Métier", "Corps de métier"))

	// SST attachment is a link, never a create
	if sst := parser.Field(fields, "SST", "Sous-traitant", "Artisan"); sst != "" {
		match := m.matcher.Match(sst, sstCandidates)
		itv.SSTArtisanID = match.EntityID
		if m.log != nil && match.EntityID == "" {
			m.log.Debug().Int("row", row.RowNo).Str("sst", sst).Msg("no artisan matched for SST cell")
		}
	}

	itv.Tenant = contactInfo(parser.Field(fields, "Locataire", "Contact locataire"))
	itv.Owner = contactInfo(parser.Field(fields, "Propriétaire", "Contact propriétaire"))

	breakdown := m.costs.ComputeCosts(
		parser.Field(fields, "Coût SST", "Coût sous-traitant", "Prix SST"),
		parser.Field(fields, "Coût matériel", "Matériel"),
		parser.Field(fields, "Coût intervention", "Montant intervention", "Prix client"),
	)
	itv.Costs = &breakdown

	out := model.MappedRow{
		Intervention: itv,
		CostRows:     cost.CostRows(itv.ID, breakdown),
	}

	if client := m.mapClient(row); client != nil {
		itv.ClientID = client.ID
		out.Client = client
	}

	if m.log != nil {
		m.log.Debug().Int("row", row.RowNo).Str("reference", itv.Reference).Msg("intervention row mapped")
	}
	return out
}

// mapClient derives the client record from the intervention row, or nil when
// the row carries no client data.
func (m *RowMapper) mapClient(row model.RawRow) *model.CanonicalClient {
	raw := parser.Field(row.Fields, "Client", "Nom client", "Donneur d'ordre")
	if raw == "" {
		return nil
	}
	return &model.CanonicalClient{
		ID:        newID(),
		Name:      parser.ParsePersonName(raw),
		Phones:    parser.ExtractPhones(raw),
		Email:     parser.ExtractEmail(raw),
		SourceRow: row.RowNo,
	}
}
