package mapper

import (
	"context"
	"strings"

	"atelier/internal/model"
	"atelier/internal/parser"
)

// MapArtisan maps one artisan sheet row to a canonical artisan record.
// Unparseable fields degrade to empty values; reference resolution failures
// leave the foreign key empty. The row is never rejected for data quality.
func (m *RowMapper) MapArtisan(ctx context.Context, row model.RawRow) *model.CanonicalArtisan {
	fields := row.Fields

	plainName := parser.Field(fields, "Nom complet", "Artisan", "Nom")
	firstname, lastname := m.personName(parser.StripTrailingDepartment(plainName))
	if explicit := parser.Field(fields, "Prénom"); explicit != "" {
		firstname = explicit
		if last := parser.Field(fields, "Nom de famille", "Nom"); last != "" && !strings.EqualFold(last, plainName) {
			lastname = last
		}
		if m.names != nil && m.names.ShouldInvert(firstname, lastname) {
			firstname, lastname = lastname, firstname
		}
	}

	address := parser.ExtractAddress(parser.Field(fields, "Adresse", "Adresse postale"))

	a := &model.CanonicalArtisan{
		ID:          newID(),
		RowNo:       row.RowNo,
		Firstname:   firstname,
		Lastname:    lastname,
		CompanyName: parser.Field(fields, "Société", "Raison sociale", "Entreprise"),
		PlainName:   parser.CleanString(plainName),
		Email:       parser.CleanEmail(parser.Field(fields, "Email", "Mail")),
		Phone:       parser.CleanPhone(parser.Field(fields, "Téléphone", "Tél", "Portable")),
		PhoneAlt:    parser.CleanPhone(parser.Field(fields, "Téléphone 2", "Fixe")),
		SIRET:       parser.CleanSIRET(parser.Field(fields, "SIRET", "N° SIRET")),
		Address:     address,
		Department: parser.ExtractDepartment(
			parser.Field(fields, "Département", "Dept", "Dép"),
			plainName,
			address,
		),
	}

	a.AgencyID = m.resolve(ctx, model.KindAgency, parser.Field(fields, "Agence"))
	a.ManagerID = m.resolve(ctx, model.KindManager, parser.Field(fields, "Chargé d'affaires", "Gestionnaire", "Responsable"))
	a.StatusID = m.resolve(ctx, model.KindArtisanStatus, parser.Field(fields, "Statut", "Etat"))
	a.ZoneID = m.resolve(ctx, model.KindZone, parser.Field(fields, "Zone", "Zone d'intervention", "Secteur"))

	// the trade column can list several trades split by / or ,
	for _, trade := range splitList(parser.Field(fields, "Métier", "Métiers", "Corps de métier", "Activité")) {
		if id := m.resolve(ctx, model.KindTrade, trade); id != "" {
			a.TradeIDs = append(a.TradeIDs, id)
		}
	}

	if m.log != nil {
		m.log.Debug().Int("row", row.RowNo).Str("plain_name", a.PlainName).Msg("artisan row mapped")
	}
	return a
}

// splitList splits a multi-valued cell on the separators seen in the dataset.
func splitList(v string) []string {
	if v == "" {
		return nil
	}
	var out []string
	for _, part := range strings.FieldsFunc(v, func(r rune) bool {
		return r == '/' || r == ',' || r == ';' || r == '+'
	}) {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
