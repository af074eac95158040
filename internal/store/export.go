package store

import (
	"context"
	"database/sql"
	"fmt"
)

// ArtisanExportRow is one denormalized artisan line with reference names
// joined in, ready for workbook output.
type ArtisanExportRow struct {
	PlainName   string
	Firstname   string
	Lastname    string
	CompanyName string
	Email       string
	Phone       string
	SIRET       string
	Street      string
	PostalCode  string
	City        string
	Department  string
	Agency      string
	Manager     string
	Status      string
	Zone        string
	Trades      string
}

// InterventionExportRow is one denormalized intervention line with its cost
// breakdown pivoted into columns.
type InterventionExportRow struct {
	Reference   string
	Street      string
	PostalCode  string
	City        string
	Description string
	Date        string
	Status      string
	Trade       string
	SSTName     string
	ClientName  string

	CostSST          *float64
	CostMaterial     *float64
	CostIntervention *float64
	Margin           *float64
}

// ExportArtisans loads every artisan with its reference names resolved.
func (s *Store) ExportArtisans(ctx context.Context) ([]ArtisanExportRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT a.plain_name, a.firstname, a.lastname, a.company_name,
		       a.email, a.phone, a.siret,
		       a.street, a.postal_code, a.city, a.department,
		       COALESCE(ag.name, ''), COALESCE(mg.name, ''),
		       COALESCE(st.name, ''), COALESCE(zn.name, ''),
		       COALESCE(GROUP_CONCAT(tr.name, ', '), '')
		FROM artisans a
		LEFT JOIN reference_entities ag ON ag.id = a.agency_id
		LEFT JOIN reference_entities mg ON mg.id = a.manager_id
		LEFT JOIN reference_entities st ON st.id = a.status_id
		LEFT JOIN reference_entities zn ON zn.id = a.zone_id
		LEFT JOIN artisan_trades lt ON lt.artisan_id = a.id
		LEFT JOIN reference_entities tr ON tr.id = lt.trade_id
		GROUP BY a.id
		ORDER BY a.row_no
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query artisan export: %w", err)
	}
	defer rows.Close()

	var out []ArtisanExportRow
	for rows.Next() {
		var r ArtisanExportRow
		if err := rows.Scan(
			&r.PlainName, &r.Firstname, &r.Lastname, &r.CompanyName,
			&r.Email, &r.Phone, &r.SIRET,
			&r.Street, &r.PostalCode, &r.City, &r.Department,
			&r.Agency, &r.Manager, &r.Status, &r.Zone, &r.Trades,
		); err != nil {
			return nil, fmt.Errorf("failed to scan artisan export row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// ExportInterventions loads every intervention with costs pivoted.
func (s *Store) ExportInterventions(ctx context.Context) ([]InterventionExportRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT i.reference, i.street, i.postal_code, i.city,
		       i.description, COALESCE(i.date, ''),
		       COALESCE(st.name, ''), COALESCE(tr.name, ''),
		       COALESCE(ar.plain_name, ''),
		       COALESCE(TRIM(COALESCE(cl.lastname, '') || ' ' || COALESCE(cl.firstname, '')), ''),
		       SUM(CASE WHEN c.cost_type = 'sst' THEN c.amount END),
		       SUM(CASE WHEN c.cost_type = 'materiel' THEN c.amount END),
		       SUM(CASE WHEN c.cost_type = 'intervention' THEN c.amount END),
		       SUM(CASE WHEN c.cost_type = 'marge' THEN c.amount END)
		FROM interventions i
		LEFT JOIN reference_entities st ON st.id = i.status_id
		LEFT JOIN reference_entities tr ON tr.id = i.trade_id
		LEFT JOIN artisans ar ON ar.id = i.sst_artisan_id
		LEFT JOIN clients cl ON cl.id = i.client_id
		LEFT JOIN cost_rows c ON c.intervention_id = i.id
		GROUP BY i.id
		ORDER BY i.row_no
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query intervention export: %w", err)
	}
	defer rows.Close()

	var out []InterventionExportRow
	for rows.Next() {
		var r InterventionExportRow
		var sst, material, intervention, margin sql.NullFloat64
		if err := rows.Scan(
			&r.Reference, &r.Street, &r.PostalCode, &r.City,
			&r.Description, &r.Date,
			&r.Status, &r.Trade, &r.SSTName, &r.ClientName,
			&sst, &material, &intervention, &margin,
		); err != nil {
			return nil, fmt.Errorf("failed to scan intervention export row: %w", err)
		}
		r.CostSST = nullableFloat(sst)
		r.CostMaterial = nullableFloat(material)
		r.CostIntervention = nullableFloat(intervention)
		r.Margin = nullableFloat(margin)
		out = append(out, r)
	}
	return out, rows.Err()
}

func nullableFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
