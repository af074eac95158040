package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"atelier/internal/model"
)

// BatchInsertArtisans inserts canonical artisan records plus their trade links
// in one transaction.
func (s *Store) BatchInsertArtisans(ctx context.Context, records []*model.CanonicalArtisan) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO artisans (
			id, row_no, firstname, lastname, company_name, plain_name,
			email, phone, phone_alt, siret,
			street, postal_code, city, department,
			agency_id, manager_id, status_id, zone_id,
			source_sheet, source_file
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	tradeStmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO artisan_trades (artisan_id, trade_id) VALUES (?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare trade statement: %w", err)
	}
	defer tradeStmt.Close()

	for _, r := range records {
		_, err := stmt.ExecContext(ctx,
			r.ID, r.RowNo, r.Firstname, r.Lastname, r.CompanyName, r.PlainName,
			r.Email, r.Phone, r.PhoneAlt, r.SIRET,
			r.Address.Street, r.Address.PostalCode, r.Address.City, r.Department,
			nullable(r.AgencyID), nullable(r.ManagerID), nullable(r.StatusID), nullable(r.ZoneID),
			r.SourceSheet, r.SourceFile,
		)
		if err != nil {
			return fmt.Errorf("failed to insert artisan row %d: %w", r.RowNo, err)
		}
		for _, tradeID := range r.TradeIDs {
			if _, err := tradeStmt.ExecContext(ctx, r.ID, tradeID); err != nil {
				return fmt.Errorf("failed to insert artisan trade: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// BatchInsertInterventions inserts interventions, their clients and cost rows
// in one transaction.
func (s *Store) BatchInsertInterventions(ctx context.Context, rows []model.MappedRow) error {
	if len(rows) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	itvStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO interventions (
			id, row_no, reference, street, postal_code, city, description, date,
			agency_id, manager_id, status_id, trade_id, sst_artisan_id, client_id,
			tenant_json, owner_json, source_sheet, source_file
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare intervention statement: %w", err)
	}
	defer itvStmt.Close()

	clientStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO clients (id, firstname, lastname, phones, email, source_row)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare client statement: %w", err)
	}
	defer clientStmt.Close()

	costStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO cost_rows (intervention_id, cost_type, amount, url)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare cost statement: %w", err)
	}
	defer costStmt.Close()

	for _, row := range rows {
		if row.Client != nil {
			c := row.Client
			if _, err := clientStmt.ExecContext(ctx,
				c.ID, c.Name.Firstname, c.Name.Lastname,
				strings.Join(c.Phones, ","), c.Email, c.SourceRow,
			); err != nil {
				return fmt.Errorf("failed to insert client: %w", err)
			}
		}

		itv := row.Intervention
		if itv == nil {
			continue
		}
		tenantJSON, err := marshalContact(itv.Tenant)
		if err != nil {
			return err
		}
		ownerJSON, err := marshalContact(itv.Owner)
		if err != nil {
			return err
		}
		if _, err := itvStmt.ExecContext(ctx,
			itv.ID, itv.RowNo, itv.Reference,
			itv.Address.Street, itv.Address.PostalCode, itv.Address.City,
			itv.Description, itv.Date,
			nullable(itv.AgencyID), nullable(itv.ManagerID), nullable(itv.StatusID),
			nullable(itv.TradeID), nullable(itv.SSTArtisanID), nullable(itv.ClientID),
			tenantJSON, ownerJSON, itv.SourceSheet, itv.SourceFile,
		); err != nil {
			return fmt.Errorf("failed to insert intervention row %d: %w", itv.RowNo, err)
		}

		for _, costRow := range row.CostRows {
			if _, err := costStmt.ExecContext(ctx,
				costRow.InterventionID, string(costRow.CostType), costRow.Amount, costRow.URL,
			); err != nil {
				return fmt.Errorf("failed to insert cost row: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ListArtisanCandidates loads the matching keys of every stored artisan.
func (s *Store) ListArtisanCandidates(ctx context.Context) ([]model.CanonicalArtisan, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, COALESCE(plain_name, ''), COALESCE(company_name, ''),
		       COALESCE(firstname, ''), COALESCE(lastname, '')
		FROM artisans
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list artisans: %w", err)
	}
	defer rows.Close()

	var out []model.CanonicalArtisan
	for rows.Next() {
		var a model.CanonicalArtisan
		if err := rows.Scan(&a.ID, &a.PlainName, &a.CompanyName, &a.Firstname, &a.Lastname); err != nil {
			return nil, fmt.Errorf("failed to scan artisan: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// CountRows counts the rows of one table, for the status endpoint.
func (s *Store) CountRows(ctx context.Context, table string) (int, error) {
	switch table {
	case "artisans", "interventions", "clients", "cost_rows", "folder_matches", "reference_entities":
	default:
		return 0, fmt.Errorf("unknown table %q", table)
	}
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", table, err)
	}
	return n, nil
}

func marshalContact(c *model.ContactInfo) (any, error) {
	if c == nil {
		return nil, nil
	}
	data, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal contact info: %w", err)
	}
	return string(data), nil
}

// nullable maps empty foreign keys to NULL.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
