package exporter

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"atelier/internal/store"
)

// Exporter writes the normalized records back to a workbook, one sheet per
// record family, reference names joined in place of ids.
type Exporter struct {
	store *store.Store
}

// NewExporter creates an exporter.
func NewExporter(s *store.Store) *Exporter {
	return &Exporter{store: s}
}

var artisanHeaders = []interface{}{
	"Nom complet", "Prénom", "Nom", "Société", "Email", "Téléphone", "SIRET",
	"Adresse", "Code postal", "Ville", "Département",
	"Agence", "Chargé d'affaires", "Statut", "Zone", "Métiers",
}

var interventionHeaders = []interface{}{
	"Référence", "Adresse", "Code postal", "Ville", "Description", "Date",
	"Statut", "Métier", "SST", "Client",
	"Coût SST", "Coût matériel", "Coût intervention", "Marge",
}

// Export builds the workbook. The caller owns the returned file.
func (e *Exporter) Export(ctx context.Context) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := e.fillArtisans(ctx, f); err != nil {
		_ = f.Close()
		return nil, err
	}
	if err := e.fillInterventions(ctx, f); err != nil {
		_ = f.Close()
		return nil, err
	}

	f.SetActiveSheet(0)
	return f, nil
}

func (e *Exporter) fillArtisans(ctx context.Context, f *excelize.File) error {
	if err := f.SetSheetName("Sheet1", "Artisans"); err != nil {
		return fmt.Errorf("failed to create artisan sheet: %w", err)
	}

	records, err := e.store.ExportArtisans(ctx)
	if err != nil {
		return err
	}

	if err := writeRow(f, "Artisans", 1, artisanHeaders); err != nil {
		return err
	}
	for i, r := range records {
		row := []interface{}{
			r.PlainName, r.Firstname, r.Lastname, r.CompanyName,
			r.Email, r.Phone, r.SIRET,
			r.Street, r.PostalCode, r.City, r.Department,
			r.Agency, r.Manager, r.Status, r.Zone, r.Trades,
		}
		if err := writeRow(f, "Artisans", i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func (e *Exporter) fillInterventions(ctx context.Context, f *excelize.File) error {
	if _, err := f.NewSheet("Interventions"); err != nil {
		return fmt.Errorf("failed to create intervention sheet: %w", err)
	}

	records, err := e.store.ExportInterventions(ctx)
	if err != nil {
		return err
	}

	if err := writeRow(f, "Interventions", 1, interventionHeaders); err != nil {
		return err
	}
	for i, r := range records {
		row := []interface{}{
			r.Reference, r.Street, r.PostalCode, r.City, r.Description, r.Date,
			r.Status, r.Trade, r.SSTName, r.ClientName,
			amountCell(r.CostSST), amountCell(r.CostMaterial),
			amountCell(r.CostIntervention), amountCell(r.Margin),
		}
		if err := writeRow(f, "Interventions", i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("failed to address row %d: %w", row, err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d: %w", row, err)
	}
	return nil
}

// amountCell keeps absent amounts as empty cells, not zeros.
func amountCell(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
