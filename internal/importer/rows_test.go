package importer

import (
	"testing"

	"github.com/xuri/excelize/v2"
)

func buildSheet(t *testing.T, sheetName string, rows [][]interface{}) *excelize.File {
	t.Helper()
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		t.Fatalf("SetSheetName: %v", err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("CoordinatesToCellName: %v", err)
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			t.Fatalf("SetSheetRow: %v", err)
		}
	}
	return f
}

func TestReadRows(t *testing.T) {
	t.Parallel()

	f := buildSheet(t, "Artisans", [][]interface{}{
		{"Nom complet", "", "Métier"},
		{"ABBAS Virginie", "ignored", "Plomberie"},
		{"", "", ""},
		{"DUPONT Jean", nil, "Serrurerie"},
	})
	defer f.Close()

	rows, err := readRows(f, "Artisans")
	if err != nil {
		t.Fatalf("readRows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2 (empty row dropped)", len(rows))
	}

	if rows[0].RowNo != 2 || rows[1].RowNo != 4 {
		t.Fatalf("row numbers = %d, %d, want 2, 4", rows[0].RowNo, rows[1].RowNo)
	}
	if got := rows[0].Fields["Nom complet"]; got != "ABBAS Virginie" {
		t.Fatalf("Nom complet = %q", got)
	}
	if _, ok := rows[0].Fields[""]; ok {
		t.Fatal("blank header column must not produce a field")
	}
	if got := rows[1].Fields["Métier"]; got != "Serrurerie" {
		t.Fatalf("Métier = %q", got)
	}
}

func TestReadRowsHeaderOnly(t *testing.T) {
	t.Parallel()

	f := buildSheet(t, "Vide", [][]interface{}{{"Nom complet", "Métier"}})
	defer f.Close()

	rows, err := readRows(f, "Vide")
	if err != nil {
		t.Fatalf("readRows: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("got %d rows, want none", len(rows))
	}
}

func TestSheetHeaders(t *testing.T) {
	t.Parallel()

	f := buildSheet(t, "Artisans", [][]interface{}{{"Nom complet", "Métier"}})
	defer f.Close()

	headers := sheetHeaders(f, "Artisans")
	if len(headers) != 2 || headers[0] != "Nom complet" {
		t.Fatalf("headers = %v", headers)
	}
	if got := sheetHeaders(f, "Absente"); got != nil {
		t.Fatalf("missing sheet headers = %v, want nil", got)
	}
}
