package importer

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"atelier/internal/model"
)

// sheetHeaders returns the first row of a sheet, or nil.
func sheetHeaders(file *excelize.File, sheetName string) []string {
	rows, err := file.GetRows(sheetName)
	if err != nil || len(rows) == 0 {
		return nil
	}
	return rows[0]
}

// readRows converts the data rows of a sheet to RawRows keyed by the raw
// header text. Fully empty rows are dropped; RowNo is the 1-based sheet row.
func readRows(file *excelize.File, sheetName string) ([]model.RawRow, error) {
	rows, err := file.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheetName, err)
	}
	if len(rows) < 2 {
		return nil, nil
	}

	headers := rows[0]
	out := make([]model.RawRow, 0, len(rows)-1)
	for i, cells := range rows[1:] {
		fields := make(map[string]string, len(headers))
		empty := true
		for col, header := range headers {
			if strings.TrimSpace(header) == "" {
				continue
			}
			value := ""
			if col < len(cells) {
				value = cells[col]
			}
			if strings.TrimSpace(value) != "" {
				empty = false
			}
			fields[header] = value
		}
		if empty {
			continue
		}
		out = append(out, model.RawRow{RowNo: i + 2, Fields: fields})
	}
	return out, nil
}
