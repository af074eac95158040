package model

import "time"

// SheetType classifies one sheet of the source workbook.
type SheetType string

const (
	SheetTypeArtisans      SheetType = "artisans"
	SheetTypeInterventions SheetType = "interventions"
	SheetTypeUnknown       SheetType = "unknown"
)

// RawRow is one data row of a source sheet: column name → raw cell value.
// Column names are human-entered and unstable; lookups must go through the
// tolerant header matching, never direct map access. Discarded after mapping.
type RawRow struct {
	RowNo  int               `json:"rowNo"`
	Fields map[string]string `json:"fields"`
}

// SheetRecognition is the result of classifying one sheet by its header row.
type SheetRecognition struct {
	SheetName  string    `json:"sheetName"`
	SheetType  SheetType `json:"sheetType"`
	Confidence float64   `json:"confidence"` // 0-1
}

// ParseResult is the per-sheet import outcome.
type ParseResult struct {
	SheetName    string        `json:"sheetName"`
	SheetType    SheetType     `json:"sheetType"`
	Status       string        `json:"status"` // imported/skipped/error
	ImportedRows int           `json:"importedRows"`
	ErrorRows    int           `json:"errorRows"`
	Errors       []string      `json:"errors,omitempty"`
	Duration     time.Duration `json:"duration"`
}

// ImportReport is the whole-file import outcome.
type ImportReport struct {
	Filename       string        `json:"filename"`
	TotalSheets    int           `json:"totalSheets"`
	ImportedSheets int           `json:"importedSheets"`
	SkippedSheets  int           `json:"skippedSheets"`
	TotalRows      int           `json:"totalRows"`
	ImportedRows   int           `json:"importedRows"`
	ErrorRows      int           `json:"errorRows"`
	Duration       time.Duration `json:"duration"`
	Sheets         []ParseResult `json:"sheets"`
}

// ProgressEvent is one import progress notification.
type ProgressEvent struct {
	Type      string      `json:"type"` // start/info/sheet_start/sheet_done/done/error
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}
