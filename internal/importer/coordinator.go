package importer

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"atelier/internal/config"
	"atelier/internal/cost"
	"atelier/internal/mapper"
	"atelier/internal/matcher"
	"atelier/internal/model"
	"atelier/internal/parser"
	"atelier/internal/resolver"
	"atelier/internal/store"
)

// Coordinator drives one import run: open the workbook, recognize the sheets,
// map the rows and bulk-insert the canonical records. A fresh run-scoped
// resolver cache is built per Import call.
type Coordinator struct {
	store *store.Store
	cfg   config.EngineConfig
	log   *zerolog.Logger
}

// NewCoordinator creates an import coordinator.
func NewCoordinator(s *store.Store, cfg config.EngineConfig, log *zerolog.Logger) *Coordinator {
	return &Coordinator{store: s, cfg: cfg, log: log}
}

// ImportOptions are the per-run options.
type ImportOptions struct {
	FilePath string
}

// Import runs the whole import asynchronously, returning its progress channel.
func (c *Coordinator) Import(ctx context.Context, opts ImportOptions) <-chan model.ProgressEvent {
	progress := make(chan model.ProgressEvent, 100)
	go func() {
		defer close(progress)
		c.doImport(ctx, opts, progress)
	}()
	return progress
}

func (c *Coordinator) doImport(ctx context.Context, opts ImportOptions, progress chan model.ProgressEvent) {
	startTime := time.Now()
	filename := filepath.Base(opts.FilePath)

	send(progress, "start", "import started", map[string]string{"filename": filename})

	logID, err := c.store.CreateImportLog(filename, opts.FilePath)
	if err != nil {
		send(progress, "error", fmt.Sprintf("failed to record import: %v", err), nil)
		return
	}

	file, err := excelize.OpenFile(opts.FilePath)
	if err != nil {
		send(progress, "error", fmt.Sprintf("failed to open file: %v", err), nil)
		_ = c.store.UpdateImportLog(logID, 0, 0, 0, 0, 0, 0, "error", err.Error())
		return
	}
	defer file.Close()

	report := &model.ImportReport{Filename: filename}

	// one mapper per run: the resolver cache is scoped to this import
	rowMapper := c.newRunMapper()

	sheets := file.GetSheetList()
	report.TotalSheets = len(sheets)
	send(progress, "info", fmt.Sprintf("%d sheets found", len(sheets)), nil)

	// artisan sheets first so interventions can match SST cells against them
	recognized := make(map[string]model.SheetRecognition, len(sheets))
	for _, sheetName := range sheets {
		headers := sheetHeaders(file, sheetName)
		recognized[sheetName] = RecognizeSheet(sheetName, headers)
	}

	for _, sheetName := range sheets {
		if recognized[sheetName].SheetType == model.SheetTypeArtisans {
			c.processSheet(ctx, file, sheetName, recognized[sheetName], rowMapper, report, progress)
		}
	}
	for _, sheetName := range sheets {
		switch recognized[sheetName].SheetType {
		case model.SheetTypeInterventions:
			c.processSheet(ctx, file, sheetName, recognized[sheetName], rowMapper, report, progress)
		case model.SheetTypeUnknown:
			report.SkippedSheets++
			report.Sheets = append(report.Sheets, model.ParseResult{
				SheetName: sheetName,
				SheetType: model.SheetTypeUnknown,
				Status:    "skipped",
			})
			send(progress, "info", fmt.Sprintf("sheet %q skipped (unrecognized)", sheetName), nil)
		}
	}

	report.Duration = time.Since(startTime)

	status := "done"
	if report.ImportedSheets == 0 && report.TotalSheets > 0 {
		status = "error"
	}
	_ = c.store.UpdateImportLog(logID,
		report.TotalSheets, report.ImportedSheets, report.SkippedSheets,
		report.TotalRows, report.ImportedRows, report.ErrorRows, status, "")

	send(progress, "done", "import finished", report)
}

// newRunMapper wires the engine components for one run.
func (c *Coordinator) newRunMapper() *mapper.RowMapper {
	norm := parser.NewNormalizer(c.cfg.MaxAmount, c.log)
	engine := cost.NewEngine(norm, c.cfg.MarginPctMin, c.cfg.MarginPctMax, c.log)
	res := resolver.New(c.store, resolver.NewCache(), c.log)
	return mapper.New(norm, parser.FrenchNameHeuristic{}, engine, res, c.log)
}

// processSheet maps and stores every data row of one recognized sheet.
func (c *Coordinator) processSheet(ctx context.Context, file *excelize.File, sheetName string, rec model.SheetRecognition, rowMapper *mapper.RowMapper, report *model.ImportReport, progress chan model.ProgressEvent) {
	start := time.Now()
	send(progress, "sheet_start", fmt.Sprintf("sheet %q (%s)", sheetName, rec.SheetType), nil)

	result := model.ParseResult{SheetName: sheetName, SheetType: rec.SheetType, Status: "imported"}

	rawRows, err := readRows(file, sheetName)
	if err != nil {
		result.Status = "error"
		result.Errors = append(result.Errors, err.Error())
		report.Sheets = append(report.Sheets, result)
		send(progress, "error", fmt.Sprintf("sheet %q: %v", sheetName, err), nil)
		return
	}
	report.TotalRows += len(rawRows)

	switch rec.SheetType {
	case model.SheetTypeArtisans:
		c.importArtisans(ctx, rawRows, rowMapper, report.Filename, sheetName, &result)
	case model.SheetTypeInterventions:
		c.importInterventions(ctx, rawRows, rowMapper, report.Filename, sheetName, &result)
	}

	result.Duration = time.Since(start)
	report.Sheets = append(report.Sheets, result)
	report.ImportedRows += result.ImportedRows
	report.ErrorRows += result.ErrorRows
	if result.Status == "imported" {
		report.ImportedSheets++
	}

	send(progress, "sheet_done", fmt.Sprintf("sheet %q: %d rows", sheetName, result.ImportedRows), result)
}

func (c *Coordinator) importArtisans(ctx context.Context, rawRows []model.RawRow, rowMapper *mapper.RowMapper, sourceFile, sheetName string, result *model.ParseResult) {
	records := make([]*model.CanonicalArtisan, 0, len(rawRows))
	for _, row := range rawRows {
		a := rowMapper.MapArtisan(ctx, row)
		a.SourceSheet = sheetName
		a.SourceFile = sourceFile
		records = append(records, a)
	}

	if err := c.store.BatchInsertArtisans(ctx, records); err != nil {
		result.Status = "error"
		result.ErrorRows = len(records)
		result.Errors = append(result.Errors, err.Error())
		return
	}
	result.ImportedRows = len(records)
}

func (c *Coordinator) importInterventions(ctx context.Context, rawRows []model.RawRow, rowMapper *mapper.RowMapper, sourceFile, sheetName string, result *model.ParseResult) {
	candidates, err := c.artisanCandidates(ctx)
	if err != nil {
		// SST attachment degrades, the rows still import
		c.log.Warn().Err(err).Msg("failed to load SST candidates")
	}

	mapped := make([]model.MappedRow, 0, len(rawRows))
	for _, row := range rawRows {
		out := rowMapper.MapIntervention(ctx, row, candidates)
		if out.Intervention != nil {
			out.Intervention.SourceSheet = sheetName
			out.Intervention.SourceFile = sourceFile
		}
		mapped = append(mapped, out)
	}

	if err := c.store.BatchInsertInterventions(ctx, mapped); err != nil {
		result.Status = "error"
		result.ErrorRows = len(mapped)
		result.Errors = append(result.Errors, err.Error())
		return
	}
	result.ImportedRows = len(mapped)
}

func (c *Coordinator) artisanCandidates(ctx context.Context) ([]matcher.Candidate, error) {
	artisans, err := c.store.ListArtisanCandidates(ctx)
	if err != nil {
		return nil, err
	}
	candidates := make([]matcher.Candidate, 0, len(artisans))
	for _, a := range artisans {
		candidates = append(candidates, matcher.Candidate{
			ID:          a.ID,
			PlainName:   a.PlainName,
			CompanyName: a.CompanyName,
			Firstname:   a.Firstname,
			Lastname:    a.Lastname,
		})
	}
	return candidates, nil
}

func send(progress chan model.ProgressEvent, eventType, message string, data interface{}) {
	select {
	case progress <- model.ProgressEvent{Type: eventType, Message: message, Data: data, Timestamp: time.Now()}:
	default:
		// a slow consumer must not stall the import
	}
}
