package analysis

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"gridsense/domain/core"
	"gridsense/domain/grid"
	"gridsense/domain/structure"
	"gridsense/internal"
	"gridsense/ports"
)

// Complex-structure thresholds for merge diagnostics
const (
	complexMergeCount      = 10
	complexHeaderBandCount = 5
	dataRowFillRatio       = 0.5
	mergeRangeListingCap   = 15
)

// Engine runs the full structural inference pipeline: resolve merges,
// cluster the data region, detect the header, classify and summarize
// each field, and assemble the StructureReport. One engine is safe for
// concurrent use; each analysis owns its grid and derived structures.
type Engine struct {
	heur       structure.Heuristics
	log        *internal.Logger
	resolver   *MergeResolver
	clusterer  *RegionClusterer
	detector   *HeaderDetector
	classifier *FieldClassifier
	summarizer *FieldSummarizer
}

// NewEngine creates an engine with the given heuristics tables
func NewEngine(heur structure.Heuristics, logger *internal.Logger) *Engine {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Engine{
		heur:       heur,
		log:        logger.WithComponent("engine"),
		resolver:   NewMergeResolver(),
		clusterer:  NewRegionClusterer(),
		detector:   NewHeaderDetector(heur, logger),
		classifier: NewFieldClassifier(heur, logger),
		summarizer: NewFieldSummarizer(),
	}
}

// AnalyzeSheet produces the StructureReport for one worksheet
func (e *Engine) AnalyzeSheet(_ context.Context, source ports.SheetSource, cfg structure.AnalysisConfig) (*structure.StructureReport, error) {
	if source == nil {
		return nil, core.ErrNilSource
	}
	cfg = cfg.Normalize()

	report := &structure.StructureReport{
		AnalysisID:  core.NewAnalysisID(),
		SheetName:   source.SheetName(),
		GeneratedAt: core.Now(),
		Status:      structure.StatusOK,
		TableKind:   structure.TableStandard,
	}

	model, warnings := e.resolver.Resolve(source, cfg)
	report.MaxRow = model.MaxRow
	report.MaxCol = model.MaxCol
	report.Warnings = append(report.Warnings, warnings...)

	region, ok := e.clusterer.Cluster(model)
	if !ok {
		e.log.Info("sheet %q is empty", report.SheetName)
		report.Status = structure.StatusEmpty
		report.Warnings = append(report.Warnings, "empty sheet: no non-empty cells found")
		return report, nil
	}
	report.Region = &region

	merges := model.Merges()
	if merges.Count() > 0 {
		report.TableKind = structure.TableComplex
	}

	header, candidates, headerWarnings := e.detector.Detect(model, cfg)
	report.Header = header
	report.Candidates = candidates
	report.Warnings = append(report.Warnings, headerWarnings...)

	report.DataStartRow = e.resolveDataStart(model, region, header.Row)
	report.DataEndRow = region.MaxRow

	names := headerNames(model, region, header.Row, cfg)
	fields, classifyWarnings := e.classifier.Classify(model, region, report.DataStartRow, names, cfg)
	report.Warnings = append(report.Warnings, classifyWarnings...)

	for i := range fields {
		values := collectColumn(model, fields[i].ColumnIndex, report.DataStartRow, region.MaxRow, cfg.EnumScanRows)
		e.summarizer.Summarize(&fields[i], values.values, cfg)
	}
	report.Fields = fields

	report.Merges = mergeDiagnostics(merges, header.Row)
	if report.Merges.ComplexStructure {
		report.Warnings = append(report.Warnings, fmt.Sprintf(
			"complex structure: %d merged regions (%d in header band)",
			report.Merges.MergeCount, report.Merges.HeaderBandMerges))
	}

	e.log.Info("sheet %q: header row %d (confidence %.2f), %d fields, %s region",
		report.SheetName, header.Row, header.Confidence, len(fields), region.Classification)
	return report, nil
}

// AnalyzeWorkbook analyzes every worksheet. Sheets are independent, so
// they run in parallel; result order follows workbook order.
func (e *Engine) AnalyzeWorkbook(ctx context.Context, source ports.WorkbookSource, cfg structure.AnalysisConfig) ([]*structure.StructureReport, error) {
	if source == nil {
		return nil, core.ErrNilSource
	}

	names := source.SheetNames()
	sheets := make([]ports.SheetSource, len(names))
	for i, name := range names {
		sheet, err := source.Sheet(name)
		if err != nil {
			return nil, fmt.Errorf("loading sheet %q: %w", name, err)
		}
		sheets[i] = sheet
	}

	reports := make([]*structure.StructureReport, len(sheets))
	g, ctx := errgroup.WithContext(ctx)
	for i, sheet := range sheets {
		i, sheet := i, sheet
		g.Go(func() error {
			report, err := e.AnalyzeSheet(ctx, sheet, cfg)
			if err != nil {
				return fmt.Errorf("analyzing sheet %q: %w", sheet.SheetName(), err)
			}
			reports[i] = report
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

// resolveDataStart places the first data row. The row after the header
// is the default; irregular layouts (decoration or unit rows between
// header and data) advance to the first row filling at least half the
// region's columns.
func (e *Engine) resolveDataStart(g *grid.Model, region structure.DataRegion, headerRow int) int {
	start := headerRow + 1
	if start > region.MaxRow {
		return start
	}
	if rowFillRatio(g, region, start) >= dataRowFillRatio {
		return start
	}
	for row := start + 1; row <= region.MaxRow; row++ {
		if rowFillRatio(g, region, row) >= dataRowFillRatio {
			return row
		}
	}
	return start
}

func rowFillRatio(g *grid.Model, region structure.DataRegion, row int) float64 {
	width := region.MaxCol - region.MinCol + 1
	filled := 0
	for col := region.MinCol; col <= region.MaxCol; col++ {
		if !g.ValueAt(row, col).IsEmpty() {
			filled++
		}
	}
	return float64(filled) / float64(width)
}

func mergeDiagnostics(merges *grid.MergeIndex, headerRow int) structure.MergeDiagnostics {
	d := structure.MergeDiagnostics{
		MergeCount:       merges.Count(),
		HeaderBandMerges: merges.CountInBand(headerRow),
		Ranges:           merges.Refs(mergeRangeListingCap),
	}
	d.ComplexStructure = d.MergeCount > complexMergeCount ||
		d.HeaderBandMerges > complexHeaderBandCount
	return d
}
