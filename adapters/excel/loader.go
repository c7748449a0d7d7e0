package excel

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"gridsense/domain/core"
	"gridsense/domain/grid"
	"gridsense/ports"
)

// Workbook implements ports.WorkbookSource over an Excel or CSV file.
// Sheet data is snapshotted into memory on first access so analyses of
// different sheets can run in parallel without touching the file.
type Workbook struct {
	filePath string
	fileType string // "xlsx" or "csv"
	file     *excelize.File
	csvSheet *Sheet
}

// OpenWorkbook opens an .xlsx/.xlsm or .csv file for analysis
func OpenWorkbook(filePath string) (*Workbook, error) {
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("file not found: %s", filePath)
	}

	ext := strings.ToLower(filepath.Ext(filePath))
	switch ext {
	case ".csv":
		sheet, err := loadCSV(filePath)
		if err != nil {
			return nil, err
		}
		return &Workbook{filePath: filePath, fileType: "csv", csvSheet: sheet}, nil
	case ".xlsx", ".xlsm":
		start := time.Now()
		f, err := excelize.OpenFile(filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open Excel file: %w", err)
		}
		log.Printf("[Workbook] opened %s in %.2fms", filepath.Base(filePath),
			float64(time.Since(start).Nanoseconds())/1e6)
		return &Workbook{filePath: filePath, fileType: "xlsx", file: f}, nil
	default:
		return nil, core.NewUnsupportedFormatError(ext)
	}
}

// SheetNames returns worksheet names in workbook order
func (w *Workbook) SheetNames() []string {
	if w.fileType == "csv" {
		return []string{w.csvSheet.name}
	}
	return w.file.GetSheetList()
}

// Sheet snapshots the named worksheet into an in-memory SheetSource
func (w *Workbook) Sheet(name string) (ports.SheetSource, error) {
	if w.fileType == "csv" {
		if name != w.csvSheet.name {
			return nil, core.NewSheetNotFoundError(name)
		}
		return w.csvSheet, nil
	}
	if idx, err := w.file.GetSheetIndex(name); err != nil || idx < 0 {
		return nil, core.NewSheetNotFoundError(name)
	}

	start := time.Now()
	rows, err := w.file.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", name, err)
	}

	merges, err := w.readMerges(name)
	if err != nil {
		return nil, err
	}

	sheet := newSheet(name, rows, merges)
	log.Printf("[Workbook] sheet %q snapshotted in %.2fms (%d rows, %d merges)",
		name, float64(time.Since(start).Nanoseconds())/1e6, sheet.maxRow, len(merges))
	return sheet, nil
}

// Close releases the underlying file handle
func (w *Workbook) Close() error {
	if w.file != nil {
		return w.file.Close()
	}
	return nil
}

func (w *Workbook) readMerges(name string) ([]ports.RawMerge, error) {
	cells, err := w.file.GetMergeCells(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read merges of %q: %w", name, err)
	}
	merges := make([]ports.RawMerge, 0, len(cells))
	for _, mc := range cells {
		minCol, minRow, err := excelize.CellNameToCoordinates(mc.GetStartAxis())
		if err != nil {
			continue
		}
		maxCol, maxRow, err := excelize.CellNameToCoordinates(mc.GetEndAxis())
		if err != nil {
			continue
		}
		merges = append(merges, ports.RawMerge{
			MinRow: minRow, MinCol: minCol,
			MaxRow: maxRow, MaxCol: maxCol,
		})
	}
	return merges, nil
}

func loadCSV(filePath string) (*Sheet, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // ragged rows are fine
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}

	name := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
	return newSheet(name, rows, nil), nil
}

// Sheet is an immutable in-memory worksheet snapshot
type Sheet struct {
	name   string
	maxRow int
	maxCol int
	rows   [][]grid.Value
	merges []ports.RawMerge
}

func newSheet(name string, rows [][]string, merges []ports.RawMerge) *Sheet {
	s := &Sheet{name: name, merges: merges, maxRow: len(rows)}
	s.rows = make([][]grid.Value, len(rows))
	for i, row := range rows {
		if len(row) > s.maxCol {
			s.maxCol = len(row)
		}
		values := make([]grid.Value, len(row))
		for j, cell := range row {
			values[j] = parseCellValue(cell)
		}
		s.rows[i] = values
	}
	// Merges can extend past the last row holding content
	for _, m := range merges {
		if m.MaxRow > s.maxRow {
			s.maxRow = m.MaxRow
		}
		if m.MaxCol > s.maxCol {
			s.maxCol = m.MaxCol
		}
	}
	return s
}

// SheetName returns the worksheet name
func (s *Sheet) SheetName() string { return s.name }

// Dimensions returns (maxRow, maxCol)
func (s *Sheet) Dimensions() (int, int) { return s.maxRow, s.maxCol }

// CellValue returns the typed value at the 1-based coordinate
func (s *Sheet) CellValue(row, col int) grid.Value {
	if row < 1 || row > len(s.rows) {
		return grid.NewMissingValue()
	}
	r := s.rows[row-1]
	if col < 1 || col > len(r) {
		return grid.NewMissingValue()
	}
	return r[col-1]
}

// MergedRanges returns the declared merged ranges
func (s *Sheet) MergedRanges() []ports.RawMerge { return s.merges }

// parseCellValue coerces the formatted cell string into the typed
// union. Numbers keep their numeric identity; everything else stays
// text so the classifier sees the source rendering untouched.
func parseCellValue(cell string) grid.Value {
	trimmed := strings.TrimSpace(cell)
	if trimmed == "" {
		return grid.NewMissingValue()
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return grid.NewNumberValue(f)
	}
	switch strings.ToLower(trimmed) {
	case "true":
		return grid.NewBoolValue(true)
	case "false":
		return grid.NewBoolValue(false)
	}
	return grid.NewTextValue(trimmed)
}
