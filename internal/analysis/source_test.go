package analysis

import (
	"gridsense/domain/core"
	"gridsense/domain/grid"
	"gridsense/domain/structure"
	"gridsense/ports"
)

// memSheet is an in-memory SheetSource for pipeline tests. Cells are
// plain strings; empty strings read as missing.
type memSheet struct {
	name   string
	rows   [][]string
	merges []ports.RawMerge
}

func newMemSheet(name string, rows [][]string, merges ...ports.RawMerge) *memSheet {
	return &memSheet{name: name, rows: rows, merges: merges}
}

func (s *memSheet) SheetName() string { return s.name }

func (s *memSheet) Dimensions() (int, int) {
	maxCol := 0
	for _, row := range s.rows {
		if len(row) > maxCol {
			maxCol = len(row)
		}
	}
	return len(s.rows), maxCol
}

func (s *memSheet) CellValue(row, col int) grid.Value {
	if row < 1 || row > len(s.rows) {
		return grid.NewMissingValue()
	}
	r := s.rows[row-1]
	if col < 1 || col > len(r) {
		return grid.NewMissingValue()
	}
	return grid.NewTextValue(r[col-1])
}

func (s *memSheet) MergedRanges() []ports.RawMerge { return s.merges }

func mergeRange(minRow, minCol, maxRow, maxCol int) ports.RawMerge {
	return ports.RawMerge{MinRow: minRow, MinCol: minCol, MaxRow: maxRow, MaxCol: maxCol}
}

// memWorkbook wraps several memSheets as a WorkbookSource
type memWorkbook struct {
	order  []string
	sheets map[string]*memSheet
}

func newMemWorkbook(sheets ...*memSheet) *memWorkbook {
	wb := &memWorkbook{sheets: make(map[string]*memSheet, len(sheets))}
	for _, s := range sheets {
		wb.order = append(wb.order, s.name)
		wb.sheets[s.name] = s
	}
	return wb
}

func (w *memWorkbook) SheetNames() []string { return w.order }

func (w *memWorkbook) Sheet(name string) (ports.SheetSource, error) {
	s, ok := w.sheets[name]
	if !ok {
		return nil, core.NewSheetNotFoundError(name)
	}
	return s, nil
}

func (w *memWorkbook) Close() error { return nil }

// buildModel runs the merge resolver over a memSheet with default
// bounds, giving unit tests a ready grid.
func buildModel(s *memSheet) *grid.Model {
	model, _ := NewMergeResolver().Resolve(s, structure.DefaultConfig())
	return model
}
