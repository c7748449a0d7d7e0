package ports

import (
	"gridsense/domain/grid"
)

// RawMerge is a merged range as declared by the source format. Only
// coordinates; the anchor value is read back through CellValue.
type RawMerge struct {
	MinRow int
	MinCol int
	MaxRow int
	MaxCol int
}

// SheetSource is the loader boundary: worksheet bounds, a cell value
// accessor and the declared merged ranges. The loader owns all
// source-format decoding; the engine performs no I/O of its own.
type SheetSource interface {
	// SheetName returns the worksheet name
	SheetName() string

	// Dimensions returns (maxRow, maxCol); (0, 0) for an empty sheet
	Dimensions() (int, int)

	// CellValue returns the typed value at the 1-based coordinate.
	// Missing and out-of-bounds cells return a missing value.
	CellValue(row, col int) grid.Value

	// MergedRanges returns the declared merges in source order.
	// Ranges are not assumed sorted.
	MergedRanges() []RawMerge
}

// WorkbookSource enumerates the worksheets of one file
type WorkbookSource interface {
	// SheetNames returns worksheet names in workbook order
	SheetNames() []string

	// Sheet returns a source for the named worksheet
	Sheet(name string) (SheetSource, error)

	// Close releases the underlying file handle
	Close() error
}
