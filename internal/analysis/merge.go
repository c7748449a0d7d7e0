package analysis

import (
	"fmt"

	"gridsense/domain/grid"
	"gridsense/domain/structure"
	"gridsense/ports"
)

// MergeResolver turns a raw sheet source into a flat grid.Model:
// every coordinate inside a merged range reads the anchor (top-left)
// value, and a MergeIndex carries the span metadata the header
// detector consults separately.
type MergeResolver struct{}

// NewMergeResolver creates a resolver
func NewMergeResolver() *MergeResolver {
	return &MergeResolver{}
}

// Resolve builds the model up to the configured scan bounds. A sheet
// wider or taller than the caps is truncated and a partial-coverage
// warning is attached; no merges means the model is a straight copy.
func (r *MergeResolver) Resolve(source ports.SheetSource, cfg structure.AnalysisConfig) (*grid.Model, []string) {
	srcRows, srcCols := source.Dimensions()

	maxRow, maxCol := srcRows, srcCols
	var warnings []string
	if srcRows > cfg.MaxScanRows {
		maxRow = cfg.MaxScanRows
	}
	if srcCols > cfg.MaxScanCols {
		maxCol = cfg.MaxScanCols
	}
	if maxRow != srcRows || maxCol != srcCols {
		warnings = append(warnings, fmt.Sprintf(
			"scan bound exceeded: sheet is %dx%d, analyzed first %dx%d only",
			srcRows, srcCols, maxRow, maxCol))
	}

	model := grid.NewModel(source.SheetName(), maxRow, maxCol)
	for row := 1; row <= maxRow; row++ {
		for col := 1; col <= maxCol; col++ {
			model.Set(row, col, source.CellValue(row, col))
		}
	}

	regions := r.resolveMerges(source, model, maxRow, maxCol)
	model.SetRegions(regions, grid.NewMergeIndex(regions))

	return model, warnings
}

// resolveMerges propagates each anchor value across its range and
// returns the clipped merge metadata. Ranges are walked cell by cell;
// no ordering of the declared ranges is assumed.
func (r *MergeResolver) resolveMerges(source ports.SheetSource, model *grid.Model, maxRow, maxCol int) []grid.MergedRegion {
	raw := source.MergedRanges()
	if len(raw) == 0 {
		return nil
	}

	regions := make([]grid.MergedRegion, 0, len(raw))
	for _, m := range raw {
		if m.MinRow > maxRow || m.MinCol > maxCol {
			continue // entirely outside the scanned window
		}
		clipped := grid.MergedRegion{
			MinRow:      m.MinRow,
			MinCol:      m.MinCol,
			MaxRow:      min(m.MaxRow, maxRow),
			MaxCol:      min(m.MaxCol, maxCol),
			AnchorValue: source.CellValue(m.MinRow, m.MinCol),
		}
		clipped.Ref = fmt.Sprintf("%s:%s",
			grid.CellRef(clipped.MinRow, clipped.MinCol),
			grid.CellRef(clipped.MaxRow, clipped.MaxCol))

		for row := clipped.MinRow; row <= clipped.MaxRow; row++ {
			for col := clipped.MinCol; col <= clipped.MaxCol; col++ {
				model.Set(row, col, clipped.AnchorValue)
			}
		}
		regions = append(regions, clipped)
	}
	return regions
}
