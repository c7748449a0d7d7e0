package analysis

import (
	"gridsense/domain/grid"
	"gridsense/domain/structure"
)

// Density classification thresholds
const (
	denseThreshold    = 0.7
	standardThreshold = 0.3
)

// RegionClusterer finds the bounding box of non-empty cells and
// classifies its fill density. It never fails: an irregular layout
// degrades to the scanned bounds, and an empty sheet reports no region.
type RegionClusterer struct{}

// NewRegionClusterer creates a clusterer
func NewRegionClusterer() *RegionClusterer {
	return &RegionClusterer{}
}

// Cluster scans the (already bounded) model. The second return value
// is false when the sheet holds zero non-empty cells; callers must
// then treat the sheet as empty.
func (c *RegionClusterer) Cluster(g *grid.Model) (structure.DataRegion, bool) {
	if g.IsEmptySheet() {
		return structure.DataRegion{}, false
	}

	minRow, minCol := g.MaxRow+1, g.MaxCol+1
	maxRow, maxCol := 0, 0
	nonEmpty := 0

	for row := 1; row <= g.MaxRow; row++ {
		for col := 1; col <= g.MaxCol; col++ {
			if g.ValueAt(row, col).IsEmpty() {
				continue
			}
			nonEmpty++
			if row < minRow {
				minRow = row
			}
			if row > maxRow {
				maxRow = row
			}
			if col < minCol {
				minCol = col
			}
			if col > maxCol {
				maxCol = col
			}
		}
	}

	if nonEmpty == 0 {
		return structure.DataRegion{}, false
	}

	region := structure.DataRegion{
		MinRow:        minRow,
		MaxRow:        maxRow,
		MinCol:        minCol,
		MaxCol:        maxCol,
		NonEmptyCells: nonEmpty,
	}
	region.Density = float64(nonEmpty) / float64(region.Area())
	region.Classification = classifyDensity(region.Density)

	return region, true
}

func classifyDensity(density float64) structure.DensityClass {
	switch {
	case density > denseThreshold:
		return structure.DensityDense
	case density > standardThreshold:
		return structure.DensityStandard
	default:
		return structure.DensitySparse
	}
}
