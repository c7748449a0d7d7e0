package analysis

import (
	"fmt"

	"gridsense/domain/grid"
	"gridsense/domain/structure"
)

// maxHeaderLevels bounds the hierarchical header band to the header
// row plus two merged rows above it. Anything higher is treated as a
// title, not a field label.
const maxHeaderLevels = 3

// headerNames resolves one label per region column. Multi-row merges
// above the header row contribute parent levels: two non-empty levels
// join with cfg.TwoLevelJoin, three or more with cfg.MultiLevelJoin.
// Blank labels become positional names and duplicates get a numeric
// suffix so every field is addressable by name.
func headerNames(g *grid.Model, region structure.DataRegion, headerRow int, cfg structure.AnalysisConfig) []string {
	bandStart := headerBandStart(g, headerRow)

	names := make([]string, 0, region.MaxCol-region.MinCol+1)
	for col := region.MinCol; col <= region.MaxCol; col++ {
		levels := headerLevels(g, col, bandStart, headerRow)
		names = append(names, joinLevels(levels, cfg))
	}
	return dedupeNames(names, region.MinCol)
}

// headerBandStart finds the topmost merged row feeding the header,
// bounded by maxHeaderLevels.
func headerBandStart(g *grid.Model, headerRow int) int {
	lowest := headerRow - (maxHeaderLevels - 1)
	if lowest < 1 {
		lowest = 1
	}
	start := headerRow
	for _, r := range g.Regions() {
		if r.MinRow < headerRow && r.MinRow >= lowest && r.MaxRow <= headerRow {
			if r.MinRow < start {
				start = r.MinRow
			}
		}
	}
	return start
}

// headerLevels collects the distinct non-empty values stacked above
// and on the header row for one column. Merged anchors repeat down
// their span, so consecutive duplicates collapse to one level.
func headerLevels(g *grid.Model, col, bandStart, headerRow int) []string {
	var levels []string
	for row := bandStart; row <= headerRow; row++ {
		v := g.TextAt(row, col)
		if v == "" {
			continue
		}
		if len(levels) > 0 && levels[len(levels)-1] == v {
			continue
		}
		levels = append(levels, v)
	}
	return levels
}

func joinLevels(levels []string, cfg structure.AnalysisConfig) string {
	switch len(levels) {
	case 0:
		return ""
	case 1:
		return levels[0]
	case 2:
		return levels[0] + cfg.TwoLevelJoin + levels[1]
	default:
		joined := levels[0]
		for _, l := range levels[1:] {
			joined += cfg.MultiLevelJoin + l
		}
		return joined
	}
}

// dedupeNames replaces blanks with positional labels and suffixes
// repeats, keeping the first occurrence untouched.
func dedupeNames(names []string, minCol int) []string {
	counts := make(map[string]int, len(names))
	out := make([]string, len(names))
	for i, name := range names {
		if name == "" {
			name = fmt.Sprintf("Column %d", minCol+i)
		}
		if n, ok := counts[name]; ok {
			counts[name] = n + 1
			out[i] = fmt.Sprintf("%s_%d", name, n+1)
			continue
		}
		counts[name] = 0
		out[i] = name
	}
	return out
}
