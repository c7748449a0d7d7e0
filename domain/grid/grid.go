package grid

// Cell is one grid coordinate with its resolved value. Coordinates are
// 1-based throughout, matching spreadsheet conventions.
type Cell struct {
	Row   int   `json:"row"`
	Col   int   `json:"col"`
	Value Value `json:"value"`
}

// MergedRegion is a rectangular range sharing one logical value. Only
// the top-left (anchor) cell holds content in the source format.
type MergedRegion struct {
	MinRow      int    `json:"min_row"`
	MinCol      int    `json:"min_col"`
	MaxRow      int    `json:"max_row"`
	MaxCol      int    `json:"max_col"`
	AnchorValue Value  `json:"anchor_value"`
	Ref         string `json:"ref"` // e.g. "A1:C1"
}

// RowSpan returns the number of rows the region covers
func (m MergedRegion) RowSpan() int { return m.MaxRow - m.MinRow + 1 }

// ColSpan returns the number of columns the region covers
func (m MergedRegion) ColSpan() int { return m.MaxCol - m.MinCol + 1 }

// Contains reports whether (row, col) falls inside the region
func (m MergedRegion) Contains(row, col int) bool {
	return row >= m.MinRow && row <= m.MaxRow && col >= m.MinCol && col <= m.MaxCol
}

// Model is the normalized in-memory worksheet: a dense row-major value
// array with merged ranges already flattened to their anchor value.
// Built once per worksheet load and read-only thereafter.
type Model struct {
	SheetName string
	MaxRow    int
	MaxCol    int

	cells   []Value
	regions []MergedRegion
	merges  *MergeIndex
}

// NewModel allocates an empty model with the given bounds. Values are
// populated through Set during construction and frozen afterwards.
func NewModel(sheetName string, maxRow, maxCol int) *Model {
	return &Model{
		SheetName: sheetName,
		MaxRow:    maxRow,
		MaxCol:    maxCol,
		cells:     make([]Value, maxRow*maxCol),
	}
}

// Set writes a value during model construction. Out-of-bounds writes
// are ignored rather than panicking; the loader controls the bounds.
func (g *Model) Set(row, col int, v Value) {
	if row < 1 || row > g.MaxRow || col < 1 || col > g.MaxCol {
		return
	}
	g.cells[(row-1)*g.MaxCol+(col-1)] = v
}

// ValueAt returns the value at the 1-based coordinate. Coordinates
// inside a merged range return the anchor value because the resolver
// propagated it during construction. Out-of-bounds reads are missing.
func (g *Model) ValueAt(row, col int) Value {
	if row < 1 || row > g.MaxRow || col < 1 || col > g.MaxCol {
		return NewMissingValue()
	}
	v := g.cells[(row-1)*g.MaxCol+(col-1)]
	if v.Type == "" {
		return NewMissingValue()
	}
	return v
}

// TextAt is shorthand for ValueAt(row, col).String()
func (g *Model) TextAt(row, col int) string {
	return g.ValueAt(row, col).String()
}

// Regions returns the merged regions in source order
func (g *Model) Regions() []MergedRegion {
	return g.regions
}

// SetRegions attaches resolved merge metadata during construction
func (g *Model) SetRegions(regions []MergedRegion, idx *MergeIndex) {
	g.regions = regions
	g.merges = idx
}

// Merges returns the merge lookup index (never nil after construction)
func (g *Model) Merges() *MergeIndex {
	if g.merges == nil {
		return NewMergeIndex(nil)
	}
	return g.merges
}

// IsEmptySheet reports whether the model has no addressable cells
func (g *Model) IsEmptySheet() bool {
	return g.MaxRow == 0 || g.MaxCol == 0
}

// MergeIndex answers merge-membership questions without walking the
// raw range list. Header detection reads this instead of the regions
// themselves so the grid stays the only shared structure.
type MergeIndex struct {
	regions      []MergedRegion
	rowCellCount map[int]int // merged cells per row
	rowMaxSpan   map[int]int // largest row-span touching each row
}

// NewMergeIndex builds the per-row lookup tables
func NewMergeIndex(regions []MergedRegion) *MergeIndex {
	idx := &MergeIndex{
		regions:      regions,
		rowCellCount: make(map[int]int),
		rowMaxSpan:   make(map[int]int),
	}
	for _, r := range regions {
		for row := r.MinRow; row <= r.MaxRow; row++ {
			idx.rowCellCount[row] += r.ColSpan()
			if r.RowSpan() > idx.rowMaxSpan[row] {
				idx.rowMaxSpan[row] = r.RowSpan()
			}
		}
	}
	return idx
}

// Count returns the total number of merged regions
func (idx *MergeIndex) Count() int { return len(idx.regions) }

// RegionAt returns the region covering (row, col), if any
func (idx *MergeIndex) RegionAt(row, col int) (MergedRegion, bool) {
	for _, r := range idx.regions {
		if r.Contains(row, col) {
			return r, true
		}
	}
	return MergedRegion{}, false
}

// InRegion reports whether (row, col) lies inside any merged range
func (idx *MergeIndex) InRegion(row, col int) bool {
	_, ok := idx.RegionAt(row, col)
	return ok
}

// MergedCellsInRow returns how many cells of the row belong to a merge
func (idx *MergeIndex) MergedCellsInRow(row int) int {
	return idx.rowCellCount[row]
}

// MaxRowSpanAt returns the largest row-span of any merge touching the
// row, or 0 when the row has no merged cells. Spans above 1 signal a
// hierarchical header band.
func (idx *MergeIndex) MaxRowSpanAt(row int) int {
	return idx.rowMaxSpan[row]
}

// CountInBand returns the number of regions intersecting rows [1, maxRow]
func (idx *MergeIndex) CountInBand(maxRow int) int {
	n := 0
	for _, r := range idx.regions {
		if r.MinRow <= maxRow {
			n++
		}
	}
	return n
}

// Refs returns the range references of the first limit regions in
// discovery order; limit <= 0 means all of them.
func (idx *MergeIndex) Refs(limit int) []string {
	if limit <= 0 || limit > len(idx.regions) {
		limit = len(idx.regions)
	}
	refs := make([]string, 0, limit)
	for _, r := range idx.regions[:limit] {
		refs = append(refs, r.Ref)
	}
	return refs
}
