package structure

// AnalysisConfig holds the scan bounds and sampling knobs. All plain
// numeric values; zero fields are replaced by defaults via Normalize.
type AnalysisConfig struct {
	MaxScanRows          int `json:"max_scan_rows"`         // region scan row cap
	MaxScanCols          int `json:"max_scan_cols"`         // region scan column cap
	SampleSize           int `json:"sample_size"`           // values sampled per column
	EnumerationThreshold int `json:"enumeration_threshold"` // distinct values to enumerate
	EnumScanRows         int `json:"enum_scan_rows"`        // rows scanned for enumeration
	HeaderSearchWindow   int `json:"header_search_window"`  // candidate header rows

	// Multi-level header name joining. Two non-empty levels join with
	// TwoLevelJoin, three or more with MultiLevelJoin. The convention
	// is arbitrary, so it stays configurable.
	TwoLevelJoin   string `json:"two_level_join"`
	MultiLevelJoin string `json:"multi_level_join"`
}

// DefaultConfig returns the full-analysis knobs
func DefaultConfig() AnalysisConfig {
	return AnalysisConfig{
		MaxScanRows:          500,
		MaxScanCols:          100,
		SampleSize:           50,
		EnumerationThreshold: 10,
		EnumScanRows:         100,
		HeaderSearchWindow:   10,
		TwoLevelJoin:         "-",
		MultiLevelJoin:       " | ",
	}
}

// QuickConfig returns the lightweight profile: smaller scan bounds but
// a larger per-column sample, trading breadth for per-field fidelity.
func QuickConfig() AnalysisConfig {
	cfg := DefaultConfig()
	cfg.MaxScanRows = 100
	cfg.MaxScanCols = 50
	cfg.SampleSize = 100
	return cfg
}

// Normalize fills zero-valued knobs with defaults so a partially
// populated config never divides by zero or scans nothing.
func (c AnalysisConfig) Normalize() AnalysisConfig {
	def := DefaultConfig()
	if c.MaxScanRows <= 0 {
		c.MaxScanRows = def.MaxScanRows
	}
	if c.MaxScanCols <= 0 {
		c.MaxScanCols = def.MaxScanCols
	}
	if c.SampleSize <= 0 {
		c.SampleSize = def.SampleSize
	}
	if c.EnumerationThreshold <= 0 {
		c.EnumerationThreshold = def.EnumerationThreshold
	}
	if c.EnumScanRows <= 0 {
		c.EnumScanRows = def.EnumScanRows
	}
	if c.HeaderSearchWindow <= 0 {
		c.HeaderSearchWindow = def.HeaderSearchWindow
	}
	if c.TwoLevelJoin == "" {
		c.TwoLevelJoin = def.TwoLevelJoin
	}
	if c.MultiLevelJoin == "" {
		c.MultiLevelJoin = def.MultiLevelJoin
	}
	return c
}
