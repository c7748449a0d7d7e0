package structure

import (
	"gridsense/domain/core"
)

// TableKind classifies the overall sheet layout
type TableKind string

const (
	// TableStandard is a flat two-dimensional table with one header row
	TableStandard TableKind = "standard"
	// TableComplex has merged cells or a hierarchical header band
	TableComplex TableKind = "complex"
)

// ReportStatus is the overall outcome of an analysis run
type ReportStatus string

const (
	StatusOK ReportStatus = "ok"
	// StatusEmpty means zero non-empty cells were found; downstream
	// consumers must special-case this (no header, no fields).
	StatusEmpty ReportStatus = "empty"
)

// DensityClass buckets a data region by fill ratio
type DensityClass string

const (
	DensityDense    DensityClass = "dense"    // density > 0.7
	DensityStandard DensityClass = "standard" // density > 0.3
	DensitySparse   DensityClass = "sparse"
)

// DataRegion is the minimal bounding box of non-empty cells found by
// the region scan. Derived, never persisted.
type DataRegion struct {
	MinRow         int          `json:"min_row"`
	MaxRow         int          `json:"max_row"`
	MinCol         int          `json:"min_col"`
	MaxCol         int          `json:"max_col"`
	NonEmptyCells  int          `json:"non_empty_cells"`
	Density        float64      `json:"density"`
	Classification DensityClass `json:"classification"`
}

// Area returns the bounding box area in cells
func (r DataRegion) Area() int {
	return (r.MaxRow - r.MinRow + 1) * (r.MaxCol - r.MinCol + 1)
}

// HeaderCandidate captures one row's header score during detection.
// Transient; kept on the report only as a diagnostic trail.
type HeaderCandidate struct {
	Row              int     `json:"row"`
	TextRatio        float64 `json:"text_ratio"`
	FormattingScore  float64 `json:"formatting_score"`
	UniqueValueCount int     `json:"unique_value_count"`
	Score            float64 `json:"score"`
	Qualified        bool    `json:"qualified"`
}

// HeaderLocation is the detector's decision
type HeaderLocation struct {
	Row        int     `json:"row"`
	Confidence float64 `json:"confidence"` // [0,1]; 0 means fallback guess
}

// FieldType is the dominant semantic type of a column
type FieldType string

const (
	FieldIdentifier FieldType = "identifier"
	FieldNumeric    FieldType = "numeric"
	FieldDate       FieldType = "date"
	FieldBoolean    FieldType = "boolean"
	FieldShortText  FieldType = "short_text"  // <= 5 chars
	FieldMediumText FieldType = "medium_text" // <= 20 chars
	FieldLongText   FieldType = "long_text"
)

// IsText reports whether the type is one of the text buckets
func (t FieldType) IsText() bool {
	return t == FieldShortText || t == FieldMediumText || t == FieldLongText
}

// NumericStats holds numeric field statistics
type NumericStats struct {
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"std_dev"`
}

// TextStats holds character-length statistics for text fields
type TextStats struct {
	MinLength  int     `json:"min_length"`
	MaxLength  int     `json:"max_length"`
	MeanLength float64 `json:"mean_length"`
}

// Characteristic flags attached to a field
const (
	CharacteristicUniqueValued  = "unique-valued field"
	CharacteristicHighNullRatio = "high null ratio"
)

// FieldDescriptor describes one column of the data region. Created by
// the classifier, enriched by the summarizer, never mutated afterwards.
type FieldDescriptor struct {
	ColumnIndex int    `json:"column_index"` // 1-based source column
	ColumnLabel string `json:"column_label"` // A, B, ..., AA
	Name        string `json:"name"`
	StartRef    string `json:"start_ref"` // first data cell, e.g. "B3"

	PrimaryType FieldType `json:"primary_type"`
	Confidence  float64   `json:"confidence"` // matches / non-null samples
	NullRatio   float64   `json:"null_ratio"`
	UniqueRatio float64   `json:"unique_ratio"`
	IsKeyField  bool      `json:"is_key_field"`

	SampleValues     []string `json:"sample_values,omitempty"`     // <= 5, high cardinality
	EnumeratedValues []string `json:"enumerated_values,omitempty"` // <= 10, low cardinality
	Patterns         []string `json:"patterns,omitempty"`          // matched identifier patterns
	Characteristics  []string `json:"characteristics,omitempty"`

	NumericStats *NumericStats `json:"numeric_stats,omitempty"`
	TextStats    *TextStats    `json:"text_stats,omitempty"`

	MissingCount int `json:"missing_count"`
	SampleCount  int `json:"sample_count"` // non-null values inspected
}

// MergeDiagnostics summarizes merged-cell structure for the report
type MergeDiagnostics struct {
	MergeCount       int      `json:"merge_count"`
	HeaderBandMerges int      `json:"header_band_merges"`
	ComplexStructure bool     `json:"complex_structure"` // >10 merges or >5 in header band
	Ranges           []string `json:"ranges,omitempty"`  // capped listing of range refs
}

// StructureReport is the sole output artifact of an analysis run.
// Read-only and serializable; consumers must not mutate it.
type StructureReport struct {
	AnalysisID  core.AnalysisID `json:"analysis_id"`
	SheetName   string          `json:"sheet_name"`
	GeneratedAt core.Timestamp  `json:"generated_at"`

	Status    ReportStatus `json:"status"`
	TableKind TableKind    `json:"table_kind"`

	MaxRow int `json:"max_row"`
	MaxCol int `json:"max_col"`

	Header       HeaderLocation    `json:"header"`
	Candidates   []HeaderCandidate `json:"candidates,omitempty"`
	DataStartRow int               `json:"data_start_row"`
	DataEndRow   int               `json:"data_end_row"`

	Region *DataRegion       `json:"region,omitempty"`
	Fields []FieldDescriptor `json:"fields"`

	Merges   MergeDiagnostics `json:"merges"`
	Warnings []string         `json:"warnings,omitempty"`
}

// IsEmpty reports whether the sheet held no data at all
func (r *StructureReport) IsEmpty() bool {
	return r.Status == StatusEmpty
}

// FieldByColumn returns the descriptor for a 1-based column index
func (r *StructureReport) FieldByColumn(col int) (FieldDescriptor, bool) {
	for _, f := range r.Fields {
		if f.ColumnIndex == col {
			return f, true
		}
	}
	return FieldDescriptor{}, false
}
