package analysis

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"

	"gridsense/domain/grid"
	"gridsense/domain/structure"
	"gridsense/internal"
)

const (
	keyFieldUniqueRatio = 0.8
	highNullRatio       = 0.3
)

// typePriority breaks ties when two types match equally many samples.
// Identifier shapes win over plain numerics so ID-looking columns keep
// their role even when every value also parses as a float.
var typePriority = []structure.FieldType{
	structure.FieldIdentifier,
	structure.FieldNumeric,
	structure.FieldDate,
	structure.FieldBoolean,
	structure.FieldShortText,
	structure.FieldMediumText,
	structure.FieldLongText,
}

// columnSample is everything read from one column of the data region
type columnSample struct {
	values  []string // non-empty values in row order
	missing int
	scanned int // rows inspected, empty or not
}

// FieldClassifier assigns each column a dominant type, a confidence,
// and key-field/uniqueness characteristics from a bounded sample.
// A single misbehaving column degrades to text with zero confidence;
// it never aborts the other columns.
type FieldClassifier struct {
	heur structure.Heuristics
	log  *internal.Logger
}

// NewFieldClassifier creates a classifier with the given heuristics
func NewFieldClassifier(heur structure.Heuristics, logger *internal.Logger) *FieldClassifier {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &FieldClassifier{heur: heur, log: logger.WithComponent("classify")}
}

// Classify builds a descriptor per region column. names carries the
// resolved header label for each column, indexed from region.MinCol.
func (c *FieldClassifier) Classify(g *grid.Model, region structure.DataRegion, dataStartRow int, names []string, cfg structure.AnalysisConfig) ([]structure.FieldDescriptor, []string) {
	var fields []structure.FieldDescriptor
	var warnings []string

	for col := region.MinCol; col <= region.MaxCol; col++ {
		name := ""
		if i := col - region.MinCol; i < len(names) {
			name = names[i]
		}
		sample := collectColumn(g, col, dataStartRow, region.MaxRow, cfg.EnumScanRows)

		field, err := c.classifyColumn(col, name, sample, cfg)
		if err != nil {
			c.log.Warn("column %s (%s): %v", grid.ColumnLetter(col), name, err)
			warnings = append(warnings, fmt.Sprintf(
				"column %s (%s): classification failed (%v); defaulting to text",
				grid.ColumnLetter(col), name, err))
			field = fallbackDescriptor(col, name, sample)
		}
		field.StartRef = fieldStartRef(g, col, dataStartRow)
		fields = append(fields, field)
	}
	return fields, warnings
}

// collectColumn reads up to window non-empty values below the header
func collectColumn(g *grid.Model, col, startRow, endRow, window int) columnSample {
	var s columnSample
	for row := startRow; row <= endRow && len(s.values) < window; row++ {
		s.scanned++
		v := g.TextAt(row, col)
		if v == "" {
			s.missing++
			continue
		}
		s.values = append(s.values, v)
	}
	return s
}

func (c *FieldClassifier) classifyColumn(col int, name string, sample columnSample, cfg structure.AnalysisConfig) (structure.FieldDescriptor, error) {
	field := structure.FieldDescriptor{
		ColumnIndex: col,
		ColumnLabel: grid.ColumnLetter(col),
		Name:        name,
	}
	if sample.scanned > 0 {
		field.NullRatio = float64(sample.missing) / float64(sample.scanned)
	}
	field.MissingCount = sample.missing

	if len(sample.values) == 0 {
		// A fully empty column is text with zero confidence, not an error
		field.PrimaryType = structure.FieldMediumText
		field.Characteristics = append(field.Characteristics, structure.CharacteristicHighNullRatio)
		return field, nil
	}

	typed := sample.values
	if len(typed) > cfg.SampleSize {
		typed = typed[:cfg.SampleSize]
	}
	field.SampleCount = len(typed)

	counts := make(map[structure.FieldType]int)
	var patterns []string
	seenPattern := make(map[string]struct{})
	for _, v := range typed {
		kind, pattern := c.classifyValue(v)
		counts[kind]++
		if pattern != "" {
			if _, ok := seenPattern[pattern]; !ok {
				seenPattern[pattern] = struct{}{}
				patterns = append(patterns, pattern)
			}
		}
	}

	field.PrimaryType = dominantType(counts)
	field.Confidence = float64(counts[field.PrimaryType]) / float64(len(typed))
	if field.PrimaryType == structure.FieldIdentifier {
		field.Patterns = patterns
	}

	distinct := make(map[string]struct{}, len(sample.values))
	for _, v := range sample.values {
		distinct[v] = struct{}{}
	}
	field.UniqueRatio = float64(len(distinct)) / float64(len(sample.values))

	field.IsKeyField = c.isKeyFieldName(name) || field.UniqueRatio > keyFieldUniqueRatio
	if len(distinct) == len(sample.values) {
		field.Characteristics = append(field.Characteristics, structure.CharacteristicUniqueValued)
	}
	if field.NullRatio > highNullRatio {
		field.Characteristics = append(field.Characteristics, structure.CharacteristicHighNullRatio)
	}

	switch {
	case field.PrimaryType == structure.FieldNumeric:
		ns, err := numericStats(typed)
		if err != nil {
			return field, err
		}
		field.NumericStats = ns
	case field.PrimaryType.IsText():
		field.TextStats = textStats(typed)
	}

	return field, nil
}

// classifyValue applies the type priority chain to one value
func (c *FieldClassifier) classifyValue(s string) (structure.FieldType, string) {
	if pattern, ok := c.heur.MatchIdentifier(s); ok {
		return structure.FieldIdentifier, pattern
	}
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return structure.FieldNumeric, ""
	}
	if c.isDateValue(s) {
		return structure.FieldDate, ""
	}
	if c.heur.IsBooleanToken(strings.ToLower(s)) {
		return structure.FieldBoolean, ""
	}
	switch n := runeLen(s); {
	case n <= 5:
		return structure.FieldShortText, ""
	case n <= 20:
		return structure.FieldMediumText, ""
	default:
		return structure.FieldLongText, ""
	}
}

func (c *FieldClassifier) isDateValue(s string) bool {
	if c.heur.IsDateLike(s) {
		return true
	}
	for _, layout := range c.heur.DateLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

func (c *FieldClassifier) isKeyFieldName(name string) bool {
	lower := strings.ToLower(name)
	for _, token := range c.heur.KeyFieldTokens {
		if strings.Contains(lower, token) {
			return true
		}
	}
	return false
}

func dominantType(counts map[structure.FieldType]int) structure.FieldType {
	best := structure.FieldMediumText
	bestCount := -1
	for _, t := range typePriority {
		if counts[t] > bestCount {
			best = t
			bestCount = counts[t]
		}
	}
	return best
}

func numericStats(values []string) (*structure.NumericStats, error) {
	var nums []float64
	for _, v := range values {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			nums = append(nums, f)
		}
	}
	if len(nums) == 0 {
		return nil, fmt.Errorf("no parsable numeric values")
	}

	minVal, err := stats.Min(nums)
	if err != nil {
		return nil, err
	}
	maxVal, err := stats.Max(nums)
	if err != nil {
		return nil, err
	}
	meanVal, err := stats.Mean(nums)
	if err != nil {
		return nil, err
	}
	medianVal, err := stats.Median(nums)
	if err != nil {
		return nil, err
	}

	sd := 0.0
	if len(nums) > 1 {
		sd = stat.StdDev(nums, nil)
	}

	return &structure.NumericStats{
		Min:    minVal,
		Max:    maxVal,
		Mean:   meanVal,
		Median: medianVal,
		StdDev: sd,
	}, nil
}

func textStats(values []string) *structure.TextStats {
	ts := &structure.TextStats{MinLength: runeLen(values[0])}
	total := 0
	for _, v := range values {
		n := runeLen(v)
		total += n
		if n < ts.MinLength {
			ts.MinLength = n
		}
		if n > ts.MaxLength {
			ts.MaxLength = n
		}
	}
	ts.MeanLength = float64(total) / float64(len(values))
	return ts
}

// fallbackDescriptor is the recovery shape for a column whose values
// defeated classification: text, zero confidence, noted in warnings.
func fallbackDescriptor(col int, name string, sample columnSample) structure.FieldDescriptor {
	field := structure.FieldDescriptor{
		ColumnIndex:  col,
		ColumnLabel:  grid.ColumnLetter(col),
		Name:         name,
		PrimaryType:  structure.FieldMediumText,
		Confidence:   0,
		MissingCount: sample.missing,
	}
	if sample.scanned > 0 {
		field.NullRatio = float64(sample.missing) / float64(sample.scanned)
	}
	return field
}

// fieldStartRef finds the first non-merged, non-empty cell of the
// column in the top rows, falling back to the first data cell.
func fieldStartRef(g *grid.Model, col, dataStartRow int) string {
	merges := g.Merges()
	for row := 1; row <= min(g.MaxRow, 10); row++ {
		if merges.InRegion(row, col) {
			continue
		}
		if !g.ValueAt(row, col).IsEmpty() {
			return grid.CellRef(row, col)
		}
	}
	return grid.CellRef(dataStartRow, col)
}
