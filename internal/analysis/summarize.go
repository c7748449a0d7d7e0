package analysis

import (
	"gridsense/domain/structure"
)

const sampleDisplayCount = 5

// FieldSummarizer decides, per field, between a complete enumerated
// filter set (low cardinality) and a short illustrative sample (high
// cardinality). Ordering follows first appearance so repeated runs
// over unchanged data produce identical output.
type FieldSummarizer struct{}

// NewFieldSummarizer creates a summarizer
func NewFieldSummarizer() *FieldSummarizer {
	return &FieldSummarizer{}
}

// Summarize fills EnumeratedValues or SampleValues on the descriptor
// from the column's collected values (already bounded by the
// enumeration scan window).
func (s *FieldSummarizer) Summarize(field *structure.FieldDescriptor, values []string, cfg structure.AnalysisConfig) {
	if len(values) == 0 {
		return
	}

	seen := make(map[string]struct{}, len(values))
	var distinct []string
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		distinct = append(distinct, v)
	}

	if len(distinct) <= cfg.EnumerationThreshold {
		field.EnumeratedValues = distinct
		return
	}

	n := min(sampleDisplayCount, len(values))
	field.SampleValues = append([]string(nil), values[:n]...)
}
