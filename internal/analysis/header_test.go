package analysis

import (
	"testing"

	"gridsense/domain/structure"
)

func newTestDetector() *HeaderDetector {
	return NewHeaderDetector(structure.DefaultHeuristics(), nil)
}

// TestDetectQualifiedHeader covers the common case: a label row over
// columns whose data differs in type and repeats.
func TestDetectQualifiedHeader(t *testing.T) {
	g := buildModel(newMemSheet("Sheet1", [][]string{
		{"Product", "Price", "Qty"},
		{"Widget", "1099.99", "5"},
		{"Widget", "1250.00", "5"},
		{"Gadget", "899.50", "3"},
		{"Widget", "1420.75", "5"},
		{"Gadget", "1338.25", "3"},
	}))

	header, candidates, warnings := newTestDetector().Detect(g, structure.DefaultConfig())

	if header.Row != 1 {
		t.Fatalf("Expected header row 1, got %d", header.Row)
	}
	if header.Confidence < columnDiffQualify {
		t.Errorf("Expected confidence >= %.2f, got %.2f", columnDiffQualify, header.Confidence)
	}
	if len(warnings) != 0 {
		t.Errorf("Expected no warnings, got %v", warnings)
	}
	if len(candidates) == 0 || !candidates[0].Qualified {
		t.Error("Expected first candidate to be qualified")
	}
}

// TestDetectSkipsTitleRow verifies that a merged title above the real
// label row does not win.
func TestDetectSkipsTitleRow(t *testing.T) {
	g := buildModel(newMemSheet("Sales",
		[][]string{
			{"Q1 Sales", "", ""},
			{"Jan", "Feb", "Mar"},
			{"100", "150", "200"},
			{"110", "160", "210"},
			{"120", "170", "220"},
		},
		mergeRange(1, 1, 1, 3),
	))

	header, _, warnings := newTestDetector().Detect(g, structure.DefaultConfig())

	if header.Row != 2 {
		t.Fatalf("Expected header row 2 beneath the title, got %d", header.Row)
	}
	if header.Confidence < columnDiffQualify {
		t.Errorf("Expected qualifying confidence, got %.2f", header.Confidence)
	}
	if len(warnings) != 0 {
		t.Errorf("Expected no warnings, got %v", warnings)
	}
}

// TestDetectSingleRowHeuristic covers sheets too short for a
// header-vs-data comparison.
func TestDetectSingleRowHeuristic(t *testing.T) {
	g := buildModel(newMemSheet("Tiny", [][]string{
		{"Name", "Age", "City"},
		{"Alice", "30", "NYC"},
	}))

	header, candidates, warnings := newTestDetector().Detect(g, structure.DefaultConfig())

	if header.Row != 1 {
		t.Fatalf("Expected header row 1, got %d", header.Row)
	}
	if !candidates[0].Qualified {
		t.Error("Expected short label row to qualify on its own")
	}
	if header.Confidence < singleRowQualify {
		t.Errorf("Expected confidence >= %.2f, got %.2f", singleRowQualify, header.Confidence)
	}
	if len(warnings) != 0 {
		t.Errorf("Expected no warnings, got %v", warnings)
	}
}

// TestDetectFallback covers a sheet too narrow for any row to reach
// the minimum header cell count: detection degrades to a best guess
// with zero confidence and a warning.
func TestDetectFallback(t *testing.T) {
	g := buildModel(newMemSheet("Narrow", [][]string{
		{"Name", "Age"},
		{"Alice", "30"},
		{"Bob", "25"},
	}))

	header, candidates, warnings := newTestDetector().Detect(g, structure.DefaultConfig())

	if header.Row != 1 {
		t.Fatalf("Expected fallback to keep row 1, got %d", header.Row)
	}
	if header.Confidence != 0 {
		t.Errorf("Expected zero confidence from fallback, got %.2f", header.Confidence)
	}
	if len(warnings) != 1 {
		t.Fatalf("Expected one inconclusive-detection warning, got %v", warnings)
	}
	for _, cand := range candidates {
		if cand.Qualified {
			t.Errorf("Expected no qualified candidates, but row %d qualified", cand.Row)
		}
	}
}

func TestLooksLikeHeader(t *testing.T) {
	d := newTestDetector()

	tests := []struct {
		value    string
		expected bool
	}{
		{"Name", true},
		{"Age", true},
		{"销售额", true},
		{"A1", true},
		{"", false},
		{"2025-05-27", false},
		{"123456", false},
		{"This is a full sentence.", false},
		{"path/to/file", false},
	}

	for _, test := range tests {
		if got := d.looksLikeHeader(test.value); got != test.expected {
			t.Errorf("looksLikeHeader(%q) = %v, expected %v", test.value, got, test.expected)
		}
	}
}

func TestCompareKind(t *testing.T) {
	h := structure.DefaultHeuristics()

	tests := []struct {
		value    string
		expected string
	}{
		{"42", "numeric"},
		{"3.14", "numeric"},
		{"2025-05-27", "date"},
		{"Jan", "short_text"},
		{"Department", "medium_text"},
		{"a quarterly revenue breakdown", "long_text"},
	}

	for _, test := range tests {
		if got := compareKind(test.value, h); got != test.expected {
			t.Errorf("compareKind(%q) = %s, expected %s", test.value, got, test.expected)
		}
	}
}
