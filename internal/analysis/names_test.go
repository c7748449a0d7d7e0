package analysis

import (
	"reflect"
	"testing"

	"gridsense/domain/structure"
)

func TestHeaderNamesFlat(t *testing.T) {
	g := buildModel(newMemSheet("Flat", [][]string{
		{"Name", "Age", "City"},
		{"Alice", "30", "NYC"},
	}))
	region, _ := NewRegionClusterer().Cluster(g)

	names := headerNames(g, region, 1, structure.DefaultConfig())

	expected := []string{"Name", "Age", "City"}
	if !reflect.DeepEqual(names, expected) {
		t.Errorf("Expected %v, got %v", expected, names)
	}
}

// TestHeaderNamesTwoLevel: a merged group row above the header joins
// into each child label.
func TestHeaderNamesTwoLevel(t *testing.T) {
	g := buildModel(newMemSheet("Grouped",
		[][]string{
			{"Q1 Sales", "", ""},
			{"Jan", "Feb", "Mar"},
			{"100", "150", "200"},
		},
		mergeRange(1, 1, 1, 3),
	))
	region, _ := NewRegionClusterer().Cluster(g)

	names := headerNames(g, region, 2, structure.DefaultConfig())

	expected := []string{"Q1 Sales-Jan", "Q1 Sales-Feb", "Q1 Sales-Mar"}
	if !reflect.DeepEqual(names, expected) {
		t.Errorf("Expected %v, got %v", expected, names)
	}
}

// TestHeaderNamesThreeLevel: three stacked levels switch to the
// multi-level separator.
func TestHeaderNamesThreeLevel(t *testing.T) {
	g := buildModel(newMemSheet("Deep",
		[][]string{
			{"Sales", "Sales", ""},
			{"Q1", "Q2", ""},
			{"Jan", "Apr", "Notes"},
			{"100", "200", "ok"},
		},
		mergeRange(1, 1, 1, 2),
	))
	region, _ := NewRegionClusterer().Cluster(g)

	names := headerNames(g, region, 3, structure.DefaultConfig())

	expected := []string{"Sales | Q1 | Jan", "Sales | Q2 | Apr", "Notes"}
	if !reflect.DeepEqual(names, expected) {
		t.Errorf("Expected %v, got %v", expected, names)
	}
}

func TestDedupeNames(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		minCol   int
		expected []string
	}{
		{
			name:     "duplicates get numeric suffixes",
			input:    []string{"Total", "Total", "Total"},
			minCol:   1,
			expected: []string{"Total", "Total_2", "Total_3"},
		},
		{
			name:     "blanks become positional labels",
			input:    []string{"Name", "", ""},
			minCol:   1,
			expected: []string{"Name", "Column 2", "Column 3"},
		},
		{
			name:     "positional labels honor the region offset",
			input:    []string{""},
			minCol:   4,
			expected: []string{"Column 4"},
		},
		{
			name:     "first occurrence stays untouched",
			input:    []string{"A", "B", "A"},
			minCol:   1,
			expected: []string{"A", "B", "A_2"},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := dedupeNames(test.input, test.minCol)
			if !reflect.DeepEqual(got, test.expected) {
				t.Errorf("Expected %v, got %v", test.expected, got)
			}
		})
	}
}

// TestHeaderBandIgnoresDistantMerges: a merge more than two rows above
// the header is a title, not a name level.
func TestHeaderBandIgnoresDistantMerges(t *testing.T) {
	g := buildModel(newMemSheet("Titled",
		[][]string{
			{"Annual Report", "", ""},
			{"", "", ""},
			{"", "", ""},
			{"", "", ""},
			{"Name", "Age", "City"},
			{"Alice", "30", "NYC"},
		},
		mergeRange(1, 1, 1, 3),
	))
	region, _ := NewRegionClusterer().Cluster(g)

	names := headerNames(g, region, 5, structure.DefaultConfig())

	expected := []string{"Name", "Age", "City"}
	if !reflect.DeepEqual(names, expected) {
		t.Errorf("Expected title to be excluded, got %v", names)
	}
}
