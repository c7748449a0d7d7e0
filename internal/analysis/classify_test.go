package analysis

import (
	"math"
	"testing"

	"gridsense/domain/structure"
)

func newTestClassifier() *FieldClassifier {
	return NewFieldClassifier(structure.DefaultHeuristics(), nil)
}

// TestClassifyValue covers the type priority chain on single values
func TestClassifyValue(t *testing.T) {
	c := newTestClassifier()

	tests := []struct {
		name     string
		value    string
		expected structure.FieldType
	}{
		{"long digit run is an identifier", "123456", structure.FieldIdentifier},
		{"short digit run is numeric", "30", structure.FieldNumeric},
		{"decimal is numeric", "3.14", structure.FieldNumeric},
		{"prefixed code is an identifier", "EMP001", structure.FieldIdentifier},
		{"iso date", "2025-05-27", structure.FieldDate},
		{"us date layout", "01/02/2006", structure.FieldDate},
		{"boolean token", "yes", structure.FieldBoolean},
		{"chinese boolean token", "是", structure.FieldBoolean},
		{"short text", "NYC", structure.FieldShortText},
		{"medium text", "Department", structure.FieldMediumText},
		{"long text", "a free-form note exceeding twenty characters", structure.FieldLongText},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			kind, _ := c.classifyValue(test.value)
			if kind != test.expected {
				t.Errorf("classifyValue(%q) = %s, expected %s", test.value, kind, test.expected)
			}
		})
	}
}

// TestClassifyColumns runs the classifier over a small sheet and
// checks per-field types, stats, and characteristics.
func TestClassifyColumns(t *testing.T) {
	g := buildModel(newMemSheet("People", [][]string{
		{"ID", "Name", "Age", "Joined", "Active"},
		{"EMP001", "Alice", "30", "2024-01-15", "yes"},
		{"EMP002", "Bob", "25", "2024-02-20", "no"},
		{"EMP003", "Carol", "41", "2024-03-05", "yes"},
		{"EMP004", "Dave", "33", "2024-04-11", "no"},
	}))
	region, ok := NewRegionClusterer().Cluster(g)
	if !ok {
		t.Fatal("Expected a region")
	}

	names := []string{"ID", "Name", "Age", "Joined", "Active"}
	fields, warnings := newTestClassifier().Classify(g, region, 2, names, structure.DefaultConfig())

	if len(warnings) != 0 {
		t.Fatalf("Expected no warnings, got %v", warnings)
	}
	if len(fields) != 5 {
		t.Fatalf("Expected 5 fields, got %d", len(fields))
	}

	id := fields[0]
	if id.PrimaryType != structure.FieldIdentifier {
		t.Errorf("Expected ID column to be identifier, got %s", id.PrimaryType)
	}
	if !id.IsKeyField {
		t.Error("Expected ID column to be a key field")
	}
	if len(id.Patterns) == 0 || id.Patterns[0] != "prefix-digits" {
		t.Errorf("Expected prefix-digits pattern, got %v", id.Patterns)
	}
	if id.UniqueRatio != 1.0 {
		t.Errorf("Expected unique ratio 1.0, got %.2f", id.UniqueRatio)
	}

	age := fields[2]
	if age.PrimaryType != structure.FieldNumeric {
		t.Errorf("Expected Age column to be numeric, got %s", age.PrimaryType)
	}
	if age.NumericStats == nil {
		t.Fatal("Expected numeric stats for Age")
	}
	if age.NumericStats.Min != 25 || age.NumericStats.Max != 41 {
		t.Errorf("Unexpected min/max: %.0f/%.0f", age.NumericStats.Min, age.NumericStats.Max)
	}
	if math.Abs(age.NumericStats.Mean-32.25) > 1e-9 {
		t.Errorf("Expected mean 32.25, got %f", age.NumericStats.Mean)
	}

	joined := fields[3]
	if joined.PrimaryType != structure.FieldDate {
		t.Errorf("Expected Joined column to be date, got %s", joined.PrimaryType)
	}

	active := fields[4]
	if active.PrimaryType != structure.FieldBoolean {
		t.Errorf("Expected Active column to be boolean, got %s", active.PrimaryType)
	}

	name := fields[1]
	if !name.PrimaryType.IsText() {
		t.Errorf("Expected Name column to be text, got %s", name.PrimaryType)
	}
	if name.TextStats == nil {
		t.Fatal("Expected text stats for Name")
	}
	if name.TextStats.MinLength != 3 || name.TextStats.MaxLength != 5 {
		t.Errorf("Unexpected text lengths: %d/%d", name.TextStats.MinLength, name.TextStats.MaxLength)
	}
}

// TestClassifyMixedColumn: the dominant type wins and confidence
// reflects its share of the sample.
func TestClassifyMixedColumn(t *testing.T) {
	g := buildModel(newMemSheet("Mixed", [][]string{
		{"Value"},
		{"10"},
		{"20"},
		{"30"},
		{"n/a"},
	}))
	region, _ := NewRegionClusterer().Cluster(g)

	fields, _ := newTestClassifier().Classify(g, region, 2, []string{"Value"}, structure.DefaultConfig())

	f := fields[0]
	if f.PrimaryType != structure.FieldNumeric {
		t.Errorf("Expected numeric dominant type, got %s", f.PrimaryType)
	}
	if math.Abs(f.Confidence-0.75) > 1e-9 {
		t.Errorf("Expected confidence 0.75, got %.2f", f.Confidence)
	}
}

// TestClassifyNullRatio: empty cells count against the null ratio and
// a mostly-empty column is flagged.
func TestClassifyNullRatio(t *testing.T) {
	g := buildModel(newMemSheet("Nulls", [][]string{
		{"A", "B"},
		{"1", "x"},
		{"2", ""},
		{"3", ""},
		{"4", ""},
		{"5", ""},
	}))
	region, _ := NewRegionClusterer().Cluster(g)

	fields, _ := newTestClassifier().Classify(g, region, 2, []string{"A", "B"}, structure.DefaultConfig())

	b := fields[1]
	if math.Abs(b.NullRatio-0.8) > 1e-9 {
		t.Errorf("Expected null ratio 0.8, got %.2f", b.NullRatio)
	}
	if !hasCharacteristic(b, structure.CharacteristicHighNullRatio) {
		t.Errorf("Expected high-null-ratio characteristic, got %v", b.Characteristics)
	}
}

// TestClassifyEmptyColumn: a column with no values degrades to text
// with zero confidence instead of erroring.
func TestClassifyEmptyColumn(t *testing.T) {
	g := buildModel(newMemSheet("Gap", [][]string{
		{"A", "B"},
		{"1", ""},
		{"2", ""},
	}))
	region, _ := NewRegionClusterer().Cluster(g)

	fields, warnings := newTestClassifier().Classify(g, region, 2, []string{"A", "B"}, structure.DefaultConfig())

	if len(warnings) != 0 {
		t.Fatalf("Expected no warnings for an empty column, got %v", warnings)
	}
	b := fields[1]
	if b.PrimaryType != structure.FieldMediumText {
		t.Errorf("Expected empty column to default to medium text, got %s", b.PrimaryType)
	}
	if b.Confidence != 0 {
		t.Errorf("Expected zero confidence, got %.2f", b.Confidence)
	}
}

// TestKeyFieldByUniqueness: a fully unique column is a key field even
// without an id-like name.
func TestKeyFieldByUniqueness(t *testing.T) {
	g := buildModel(newMemSheet("Unique", [][]string{
		{"Email"},
		{"a@x.com"},
		{"b@x.com"},
		{"c@x.com"},
		{"d@x.com"},
	}))
	region, _ := NewRegionClusterer().Cluster(g)

	fields, _ := newTestClassifier().Classify(g, region, 2, []string{"Email"}, structure.DefaultConfig())

	f := fields[0]
	if !f.IsKeyField {
		t.Error("Expected fully unique column to be a key field")
	}
	if !hasCharacteristic(f, structure.CharacteristicUniqueValued) {
		t.Errorf("Expected unique-valued characteristic, got %v", f.Characteristics)
	}
}

func TestNumericStatsStdDev(t *testing.T) {
	ns, err := numericStats([]string{"2", "4", "4", "4", "5", "5", "7", "9"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if ns.Median != 4.5 {
		t.Errorf("Expected median 4.5, got %f", ns.Median)
	}
	// Sample standard deviation of the classic example set
	if math.Abs(ns.StdDev-2.138089935) > 1e-6 {
		t.Errorf("Unexpected stddev %f", ns.StdDev)
	}

	single, err := numericStats([]string{"42"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if single.StdDev != 0 {
		t.Errorf("Expected zero stddev for a single value, got %f", single.StdDev)
	}
}

func hasCharacteristic(f structure.FieldDescriptor, c string) bool {
	for _, have := range f.Characteristics {
		if have == c {
			return true
		}
	}
	return false
}
