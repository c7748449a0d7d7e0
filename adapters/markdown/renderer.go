package markdown

import (
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"gridsense/domain/grid"
	"gridsense/domain/structure"
)

const (
	mergeListingCap = 15
	valueListCap    = 3
)

// Renderer produces the human/LLM-facing structure digest. It reads
// only the report's public fields and never mutates them.
type Renderer struct{}

// NewRenderer creates a renderer
func NewRenderer() *Renderer {
	return &Renderer{}
}

// RenderMarkdown renders one digest covering all sheet reports
func (r *Renderer) RenderMarkdown(reports []*structure.StructureReport, title string) string {
	var b strings.Builder
	b.WriteString("# Workbook structure analysis\n")
	if title != "" {
		fmt.Fprintf(&b, "**File**: %s\n", title)
	}
	b.WriteString("\n")

	for _, report := range reports {
		r.renderSheet(&b, report)
		b.WriteString("\n")
	}
	return b.String()
}

// RenderHTML converts the Markdown digest to HTML for UI embedding
func (r *Renderer) RenderHTML(reports []*structure.StructureReport, title string) []byte {
	md := r.RenderMarkdown(reports, title)
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags})
	return markdown.ToHTML([]byte(md), p, renderer)
}

func (r *Renderer) renderSheet(b *strings.Builder, report *structure.StructureReport) {
	fmt.Fprintf(b, "## %s\n", report.SheetName)

	if report.IsEmpty() {
		b.WriteString("*This worksheet is empty.*\n")
		return
	}

	fmt.Fprintf(b, "**Scale**: %d rows × %d columns\n", report.MaxRow, report.MaxCol)
	switch report.TableKind {
	case structure.TableComplex:
		fmt.Fprintf(b, "**Type**: complex table (%d merged regions)\n", report.Merges.MergeCount)
	default:
		b.WriteString("**Type**: standard two-dimensional table\n")
	}

	fmt.Fprintf(b, "**Header position**: `%s` (row %d, confidence %.2f)\n",
		grid.CellRef(report.Header.Row, regionMinCol(report)), report.Header.Row, report.Header.Confidence)
	fmt.Fprintf(b, "**Data start**: `%s` (row %d)\n",
		grid.CellRef(report.DataStartRow, regionMinCol(report)), report.DataStartRow)

	if report.Region != nil {
		fmt.Fprintf(b, "**Region**: %s density %.2f (%d non-empty cells)\n",
			report.Region.Classification, report.Region.Density, report.Region.NonEmptyCells)
	}

	b.WriteString("\n**Fields**:\n")
	for i, field := range report.Fields {
		r.renderField(b, i+1, field)
	}

	r.renderMerges(b, report)
	r.renderWarnings(b, report)
}

func (r *Renderer) renderField(b *strings.Builder, ordinal int, field structure.FieldDescriptor) {
	fmt.Fprintf(b, "%d. `%s` **%s** (%s", ordinal, field.ColumnLabel, field.Name, field.PrimaryType)
	if field.IsKeyField {
		b.WriteString(", key field")
	}
	b.WriteString(")")

	switch {
	case len(field.EnumeratedValues) > 0:
		fmt.Fprintf(b, " (filter values: %s)", strings.Join(field.EnumeratedValues, ", "))
	case len(field.SampleValues) > 0:
		shown := field.SampleValues
		if len(shown) > valueListCap {
			shown = shown[:valueListCap]
		}
		fmt.Fprintf(b, " (examples: %s...)", strings.Join(shown, ", "))
	}

	if field.NumericStats != nil {
		fmt.Fprintf(b, " [min %.4g, max %.4g, mean %.4g]",
			field.NumericStats.Min, field.NumericStats.Max, field.NumericStats.Mean)
	}
	if field.NullRatio > 0 {
		fmt.Fprintf(b, " (%.0f%% missing)", field.NullRatio*100)
	}
	b.WriteString("\n")
}

func (r *Renderer) renderMerges(b *strings.Builder, report *structure.StructureReport) {
	if report.Merges.MergeCount == 0 {
		return
	}
	b.WriteString("\n**Merged regions**:\n")
	fmt.Fprintf(b, "- %d merged regions, %d in the header band\n",
		report.Merges.MergeCount, report.Merges.HeaderBandMerges)
	if len(report.Merges.Ranges) > 0 {
		listing := report.Merges.Ranges
		if len(listing) > mergeListingCap {
			listing = listing[:mergeListingCap]
		}
		fmt.Fprintf(b, "- ranges: %s", strings.Join(listing, ", "))
		if report.Merges.MergeCount > len(listing) {
			fmt.Fprintf(b, " (+%d more)", report.Merges.MergeCount-len(listing))
		}
		b.WriteString("\n")
	}
	if report.Merges.ComplexStructure {
		b.WriteString("- complex structure: verify field boundaries manually\n")
	}
}

func (r *Renderer) renderWarnings(b *strings.Builder, report *structure.StructureReport) {
	if len(report.Warnings) == 0 {
		return
	}
	b.WriteString("\n**Warnings**:\n")
	for _, w := range report.Warnings {
		fmt.Fprintf(b, "- %s\n", w)
	}
}

func regionMinCol(report *structure.StructureReport) int {
	if report.Region != nil {
		return report.Region.MinCol
	}
	return 1
}
