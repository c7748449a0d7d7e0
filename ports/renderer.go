package ports

import (
	"gridsense/domain/structure"
)

// RendererPort turns StructureReports into a consumer-facing document.
// Renderers read the report's public fields only and must not mutate it.
type RendererPort interface {
	// RenderMarkdown produces the human/LLM-facing Markdown digest
	RenderMarkdown(reports []*structure.StructureReport, title string) string

	// RenderHTML converts the Markdown digest to HTML for UI embedding
	RenderHTML(reports []*structure.StructureReport, title string) []byte
}
