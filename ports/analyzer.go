package ports

import (
	"context"

	"gridsense/domain/structure"
)

// AnalyzerPort runs structural inference over one worksheet or a whole
// workbook. Implementations are pure batch computations; the context is
// only consulted between sheets when analyzing a workbook.
type AnalyzerPort interface {
	AnalyzeSheet(ctx context.Context, source SheetSource, cfg structure.AnalysisConfig) (*structure.StructureReport, error)
	AnalyzeWorkbook(ctx context.Context, source WorkbookSource, cfg structure.AnalysisConfig) ([]*structure.StructureReport, error)
}
