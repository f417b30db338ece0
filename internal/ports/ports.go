package ports

import (
	"context"

	"VentureScanner/internal/domain"
)

// Researcher gathers raw facts about a company from one or more sources.
// Individual source failures are recorded on the bundle, never raised;
// an error means no usable facts could be produced at all.
type Researcher interface {
	Research(ctx context.Context, company domain.CompanyDescriptor) (*domain.EvidenceBundle, error)
}

// ClaimScorer turns extracted company facts into structured scoring
// inputs via an LLM backend.
type ClaimScorer interface {
	ExtractBottlenecks(ctx context.Context, facts domain.CompanyFacts) ([]domain.Bottleneck, error)
	ScoreReadiness(ctx context.Context, facts domain.CompanyFacts) (domain.ReadinessRaw, error)
	ScoreLikelyLovely(ctx context.Context, facts domain.CompanyFacts, evidenceSources int) (domain.LikelyLovelyRaw, error)
}

// AnalysisRepository persists completed score results keyed by their
// analysis run identifier (unique per company per day).
type AnalysisRepository interface {
	SaveResult(ctx context.Context, company domain.CompanyDescriptor, result *domain.ScoreResult) error
	GetResult(ctx context.Context, runID string) (*domain.ScoreResult, error)
}

// Exporter writes a completed score result to an external representation
// (JSON file, spreadsheet, ...).
type Exporter interface {
	Export(ctx context.Context, result *domain.ScoreResult) error
}

// Analyzer runs the complete analysis protocol for one company.
type Analyzer interface {
	AnalyzeCompany(ctx context.Context, company domain.CompanyDescriptor) (*domain.ScoreResult, error)
}
