package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"VentureScanner/internal/domain"
	"VentureScanner/internal/ports"
	"VentureScanner/internal/scoring"
)

const homepageClaim = "Company homepage (value prop & services)"

// Protocol runs the fixed per-company analysis pipeline: research,
// bottleneck extraction, readiness and Likely/Lovely scoring, composite
// metric calculation, citation assembly.
type Protocol struct {
	researcher ports.Researcher
	scorer     ports.ClaimScorer
	alpha      float64
	logger     *slog.Logger
	now        func() time.Time
}

var _ ports.Analyzer = (*Protocol)(nil)

// NewProtocol wires the evidence and scoring capabilities. alpha is the
// evidence-penalty coefficient; zero selects the default.
func NewProtocol(researcher ports.Researcher, scorer ports.ClaimScorer, alpha float64, logger *slog.Logger) *Protocol {
	if alpha == 0 {
		alpha = scoring.DefaultAlpha
	}
	return &Protocol{
		researcher: researcher,
		scorer:     scorer,
		alpha:      alpha,
		logger:     logger,
		now:        time.Now,
	}
}

// AnalyzeCompany executes the full pipeline for one company. Any stage
// error aborts this company alone; the caller records it on the task.
func (p *Protocol) AnalyzeCompany(ctx context.Context, company domain.CompanyDescriptor) (*domain.ScoreResult, error) {
	bundle, err := p.researcher.Research(ctx, company)
	if err != nil {
		return nil, fmt.Errorf("research %s: %w", company.Name, err)
	}

	bottlenecks, err := p.scorer.ExtractBottlenecks(ctx, bundle.Facts)
	if err != nil {
		return nil, fmt.Errorf("bottlenecks for %s: %w", company.Name, err)
	}
	if bottlenecks == nil {
		bottlenecks = []domain.Bottleneck{}
	}

	readinessRaw, err := p.scorer.ScoreReadiness(ctx, bundle.Facts)
	if err != nil {
		return nil, fmt.Errorf("readiness for %s: %w", company.Name, err)
	}

	llRaw, err := p.scorer.ScoreLikelyLovely(ctx, bundle.Facts, len(bundle.SuccessfulSources()))
	if err != nil {
		return nil, fmt.Errorf("likely/lovely for %s: %w", company.Name, err)
	}

	constriction := scoring.ConstrictionIndex(bottlenecks)
	readiness := scoring.ReadinessIndex(readinessRaw, bottlenecks, constriction.CI, p.alpha)
	likelyLovely, err := scoring.LikelyLovely(llRaw)
	if err != nil {
		return nil, fmt.Errorf("likely/lovely for %s: %w", company.Name, err)
	}

	asOfDate := p.now().Format("2006-01-02")
	citations := p.buildCitations(bundle, asOfDate)

	runConfig := scoring.RunConfig{Version: scoring.Version, Date: asOfDate, Alpha: p.alpha}
	configHash, err := scoring.ConfigHash(runConfig.Params())
	if err != nil {
		return nil, fmt.Errorf("config hash: %w", err)
	}

	result := &domain.ScoreResult{
		Company:       company.Name,
		Homepage:      bundle.Homepage,
		AsOfDate:      asOfDate,
		AnalysisRunID: company.RunID(asOfDate),
		ConfigHash:    configHash,
		Constriction:  constriction,
		Readiness:     readiness,
		LikelyLovely:  likelyLovely,
		Bottlenecks:   bottlenecks,
		Citations:     citations,
		Wayback:       bundle.Wayback,
	}

	p.info("analysis complete",
		"company", company.Name,
		"CI", constriction.CI,
		"RI_skeptical", readiness.RISkeptical,
		"CCF", likelyLovely.CCF)

	return result, nil
}

// buildCitations lists the homepage (if known) plus one entry per
// successfully scraped source.
func (p *Protocol) buildCitations(bundle *domain.EvidenceBundle, asOfDate string) []domain.Citation {
	citations := []domain.Citation{}

	if bundle.Homepage != "" {
		citations = append(citations, domain.Citation{
			Claim:    homepageClaim,
			URL:      bundle.Homepage,
			DateSeen: asOfDate,
		})
	}

	for _, src := range bundle.SuccessfulSources() {
		title := src.Title
		if title == "" {
			title = "Source"
		}
		title = truncateTitle(title, 100)
		citations = append(citations, domain.Citation{
			Claim:    "Source: " + title,
			URL:      src.URL,
			DateSeen: asOfDate,
		})
	}

	return citations
}

// truncateTitle cuts the title to at most limit bytes without splitting
// a rune, so citation claims stay valid UTF-8.
func truncateTitle(title string, limit int) string {
	if len(title) <= limit {
		return title
	}
	for limit > 0 && !utf8.RuneStart(title[limit]) {
		limit--
	}
	return title[:limit]
}

func (p *Protocol) info(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Info(msg, args...)
	}
}
