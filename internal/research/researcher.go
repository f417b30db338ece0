package research

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"VentureScanner/internal/domain"
	"VentureScanner/internal/drivers"
	"VentureScanner/internal/ports"
)

// LLMClient is the slice of the completion client the research layer
// needs.
type LLMClient interface {
	CompleteJSON(ctx context.Context, prompt string, out any) error
}

// PageScraper fetches full page content for candidate URLs.
type PageScraper interface {
	ScrapeAll(ctx context.Context, urls []string) []domain.SourceResult
}

// SourceRunner fans out the registered data-source drivers.
type SourceRunner interface {
	RunAll(ctx context.Context, company domain.CompanyDescriptor) []drivers.Result
}

// Researcher implements the evidence capability: it combines data-source
// drivers, page scraping, and LLM fact extraction into one evidence
// bundle per company.
type Researcher struct {
	llm     LLMClient
	scraper PageScraper
	sources SourceRunner
	logger  *slog.Logger
}

var _ ports.Researcher = (*Researcher)(nil)

// NewResearcher wires the collaborators.
func NewResearcher(llm LLMClient, scraper PageScraper, sources SourceRunner, logger *slog.Logger) *Researcher {
	return &Researcher{
		llm:     llm,
		scraper: scraper,
		sources: sources,
		logger:  logger,
	}
}

// Research gathers evidence for one company. Individual source failures
// are kept on the bundle; the only hard failure is producing no usable
// content at all.
func (r *Researcher) Research(ctx context.Context, company domain.CompanyDescriptor) (*domain.EvidenceBundle, error) {
	bundle := &domain.EvidenceBundle{
		CompanyName: company.Name,
		Homepage:    company.Homepage,
		Wayback:     domain.WaybackAnnotation{Note: "wayback source did not run"},
	}

	var sourceResults []drivers.Result
	if r.sources != nil {
		sourceResults = r.sources.RunAll(ctx, company)
	}

	urls := candidateURLs(company, sourceResults)
	if r.scraper != nil && len(urls) > 0 {
		bundle.Sources = r.scraper.ScrapeAll(ctx, urls)
	}

	for _, sr := range sourceResults {
		if sr.Payload.Wayback != nil {
			bundle.Wayback = *sr.Payload.Wayback
		}
	}

	combined := combineContent(bundle.Sources, sourceResults)
	if strings.TrimSpace(combined) == "" {
		return nil, fmt.Errorf("%w: no content gathered for %s", domain.ErrResearchFailed, company.Name)
	}

	prompt := fmt.Sprintf(factsPromptTemplate, company.Name, truncate(combined, 20000))
	var facts domain.CompanyFacts
	if err := r.llm.CompleteJSON(ctx, prompt, &facts); err != nil {
		return nil, &domain.ExternalServiceError{Service: "llm", Err: fmt.Errorf("extract company facts: %w", err)}
	}
	if facts.Homepage == "" {
		facts.Homepage = company.Homepage
	}
	if bundle.Homepage == "" {
		bundle.Homepage = facts.Homepage
	}
	bundle.Facts = facts

	r.debug("research complete",
		"company", company.Name,
		"sources", len(bundle.Sources),
		"claims", len(facts.TechnicalClaims))

	return bundle, nil
}

// candidateURLs orders the homepage first, then driver-suggested URLs,
// deduplicated.
func candidateURLs(company domain.CompanyDescriptor, sourceResults []drivers.Result) []string {
	seen := map[string]struct{}{}
	var urls []string

	add := func(url string) {
		if url == "" {
			return
		}
		if _, ok := seen[url]; ok {
			return
		}
		seen[url] = struct{}{}
		urls = append(urls, url)
	}

	add(company.Homepage)
	for _, sr := range sourceResults {
		for _, u := range sr.Payload.URLs {
			add(u)
		}
	}

	return urls
}

// combineContent merges scraped page text and driver snippets into the
// context fed to fact extraction.
func combineContent(sources []domain.SourceResult, sourceResults []drivers.Result) string {
	var parts []string
	for _, s := range sources {
		if s.Success && s.Text != "" {
			parts = append(parts, fmt.Sprintf("URL: %s\n%s", s.URL, truncate(s.Text, 5000)))
		}
	}
	for _, sr := range sourceResults {
		for _, sn := range sr.Payload.Snippets {
			if sn.Content != "" {
				parts = append(parts, fmt.Sprintf("Source %s (%s): %s", sn.Title, sn.URL, sn.Content))
			}
		}
	}
	return strings.Join(parts, "\n\n---\n\n")
}

// truncate cuts text to at most limit bytes without splitting a rune.
func truncate(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	for limit > 0 && !utf8.RuneStart(text[limit]) {
		limit--
	}
	return text[:limit]
}

func (r *Researcher) debug(msg string, args ...any) {
	if r.logger != nil {
		r.logger.Debug(msg, args...)
	}
}
