package research

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"unicode/utf8"

	"VentureScanner/internal/domain"
	"VentureScanner/internal/drivers"
)

// fakeLLM replays canned JSON replies.
type fakeLLM struct {
	reply string
	err   error
	// last prompt received, for assertions.
	prompt string
}

func (f *fakeLLM) CompleteJSON(ctx context.Context, prompt string, out any) error {
	f.prompt = prompt
	if f.err != nil {
		return f.err
	}
	return json.Unmarshal([]byte(f.reply), out)
}

type fakeScraper struct {
	results []domain.SourceResult
	urls    []string
}

func (f *fakeScraper) ScrapeAll(ctx context.Context, urls []string) []domain.SourceResult {
	f.urls = urls
	return f.results
}

type fakeSources struct {
	results []drivers.Result
}

func (f *fakeSources) RunAll(ctx context.Context, company domain.CompanyDescriptor) []drivers.Result {
	return f.results
}

func TestResearchBuildsBundle(t *testing.T) {
	t.Parallel()

	snapshotURL := "https://web.archive.org/web/2024/https://acme.example"
	llm := &fakeLLM{reply: `{
		"company_name": "Acme Fusion",
		"description": "Compact fusion reactors",
		"technology": "High-field magnets",
		"stage": "prototype",
		"technical_claims": ["10x field strength"]
	}`}
	scraper := &fakeScraper{results: []domain.SourceResult{
		{URL: "https://acme.example", Title: "Acme", Text: "We build reactors.", Success: true},
		{URL: "https://news.example/acme", Error: "timeout"},
	}}
	sources := &fakeSources{results: []drivers.Result{
		{
			Source: "tavily",
			Status: drivers.StatusCompleted,
			Payload: drivers.Payload{
				URLs:     []string{"https://news.example/acme"},
				Snippets: []drivers.Snippet{{URL: "https://news.example/acme", Title: "News", Content: "Acme raised $2M"}},
			},
		},
		{
			Source: "wayback",
			Status: drivers.StatusCompleted,
			Payload: drivers.Payload{
				Wayback: &domain.WaybackAnnotation{SnapshotURL: &snapshotURL, Note: "closest snapshot"},
			},
		},
	}}

	r := NewResearcher(llm, scraper, sources, nil)
	bundle, err := r.Research(context.Background(), domain.CompanyDescriptor{
		Name:     "Acme Fusion",
		Homepage: "https://acme.example",
	})
	if err != nil {
		t.Fatalf("Research error: %v", err)
	}

	if bundle.Facts.CompanyName != "Acme Fusion" {
		t.Fatalf("unexpected facts: %+v", bundle.Facts)
	}
	// Homepage first, then the driver URL, deduplicated.
	if len(scraper.urls) != 2 || scraper.urls[0] != "https://acme.example" {
		t.Fatalf("unexpected scrape targets: %v", scraper.urls)
	}
	if bundle.Wayback.SnapshotURL == nil || *bundle.Wayback.SnapshotURL != snapshotURL {
		t.Fatalf("wayback annotation not propagated: %+v", bundle.Wayback)
	}
	if got := len(bundle.SuccessfulSources()); got != 1 {
		t.Fatalf("expected 1 successful source, got %d", got)
	}
}

func TestResearchFailsWithoutContent(t *testing.T) {
	t.Parallel()

	r := NewResearcher(&fakeLLM{}, &fakeScraper{}, &fakeSources{}, nil)
	_, err := r.Research(context.Background(), domain.CompanyDescriptor{Name: "Ghost Co"})
	if !errors.Is(err, domain.ErrResearchFailed) {
		t.Fatalf("expected ErrResearchFailed, got %v", err)
	}
}

func TestResearchWrapsLLMFailure(t *testing.T) {
	t.Parallel()

	llm := &fakeLLM{err: errors.New("llm down")}
	scraper := &fakeScraper{results: []domain.SourceResult{
		{URL: "https://acme.example", Text: "content", Success: true},
	}}

	r := NewResearcher(llm, scraper, &fakeSources{}, nil)
	_, err := r.Research(context.Background(), domain.CompanyDescriptor{
		Name:     "Acme",
		Homepage: "https://acme.example",
	})

	var svcErr *domain.ExternalServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("expected ExternalServiceError, got %v", err)
	}
	if svcErr.Service != "llm" {
		t.Fatalf("unexpected service tag: %s", svcErr.Service)
	}
}

func TestScorerExtractBottlenecks(t *testing.T) {
	t.Parallel()

	llm := &fakeLLM{reply: `{
		"bottlenecks": [
			{"id": "B1", "type": "technical", "location": "magnet yield", "severity_raw": 4, "severity_adj": 4, "verified": "partial", "owner": "CTO", "timeframe": "0-24m"}
		]
	}`}

	s := NewScorer(llm)
	bottlenecks, err := s.ExtractBottlenecks(context.Background(), domain.CompanyFacts{CompanyName: "Acme"})
	if err != nil {
		t.Fatalf("ExtractBottlenecks error: %v", err)
	}
	if len(bottlenecks) != 1 || bottlenecks[0].ID != "B1" || bottlenecks[0].Verified != domain.Partial {
		t.Fatalf("unexpected bottlenecks: %+v", bottlenecks)
	}
}

func TestScorerReadinessAndLikelyLovely(t *testing.T) {
	t.Parallel()

	s := NewScorer(&fakeLLM{reply: `{"TRL": 5.0, "IRL": 3.5, "ORL": 3.0, "RCL": 1.5}`})
	raw, err := s.ScoreReadiness(context.Background(), domain.CompanyFacts{CompanyName: "Acme"})
	if err != nil {
		t.Fatalf("ScoreReadiness error: %v", err)
	}
	if raw.TRL != 5.0 || raw.IRL != 3.5 || raw.ORL != 3.0 || raw.RCL != 1.5 {
		t.Fatalf("unexpected readiness: %+v", raw)
	}

	s = NewScorer(&fakeLLM{reply: `{"E": 2, "T": 4, "SP": 3, "LV": 4}`})
	ll, err := s.ScoreLikelyLovely(context.Background(), domain.CompanyFacts{CompanyName: "Acme"}, 3)
	if err != nil {
		t.Fatalf("ScoreLikelyLovely error: %v", err)
	}
	if ll.E != 2 || ll.T != 4 || ll.SP != 3 || ll.LV != 4 {
		t.Fatalf("unexpected ratings: %+v", ll)
	}
}

func TestTruncateKeepsRuneBoundary(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in    string
		limit int
		want  string
	}{
		{"short", 10, "short"},
		{"abcdef", 3, "abc"},
		{"aaäöü", 3, "aa"},
		{"ääää", 5, "ää"},
	}
	for _, tc := range cases {
		got := truncate(tc.in, tc.limit)
		if got != tc.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tc.in, tc.limit, got, tc.want)
		}
		if !utf8.ValidString(got) {
			t.Errorf("truncate(%q, %d) produced invalid UTF-8: %q", tc.in, tc.limit, got)
		}
	}
}

func TestScorerWrapsLLMFailure(t *testing.T) {
	t.Parallel()

	s := NewScorer(&fakeLLM{err: errors.New("rate limited")})
	_, err := s.ExtractBottlenecks(context.Background(), domain.CompanyFacts{})

	var svcErr *domain.ExternalServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("expected ExternalServiceError, got %v", err)
	}
}
