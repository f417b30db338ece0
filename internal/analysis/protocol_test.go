package analysis

import (
	"context"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"VentureScanner/internal/domain"
	"VentureScanner/internal/scoring"
)

type fakeResearcher struct {
	bundle *domain.EvidenceBundle
	err    error
}

func (f *fakeResearcher) Research(ctx context.Context, company domain.CompanyDescriptor) (*domain.EvidenceBundle, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.bundle, nil
}

type fakeScorer struct {
	bottlenecks []domain.Bottleneck
	readiness   domain.ReadinessRaw
	likely      domain.LikelyLovelyRaw
	err         error
}

func (f *fakeScorer) ExtractBottlenecks(ctx context.Context, facts domain.CompanyFacts) ([]domain.Bottleneck, error) {
	return f.bottlenecks, f.err
}

func (f *fakeScorer) ScoreReadiness(ctx context.Context, facts domain.CompanyFacts) (domain.ReadinessRaw, error) {
	return f.readiness, f.err
}

func (f *fakeScorer) ScoreLikelyLovely(ctx context.Context, facts domain.CompanyFacts, evidenceSources int) (domain.LikelyLovelyRaw, error) {
	return f.likely, f.err
}

func testBundle() *domain.EvidenceBundle {
	return &domain.EvidenceBundle{
		CompanyName: "Acme Fusion",
		Homepage:    "https://acme.example",
		Facts:       domain.CompanyFacts{CompanyName: "Acme Fusion"},
		Sources: []domain.SourceResult{
			{URL: "https://acme.example", Title: "Acme Fusion — Home", Success: true},
			{URL: "https://down.example", Error: "timeout"},
		},
		Wayback: domain.WaybackAnnotation{Note: "no archived snapshot found"},
	}
}

func TestBuildCitationsKeepsLongTitlesValidUTF8(t *testing.T) {
	t.Parallel()

	// 99 ASCII bytes followed by multi-byte runes, so the 100-byte cut
	// would land mid-rune without boundary handling.
	bundle := testBundle()
	bundle.Sources = []domain.SourceResult{
		{URL: "https://acme.example", Title: strings.Repeat("a", 99) + "äöü", Success: true},
	}

	researcher := &fakeResearcher{bundle: bundle}
	scorer := &fakeScorer{likely: domain.LikelyLovelyRaw{E: 3, T: 3, SP: 3, LV: 3}}

	p := NewProtocol(researcher, scorer, 0, nil)
	result, err := p.AnalyzeCompany(context.Background(), domain.CompanyDescriptor{
		Name:     "Acme Fusion",
		Homepage: "https://acme.example",
	})
	require.NoError(t, err)

	require.Len(t, result.Citations, 2)
	claim := result.Citations[1].Claim
	assert.True(t, utf8.ValidString(claim), "claim must be valid UTF-8: %q", claim)
	assert.Equal(t, "Source: "+strings.Repeat("a", 99), claim)
}

func TestAnalyzeCompanyAssemblesResult(t *testing.T) {
	t.Parallel()

	researcher := &fakeResearcher{bundle: testBundle()}
	scorer := &fakeScorer{
		bottlenecks: []domain.Bottleneck{
			{ID: "B1", Type: domain.BottleneckTechnical, SeverityAdj: 4, Verified: domain.Partial},
			{ID: "B2", Type: domain.BottleneckMarket, SeverityAdj: 2, Verified: domain.Verified},
		},
		readiness: domain.ReadinessRaw{TRL: 5, IRL: 4, ORL: 3, RCL: 2},
		likely:    domain.LikelyLovelyRaw{E: 3, T: 4, SP: 2, LV: 4},
	}

	p := NewProtocol(researcher, scorer, 0, nil)
	p.now = func() time.Time { return time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC) }

	result, err := p.AnalyzeCompany(context.Background(), domain.CompanyDescriptor{
		Name:     "Acme Fusion",
		Homepage: "https://acme.example",
	})
	require.NoError(t, err)

	assert.Equal(t, "Acme Fusion", result.Company)
	assert.Equal(t, "2026-09-01", result.AsOfDate)
	assert.Equal(t, "acme_fusion_2026-09-01", result.AnalysisRunID)
	assert.Len(t, result.ConfigHash, 64)

	assert.Equal(t, 2, result.Constriction.K)
	assert.InDelta(t, 6.0, result.Constriction.S, 1e-9)
	assert.Greater(t, result.Readiness.RI, 0.0)
	assert.LessOrEqual(t, result.Readiness.RISkeptical, result.Readiness.RI)
	assert.InDelta(t, result.Readiness.RISkeptical*result.Constriction.CI, result.Readiness.RAR, 1e-9)
	assert.InDelta(t, result.LikelyLovely.LSNorm*result.LikelyLovely.LVNorm, result.LikelyLovely.CCF, 1e-9)

	// Homepage citation plus the one successful source.
	require.Len(t, result.Citations, 2)
	assert.Equal(t, "https://acme.example", result.Citations[0].URL)
	assert.Equal(t, "Source: Acme Fusion — Home", result.Citations[1].Claim)
	assert.Equal(t, "no archived snapshot found", result.Wayback.Note)
}

func TestAnalyzeCompanyReproducibleConfigHash(t *testing.T) {
	t.Parallel()

	fixed := func() time.Time { return time.Date(2026, time.September, 1, 8, 0, 0, 0, time.UTC) }
	newProtocol := func() *Protocol {
		p := NewProtocol(&fakeResearcher{bundle: testBundle()}, &fakeScorer{
			readiness: domain.ReadinessRaw{TRL: 5, IRL: 4, ORL: 3, RCL: 2},
			likely:    domain.LikelyLovelyRaw{E: 3, T: 3, SP: 3, LV: 3},
		}, scoring.DefaultAlpha, nil)
		p.now = fixed
		return p
	}

	first, err := newProtocol().AnalyzeCompany(context.Background(), domain.CompanyDescriptor{Name: "Acme"})
	require.NoError(t, err)
	second, err := newProtocol().AnalyzeCompany(context.Background(), domain.CompanyDescriptor{Name: "Acme"})
	require.NoError(t, err)

	assert.Equal(t, first.ConfigHash, second.ConfigHash)
}

func TestAnalyzeCompanyEmptyBottlenecks(t *testing.T) {
	t.Parallel()

	p := NewProtocol(&fakeResearcher{bundle: testBundle()}, &fakeScorer{
		readiness: domain.ReadinessRaw{TRL: 5, IRL: 4, ORL: 3, RCL: 2},
		likely:    domain.LikelyLovelyRaw{E: 3, T: 3, SP: 3, LV: 3},
	}, 0, nil)

	result, err := p.AnalyzeCompany(context.Background(), domain.CompanyDescriptor{Name: "Acme"})
	require.NoError(t, err)

	assert.Equal(t, 0.0, result.Constriction.CI)
	assert.NotNil(t, result.Bottlenecks)
	assert.Empty(t, result.Bottlenecks)
	// Defaults for the empty list: avg VS 0.8, p_unver 0.5.
	assert.InDelta(t, 1-scoring.DefaultAlpha*0.5, result.Readiness.EP, 1e-9)
}

func TestAnalyzeCompanyPropagatesResearchError(t *testing.T) {
	t.Parallel()

	p := NewProtocol(&fakeResearcher{err: domain.ErrResearchFailed}, &fakeScorer{}, 0, nil)
	_, err := p.AnalyzeCompany(context.Background(), domain.CompanyDescriptor{Name: "Ghost Co"})
	require.ErrorIs(t, err, domain.ErrResearchFailed)
}

func TestAnalyzeCompanyRejectsOutOfRangeRatings(t *testing.T) {
	t.Parallel()

	p := NewProtocol(&fakeResearcher{bundle: testBundle()}, &fakeScorer{
		readiness: domain.ReadinessRaw{TRL: 5, IRL: 4, ORL: 3, RCL: 2},
		likely:    domain.LikelyLovelyRaw{E: 6, T: 3, SP: 3, LV: 3},
	}, 0, nil)

	_, err := p.AnalyzeCompany(context.Background(), domain.CompanyDescriptor{Name: "Acme"})
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "E", vErr.Field)
}
