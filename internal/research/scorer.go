package research

import (
	"context"
	"fmt"
	"strings"

	"VentureScanner/internal/domain"
	"VentureScanner/internal/ports"
)

// Scorer implements the LLM scoring capability: bottleneck extraction,
// readiness levels, and Likely/Lovely ratings from company facts.
type Scorer struct {
	llm LLMClient
}

var _ ports.ClaimScorer = (*Scorer)(nil)

// NewScorer wires the completion client.
func NewScorer(llm LLMClient) *Scorer {
	return &Scorer{llm: llm}
}

// ExtractBottlenecks asks the model for the 3-7 strategic bottlenecks.
// An empty list is a valid answer.
func (s *Scorer) ExtractBottlenecks(ctx context.Context, facts domain.CompanyFacts) ([]domain.Bottleneck, error) {
	prompt := fmt.Sprintf(bottleneckPromptTemplate,
		facts.CompanyName,
		facts.Description,
		facts.Technology,
		facts.Stage,
		strings.Join(facts.TechnicalClaims, "\n"))

	var out struct {
		Bottlenecks []domain.Bottleneck `json:"bottlenecks"`
	}
	if err := s.llm.CompleteJSON(ctx, prompt, &out); err != nil {
		return nil, &domain.ExternalServiceError{Service: "llm", Err: fmt.Errorf("extract bottlenecks: %w", err)}
	}
	return out.Bottlenecks, nil
}

// ScoreReadiness asks the model for raw TRL/IRL/ORL/RCL levels.
func (s *Scorer) ScoreReadiness(ctx context.Context, facts domain.CompanyFacts) (domain.ReadinessRaw, error) {
	prompt := fmt.Sprintf(readinessPromptTemplate,
		facts.CompanyName,
		facts.Description,
		facts.Technology,
		facts.Stage,
		strings.Join(facts.TechnicalClaims, "\n"))

	var raw domain.ReadinessRaw
	if err := s.llm.CompleteJSON(ctx, prompt, &raw); err != nil {
		return domain.ReadinessRaw{}, &domain.ExternalServiceError{Service: "llm", Err: fmt.Errorf("score readiness: %w", err)}
	}
	return raw, nil
}

// ScoreLikelyLovely asks the model for the E/T/SP/LV ratings;
// evidenceSources tells it how many sources actually produced content.
func (s *Scorer) ScoreLikelyLovely(ctx context.Context, facts domain.CompanyFacts, evidenceSources int) (domain.LikelyLovelyRaw, error) {
	prompt := fmt.Sprintf(likelyLovelyPromptTemplate,
		facts.CompanyName,
		facts.Description,
		strings.Join(facts.TechnicalClaims, "\n"),
		formatSocialProof(facts.SocialProof),
		evidenceSources)

	var raw domain.LikelyLovelyRaw
	if err := s.llm.CompleteJSON(ctx, prompt, &raw); err != nil {
		return domain.LikelyLovelyRaw{}, &domain.ExternalServiceError{Service: "llm", Err: fmt.Errorf("score likely/lovely: %w", err)}
	}
	return raw, nil
}

func formatSocialProof(sp domain.SocialProof) string {
	var parts []string
	if len(sp.Accelerators) > 0 {
		parts = append(parts, "accelerators: "+strings.Join(sp.Accelerators, ", "))
	}
	if len(sp.Grants) > 0 {
		parts = append(parts, "grants: "+strings.Join(sp.Grants, ", "))
	}
	if len(sp.Customers) > 0 {
		parts = append(parts, "customers: "+strings.Join(sp.Customers, ", "))
	}
	if len(sp.Investors) > 0 {
		parts = append(parts, "investors: "+strings.Join(sp.Investors, ", "))
	}
	if len(sp.Advisors) > 0 {
		parts = append(parts, "advisors: "+strings.Join(sp.Advisors, ", "))
	}
	if len(parts) == 0 {
		return "none found"
	}
	return strings.Join(parts, "; ")
}
