package domain

// SourceResult is the tagged outcome of one evidence sub-source. A failed
// source never invalidates its siblings; the error stays on the entry.
type SourceResult struct {
	URL     string
	Title   string
	Text    string
	Success bool
	Error   string
}

// SocialProof groups credibility signals extracted from web content.
type SocialProof struct {
	Accelerators []string `json:"accelerators"`
	Grants       []string `json:"grants"`
	Customers    []string `json:"customers"`
	Investors    []string `json:"investors"`
	Advisors     []string `json:"advisors"`
}

// CompanyFacts is the structured company profile extracted by the LLM
// from scraped content.
type CompanyFacts struct {
	CompanyName      string      `json:"company_name"`
	Homepage         string      `json:"homepage"`
	Description      string      `json:"description"`
	ValueProposition string      `json:"value_proposition"`
	Technology       string      `json:"technology"`
	Industry         string      `json:"industry"`
	Stage            string      `json:"stage"`
	TechnicalClaims  []string    `json:"technical_claims"`
	SocialProof      SocialProof `json:"social_proof"`
	EvidenceURLs     []string    `json:"evidence_urls"`
}

// EvidenceBundle holds everything gathered while researching a company.
// It lives only for the duration of one task; scoring consumes it and
// only derived citations survive into the ScoreResult.
type EvidenceBundle struct {
	CompanyName string
	Homepage    string
	Facts       CompanyFacts
	Sources     []SourceResult
	Wayback     WaybackAnnotation
}

// SuccessfulSources returns the sources that produced content.
func (b *EvidenceBundle) SuccessfulSources() []SourceResult {
	out := make([]SourceResult, 0, len(b.Sources))
	for _, s := range b.Sources {
		if s.Success {
			out = append(out, s)
		}
	}
	return out
}
