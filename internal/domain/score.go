package domain

// BottleneckType categorizes scale-up obstacles.
type BottleneckType string

const (
	BottleneckTechnical   BottleneckType = "technical"
	BottleneckMarket      BottleneckType = "market"
	BottleneckRegulatory  BottleneckType = "regulatory"
	BottleneckEconomics   BottleneckType = "economics"
	BottleneckCapital     BottleneckType = "capital"
	BottleneckIntegration BottleneckType = "integration"
	BottleneckEHS         BottleneckType = "ehs"
)

// Verification tags how well a bottleneck claim is backed by evidence.
type Verification string

const (
	Verified   Verification = "verified"
	Partial    Verification = "partial"
	Unverified Verification = "unverified"
)

// Bottleneck is one identified obstacle, immutable once extracted.
type Bottleneck struct {
	ID               string         `json:"id"`
	Type             BottleneckType `json:"type"`
	Location         string         `json:"location"`
	SeverityRaw      float64        `json:"severity_raw"`
	SeverityAdj      float64        `json:"severity_adj"`
	Verified         Verification   `json:"verified"`
	Owner            string         `json:"owner"`
	Timeframe        string         `json:"timeframe"`
	EvidenceStrength *int           `json:"evidence_strength,omitempty"`
	Citations        []string       `json:"citations,omitempty"`
}

// Citation ties a claim to the URL where it was observed.
type Citation struct {
	Claim    string `json:"claim"`
	URL      string `json:"url"`
	DateSeen string `json:"date_seen"`
}

// ConstrictionMetrics carries the bottleneck severity statistics and the
// fixed-scale Constriction Index derived from them.
type ConstrictionMetrics struct {
	K        int      `json:"k"`
	S        float64  `json:"S"`
	Md       float64  `json:"Md"`
	Mx       float64  `json:"Mx"`
	Cx       float64  `json:"Cx"`
	SNorm    float64  `json:"S_norm_fix"`
	MdNorm   float64  `json:"Md_norm_fix"`
	MxNorm   float64  `json:"Mx_norm_fix"`
	CxNorm   float64  `json:"Cx_norm_fix"`
	CI       float64  `json:"CI_fix"`
	CIMode   string   `json:"CI_mode"`
	CICohort *float64 `json:"CI_cohort"`
}

// ReadinessMetrics carries raw and verification-adjusted readiness levels
// together with the composite readiness indices.
type ReadinessMetrics struct {
	TRLRaw      float64 `json:"TRL_raw"`
	IRLRaw      float64 `json:"IRL_raw"`
	ORLRaw      float64 `json:"ORL_raw"`
	RCLRaw      float64 `json:"RCL_raw"`
	TRLAdj      float64 `json:"TRL_adj"`
	IRLAdj      float64 `json:"IRL_adj"`
	ORLAdj      float64 `json:"ORL_adj"`
	RCLAdj      float64 `json:"RCL_adj"`
	RI          float64 `json:"RI"`
	EP          float64 `json:"EP"`
	RISkeptical float64 `json:"RI_skeptical"`
	RAR         float64 `json:"RAR"`
}

// LikelyLovelyMetrics carries the plausibility/impact ratings and the
// Claim Confidence Factor.
type LikelyLovelyMetrics struct {
	E      int     `json:"E"`
	T      int     `json:"T"`
	SP     int     `json:"SP"`
	LSNorm float64 `json:"LS_norm"`
	LV     int     `json:"LV"`
	LVNorm float64 `json:"LV_norm"`
	CCF    float64 `json:"CCF"`
}

// WaybackAnnotation records the historical snapshot found for the
// company homepage, when the wayback source produced one.
type WaybackAnnotation struct {
	SnapshotURL      *string `json:"snapshot_url"`
	SnapshotDatetime *string `json:"snapshot_datetime"`
	Note             string  `json:"note"`
}

// ScoreResult is the complete analysis output for one company. Its JSON
// shape is the interchange contract consumed by persistence and export
// and must not change field names.
type ScoreResult struct {
	Company       string              `json:"company"`
	Homepage      string              `json:"homepage"`
	AsOfDate      string              `json:"as_of_date"`
	AnalysisRunID string              `json:"analysis_run_id"`
	ConfigHash    string              `json:"config_hash"`
	Constriction  ConstrictionMetrics `json:"constriction"`
	Readiness     ReadinessMetrics    `json:"readiness"`
	LikelyLovely  LikelyLovelyMetrics `json:"likely_lovely"`
	Bottlenecks   []Bottleneck        `json:"bottlenecks"`
	Citations     []Citation          `json:"citations"`
	Wayback       WaybackAnnotation   `json:"wayback"`
}
