package domain

// ReadinessRaw carries the four LLM-scored readiness levels before
// verification adjustment. Values are nominally on a 1-9 scale but are
// accepted as reported.
type ReadinessRaw struct {
	TRL float64 `json:"TRL"`
	IRL float64 `json:"IRL"`
	ORL float64 `json:"ORL"`
	RCL float64 `json:"RCL"`
}

// LikelyLovelyRaw carries the four LLM-scored ratings feeding the Claim
// Confidence Factor. Each must be in [1,5]; the scoring function
// validates the range.
type LikelyLovelyRaw struct {
	E  int `json:"E"`
	T  int `json:"T"`
	SP int `json:"SP"`
	LV int `json:"LV"`
}
