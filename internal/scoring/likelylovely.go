package scoring

import (
	"fmt"

	"VentureScanner/internal/domain"
)

// LikelyLovely computes the normalized Likely score, the normalized
// Lovely value, and their product, the Claim Confidence Factor. All four
// ratings must be in [1,5]; anything else is a validation failure for
// this company alone.
func LikelyLovely(raw domain.LikelyLovelyRaw) (domain.LikelyLovelyMetrics, error) {
	for _, in := range []struct {
		name  string
		value int
	}{
		{"E", raw.E},
		{"T", raw.T},
		{"SP", raw.SP},
		{"LV", raw.LV},
	} {
		if in.value < 1 || in.value > 5 {
			return domain.LikelyLovelyMetrics{}, &domain.ValidationError{
				Field:   in.name,
				Message: fmt.Sprintf("must be between 1 and 5, got %d", in.value),
			}
		}
	}

	// Evidence matters most; theory and social proof share the remainder.
	lsNorm := (0.5*float64(raw.E) + 0.25*float64(raw.T) + 0.25*float64(raw.SP)) / 5.0
	lvNorm := float64(raw.LV) / 5.0

	return domain.LikelyLovelyMetrics{
		E:      raw.E,
		T:      raw.T,
		SP:     raw.SP,
		LSNorm: lsNorm,
		LV:     raw.LV,
		LVNorm: lvNorm,
		CCF:    lsNorm * lvNorm,
	}, nil
}
