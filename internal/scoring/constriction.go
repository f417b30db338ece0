package scoring

import (
	"sort"

	"VentureScanner/internal/domain"
)

const (
	// Fixed-scale normalization constants: severity is on a 0-5 scale and
	// the protocol assumes at most 7 bottlenecks, so the severity sum S
	// tops out at 35 for well-formed inputs.
	severityScale  = 5.0
	severitySumMax = 35.0

	ciModeFixed = "fixed"
)

// ConstrictionIndex computes the bottleneck severity statistics and the
// fixed-scale Constriction Index. An empty bottleneck list yields all
// zeros. Inputs beyond the assumed scale are accepted as-is; no clamping
// happens here.
func ConstrictionIndex(bottlenecks []domain.Bottleneck) domain.ConstrictionMetrics {
	m := domain.ConstrictionMetrics{CIMode: ciModeFixed}
	if len(bottlenecks) == 0 {
		return m
	}

	severities := make([]float64, len(bottlenecks))
	for i, bn := range bottlenecks {
		severities[i] = bn.SeverityAdj
	}

	m.K = len(severities)
	for _, s := range severities {
		m.S += s
		if s > m.Mx {
			m.Mx = s
		}
	}
	m.Md = median(severities)
	m.Cx = m.Mx - m.Md

	m.SNorm = m.S / severitySumMax
	m.MdNorm = m.Md / severityScale
	m.MxNorm = m.Mx / severityScale
	m.CxNorm = m.Cx / severityScale

	// Weighted blend: severity sum dominates, then max, median, spread.
	m.CI = 0.4*m.SNorm + 0.3*m.MxNorm + 0.2*m.MdNorm + 0.1*m.CxNorm

	return m
}

func median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
