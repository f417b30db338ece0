package scoring

import (
	"math"

	"VentureScanner/internal/domain"
)

// DefaultAlpha is the skeptical evidence-penalty coefficient.
const DefaultAlpha = 0.25

const (
	readinessScale = 9.0

	// Verification scores discount claims by how well they are backed.
	vsVerified   = 1.0
	vsPartial    = 0.8
	vsUnverified = 0.6

	// With no bottlenecks there is nothing to verify; assume partial
	// verification and a 50% unverified population.
	defaultAvgVS  = vsPartial
	defaultPUnver = 0.5
)

func verificationScore(v domain.Verification) float64 {
	switch v {
	case domain.Verified:
		return vsVerified
	case domain.Unverified:
		return vsUnverified
	default:
		return vsPartial
	}
}

// ReadinessIndex computes the verification-adjusted readiness levels, the
// geometric-mean Readiness Index, the skeptical variant discounted by the
// Evidence Penalty, and the Readiness-Adjusted Risk against the given
// Constriction Index. Raw levels are taken as reported, without clamping
// to the nominal 1-9 scale.
func ReadinessIndex(raw domain.ReadinessRaw, bottlenecks []domain.Bottleneck, ci float64, alpha float64) domain.ReadinessMetrics {
	avgVS := defaultAvgVS
	pUnver := defaultPUnver
	if len(bottlenecks) > 0 {
		var vsSum float64
		unverified := 0
		for _, bn := range bottlenecks {
			vsSum += verificationScore(bn.Verified)
			// A missing tag defaults to partial and counts as unverified
			// evidence; an unrecognized tag does not.
			switch bn.Verified {
			case domain.Partial, domain.Unverified, "":
				unverified++
			}
		}
		avgVS = vsSum / float64(len(bottlenecks))
		pUnver = float64(unverified) / float64(len(bottlenecks))
	}

	m := domain.ReadinessMetrics{
		TRLRaw: raw.TRL,
		IRLRaw: raw.IRL,
		ORLRaw: raw.ORL,
		RCLRaw: raw.RCL,
		TRLAdj: raw.TRL * avgVS,
		IRLAdj: raw.IRL * avgVS,
		ORLAdj: raw.ORL * avgVS,
		RCLAdj: raw.RCL * avgVS,
	}

	// Geometric mean over the four normalized dimensions; a zero in any
	// dimension collapses the index to zero.
	product := (m.TRLAdj / readinessScale) *
		(m.IRLAdj / readinessScale) *
		(m.ORLAdj / readinessScale) *
		(m.RCLAdj / readinessScale)
	m.RI = math.Pow(product, 0.25)

	m.EP = 1.0 - alpha*pUnver
	m.RISkeptical = m.RI * m.EP
	m.RAR = m.RISkeptical * ci

	return m
}
