package scoring

import (
	"math"
	"testing"

	"VentureScanner/internal/domain"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestConstrictionIndexEmpty(t *testing.T) {
	t.Parallel()

	m := ConstrictionIndex(nil)
	if m.K != 0 || m.CI != 0 {
		t.Fatalf("expected zero metrics for empty list, got k=%d CI=%f", m.K, m.CI)
	}
	if m.CIMode != "fixed" {
		t.Fatalf("unexpected CI mode: %s", m.CIMode)
	}
	if m.CICohort != nil {
		t.Fatalf("CI_cohort must stay null")
	}
}

func TestConstrictionIndexTwoBottlenecks(t *testing.T) {
	t.Parallel()

	bottlenecks := []domain.Bottleneck{
		{ID: "B1", SeverityAdj: 2},
		{ID: "B2", SeverityAdj: 4},
	}

	m := ConstrictionIndex(bottlenecks)

	if m.K != 2 {
		t.Fatalf("expected k=2, got %d", m.K)
	}
	if !almostEqual(m.S, 6) || !almostEqual(m.Md, 3) || !almostEqual(m.Mx, 4) || !almostEqual(m.Cx, 1) {
		t.Fatalf("unexpected statistics: S=%f Md=%f Mx=%f Cx=%f", m.S, m.Md, m.Mx, m.Cx)
	}

	want := 0.4*(6.0/35.0) + 0.3*(4.0/5.0) + 0.2*(3.0/5.0) + 0.1*(1.0/5.0)
	if !almostEqual(m.CI, want) {
		t.Fatalf("expected CI=%f, got %f", want, m.CI)
	}
}

func TestConstrictionIndexOddCountMedian(t *testing.T) {
	t.Parallel()

	bottlenecks := []domain.Bottleneck{
		{SeverityAdj: 5},
		{SeverityAdj: 1},
		{SeverityAdj: 3},
	}

	m := ConstrictionIndex(bottlenecks)
	if !almostEqual(m.Md, 3) {
		t.Fatalf("expected median 3, got %f", m.Md)
	}
	if !almostEqual(m.Mx, 5) {
		t.Fatalf("expected max 5, got %f", m.Mx)
	}
}

func TestConstrictionIndexStaysInDomain(t *testing.T) {
	t.Parallel()

	// Worst case under the protocol assumptions: 7 bottlenecks at
	// severity 5 lands just above 1 because Cx collapses to zero.
	bottlenecks := make([]domain.Bottleneck, 7)
	for i := range bottlenecks {
		bottlenecks[i] = domain.Bottleneck{SeverityAdj: 5}
	}

	m := ConstrictionIndex(bottlenecks)
	if m.CI < 0 || m.CI > 1.15 {
		t.Fatalf("CI out of expected domain: %f", m.CI)
	}
}
