package scoring

import (
	"errors"
	"testing"

	"VentureScanner/internal/domain"
)

func TestLikelyLovelyKnownValues(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		raw        domain.LikelyLovelyRaw
		wantLSNorm float64
		wantLVNorm float64
		wantCCF    float64
	}{
		{
			name:       "all minimum",
			raw:        domain.LikelyLovelyRaw{E: 1, T: 1, SP: 1, LV: 1},
			wantLSNorm: 0.2,
			wantLVNorm: 0.2,
			wantCCF:    0.04,
		},
		{
			name:       "all maximum",
			raw:        domain.LikelyLovelyRaw{E: 5, T: 5, SP: 5, LV: 5},
			wantLSNorm: 1.0,
			wantLVNorm: 1.0,
			wantCCF:    1.0,
		},
		{
			name:       "evidence dominates",
			raw:        domain.LikelyLovelyRaw{E: 5, T: 1, SP: 1, LV: 5},
			wantLSNorm: 0.6,
			wantLVNorm: 1.0,
			wantCCF:    0.6,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			m, err := LikelyLovely(tc.raw)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !almostEqual(m.LSNorm, tc.wantLSNorm) {
				t.Fatalf("expected LS_norm=%f, got %f", tc.wantLSNorm, m.LSNorm)
			}
			if !almostEqual(m.LVNorm, tc.wantLVNorm) {
				t.Fatalf("expected LV_norm=%f, got %f", tc.wantLVNorm, m.LVNorm)
			}
			if !almostEqual(m.CCF, tc.wantCCF) {
				t.Fatalf("expected CCF=%f, got %f", tc.wantCCF, m.CCF)
			}
			if !almostEqual(m.CCF, m.LSNorm*m.LVNorm) {
				t.Fatalf("CCF must equal LS_norm*LV_norm")
			}
		})
	}
}

func TestLikelyLovelyRejectsOutOfRange(t *testing.T) {
	t.Parallel()

	cases := []domain.LikelyLovelyRaw{
		{E: 6, T: 3, SP: 3, LV: 3},
		{E: 3, T: 0, SP: 3, LV: 3},
		{E: 3, T: 3, SP: -1, LV: 3},
		{E: 3, T: 3, SP: 3, LV: 9},
		{}, // missing values decode to zero and must fail
	}

	for _, raw := range cases {
		_, err := LikelyLovely(raw)
		if err == nil {
			t.Fatalf("expected validation error for %+v", raw)
		}
		var vErr *domain.ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected *domain.ValidationError, got %T", err)
		}
	}
}
