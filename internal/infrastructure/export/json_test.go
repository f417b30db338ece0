package export

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"VentureScanner/internal/domain"
	"VentureScanner/internal/logging"
)

func sampleResult() *domain.ScoreResult {
	return &domain.ScoreResult{
		Company:       "Acme Fusion",
		Homepage:      "https://acmefusion.io",
		AsOfDate:      "2026-09-01",
		AnalysisRunID: "acme_fusion_2026-09-01",
		ConfigHash:    "abc123",
		Constriction:  domain.ConstrictionMetrics{CIMode: "fixed"},
		Bottlenecks:   []domain.Bottleneck{},
		Citations:     []domain.Citation{},
		Wayback:       domain.WaybackAnnotation{Note: "no snapshot found"},
	}
}

func TestExportWritesRunFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	exporter := NewJSONExporter(dir, logging.Discard())

	if err := exporter.Export(context.Background(), sampleResult()); err != nil {
		t.Fatalf("Export: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "acme_fusion_2026-09-01.json"))
	if err != nil {
		t.Fatalf("read exported file: %v", err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("unmarshal exported file: %v", err)
	}

	for _, key := range []string{
		"company", "homepage", "as_of_date", "analysis_run_id", "config_hash",
		"constriction", "readiness", "likely_lovely", "bottlenecks", "citations", "wayback",
	} {
		if _, ok := doc[key]; !ok {
			t.Errorf("exported document missing key %q", key)
		}
	}

	var constriction map[string]json.RawMessage
	if err := json.Unmarshal(doc["constriction"], &constriction); err != nil {
		t.Fatalf("unmarshal constriction block: %v", err)
	}
	if string(constriction["CI_mode"]) != `"fixed"` {
		t.Errorf("CI_mode = %s, want \"fixed\"", constriction["CI_mode"])
	}
	if string(constriction["CI_cohort"]) != "null" {
		t.Errorf("CI_cohort = %s, want explicit null", constriction["CI_cohort"])
	}
	if string(doc["bottlenecks"]) != "[]" {
		t.Errorf("bottlenecks = %s, want empty array rather than null", doc["bottlenecks"])
	}
}

func TestExportCreatesOutputDir(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "nested", "out")
	exporter := NewJSONExporter(dir, logging.Discard())

	if err := exporter.Export(context.Background(), sampleResult()); err != nil {
		t.Fatalf("Export: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "acme_fusion_2026-09-01.json")); err != nil {
		t.Fatalf("exported file missing: %v", err)
	}
}

func TestExportRejectsMissingRunID(t *testing.T) {
	t.Parallel()

	exporter := NewJSONExporter(t.TempDir(), logging.Discard())
	result := sampleResult()
	result.AnalysisRunID = ""

	err := exporter.Export(context.Background(), result)
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input error, got %v", err)
	}
}
