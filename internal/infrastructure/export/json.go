// Package export writes completed analyses to external representations.
package export

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"VentureScanner/internal/domain"
	"VentureScanner/internal/ports"
)

// JSONExporter writes one file per analysis run into a flat output
// directory, named <analysis_run_id>.json.
type JSONExporter struct {
	outputDir string
	logger    *slog.Logger
}

var _ ports.Exporter = (*JSONExporter)(nil)

// NewJSONExporter creates an exporter rooted at outputDir. The directory
// is created on first export.
func NewJSONExporter(outputDir string, logger *slog.Logger) *JSONExporter {
	return &JSONExporter{
		outputDir: outputDir,
		logger:    logger.With("component", "export"),
	}
}

// Export serializes the result with stable field order and two-space
// indentation so files diff cleanly between runs.
func (e *JSONExporter) Export(ctx context.Context, result *domain.ScoreResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if result.AnalysisRunID == "" {
		return fmt.Errorf("%w: result has no analysis_run_id", domain.ErrInvalidInput)
	}

	if err := os.MkdirAll(e.outputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}

	path := filepath.Join(e.outputDir, result.AnalysisRunID+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write result file: %w", err)
	}

	e.logger.Info("exported analysis", "company", result.Company, "path", path)
	return nil
}
