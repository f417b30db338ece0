// Package storage persists completed analysis runs in Postgres.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"

	"VentureScanner/internal/domain"
	"VentureScanner/internal/ports"
)

// PostgresRepository stores one row per analysis run. The full result is
// kept as a JSONB payload so the export contract survives round-trips
// unchanged; headline indices are duplicated into columns for querying.
type PostgresRepository struct {
	db      *sql.DB
	builder sq.StatementBuilderType
}

var _ ports.AnalysisRepository = (*PostgresRepository)(nil)

// NewPostgresRepository wires a sql.DB implementation.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Open connects to Postgres and verifies the connection.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// SaveResult upserts the run keyed by analysis_run_id, so re-running a
// company on the same day overwrites the earlier row.
func (r *PostgresRepository) SaveResult(ctx context.Context, company domain.CompanyDescriptor, result *domain.ScoreResult) error {
	if r.db == nil {
		return nil
	}

	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}

	query, args, err := r.builder.
		Insert("analysis_runs").
		Columns("analysis_run_id", "company", "homepage", "as_of_date",
			"config_hash", "ci", "ri", "rar", "ccf", "payload").
		Values(result.AnalysisRunID, result.Company, company.Homepage, result.AsOfDate,
			result.ConfigHash, result.Constriction.CI, result.Readiness.RI,
			result.Readiness.RAR, result.LikelyLovely.CCF, payload).
		Suffix(`ON CONFLICT (analysis_run_id) DO UPDATE
                SET config_hash = EXCLUDED.config_hash,
                    ci = EXCLUDED.ci,
                    ri = EXCLUDED.ri,
                    rar = EXCLUDED.rar,
                    ccf = EXCLUDED.ccf,
                    payload = EXCLUDED.payload,
                    updated_at = NOW()`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert analysis run: %w", err)
	}
	return nil
}

// GetResult loads a stored run by its analysis_run_id.
func (r *PostgresRepository) GetResult(ctx context.Context, runID string) (*domain.ScoreResult, error) {
	if r.db == nil {
		return nil, fmt.Errorf("run %s: %w", runID, domain.ErrNotFound)
	}

	query, args, err := r.builder.
		Select("payload").
		From("analysis_runs").
		Where(sq.Eq{"analysis_run_id": runID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var payload []byte
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("run %s: %w", runID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("select analysis run: %w", err)
	}

	var result domain.ScoreResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, fmt.Errorf("unmarshal stored result: %w", err)
	}
	return &result, nil
}
