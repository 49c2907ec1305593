package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Veraticus/work-order-flow/internal/model"
)

// SaveRun inserts or updates a pipeline run record.
func (s *SQLiteStorage) SaveRun(ctx context.Context, run *model.Run) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateRun(run); err != nil {
		return err
	}

	var finished sql.NullTime
	if run.FinishedAt != nil {
		finished = sql.NullTime{Time: run.FinishedAt.UTC(), Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, stage, started_at, finished_at, total, processed, skipped, failed)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			finished_at = excluded.finished_at,
			total = excluded.total,
			processed = excluded.processed,
			skipped = excluded.skipped,
			failed = excluded.failed
	`,
		run.ID, string(run.Stage), run.StartedAt.UTC(), finished,
		run.Total, run.Processed, run.Skipped, run.Failed,
	)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	return nil
}

// GetLatestRun returns the most recently started run of a stage.
func (s *SQLiteStorage) GetLatestRun(ctx context.Context, stage model.Stage) (*model.Run, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var (
		run      model.Run
		stageStr string
		finished sql.NullTime
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, stage, started_at, finished_at, total, processed, skipped, failed
		FROM runs
		WHERE stage = ?
		ORDER BY started_at DESC
		LIMIT 1
	`, string(stage)).Scan(
		&run.ID, &stageStr, &run.StartedAt, &finished,
		&run.Total, &run.Processed, &run.Skipped, &run.Failed,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("run for stage", string(stage))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest run: %w", err)
	}

	run.Stage = model.Stage(stageStr)
	run.StartedAt = run.StartedAt.UTC()
	if finished.Valid {
		t := finished.Time.UTC()
		run.FinishedAt = &t
	}
	return &run, nil
}
