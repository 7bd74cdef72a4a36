// Package results persists graded training results through swappable sinks.
package results

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/datmos/word-grader/internal/types"
)

// PostgresSink persists training results in PostgreSQL. Unlike FileSink
// its identifier allocation happens inside a transaction, so concurrent
// grading runs across processes append safely.
type PostgresSink struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// ConnectPostgres establishes a connection pool and verifies it.
func ConnectPostgres(ctx context.Context, databaseURL string, logger zerolog.Logger) (*PostgresSink, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &PostgresSink{
		pool:   pool,
		logger: logger.With().Str("component", "postgres_sink").Logger(),
	}, nil
}

// Close closes the connection pool.
func (s *PostgresSink) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Migrate creates the training_results table if it does not exist.
func (s *PostgresSink) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS training_results (
			id               TEXT PRIMARY KEY,
			student_id       TEXT NOT NULL,
			student_name     TEXT NOT NULL DEFAULT '',
			project_id       INTEGER NOT NULL,
			file_path        TEXT NOT NULL DEFAULT '',
			total_score      INTEGER NOT NULL,
			max_score        INTEGER NOT NULL,
			passing_score    INTEGER NOT NULL,
			passed           BOOLEAN NOT NULL,
			rubric_generated BOOLEAN NOT NULL DEFAULT FALSE,
			start_time       TIMESTAMPTZ NOT NULL,
			end_time         TIMESTAMPTZ NOT NULL,
			duration_minutes DOUBLE PRECISION NOT NULL,
			items            JSONB NOT NULL,
			summary          JSONB NOT NULL,
			created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	if err != nil {
		return fmt.Errorf("failed to create training_results table: %w", err)
	}
	return nil
}

// Append persists one graded result, allocating the next TRnnn
// identifier transactionally.
func (s *PostgresSink) Append(ctx context.Context, result *types.GradingResult, appendCtx AppendContext) (*TrainingResult, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, &PersistenceError{Op: "append", Store: "postgres", Cause: err}
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var highest int
	err = tx.QueryRow(ctx,
		`SELECT COALESCE(MAX(CAST(SUBSTRING(id FROM 3) AS INTEGER)), 0)
		 FROM training_results WHERE id ~ '^TR[0-9]+$'`,
	).Scan(&highest)
	if err != nil {
		return nil, &PersistenceError{Op: "append", Store: "postgres", Cause: err}
	}

	record := newTrainingResult(fmt.Sprintf("TR%03d", highest+1), result, appendCtx)

	itemsJSON, err := json.Marshal(record.Items)
	if err != nil {
		return nil, &PersistenceError{Op: "append", Store: "postgres", Cause: err}
	}
	summaryJSON, err := json.Marshal(record.Summary)
	if err != nil {
		return nil, &PersistenceError{Op: "append", Store: "postgres", Cause: err}
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO training_results (
			id, student_id, student_name, project_id, file_path,
			total_score, max_score, passing_score, passed, rubric_generated,
			start_time, end_time, duration_minutes, items, summary
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		record.ID, record.StudentID, record.StudentName, record.ProjectID, record.FilePath,
		record.TotalScore, record.MaxScore, record.PassingScore, record.Passed, record.RubricGenerated,
		record.StartTime, record.EndTime, record.DurationMinutes, itemsJSON, summaryJSON,
	)
	if err != nil {
		return nil, &PersistenceError{Op: "append", Store: "postgres", Cause: err}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, &PersistenceError{Op: "append", Store: "postgres", Cause: err}
	}

	s.logger.Info().Str("id", record.ID).Str("student_id", record.StudentID).Msg("result persisted")
	return &record, nil
}

// List returns all persisted results ordered by identifier.
func (s *PostgresSink) List(ctx context.Context) ([]TrainingResult, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, student_id, student_name, project_id, file_path,
		        total_score, max_score, passing_score, passed, rubric_generated,
		        start_time, end_time, duration_minutes, items, summary
		 FROM training_results ORDER BY id`)
	if err != nil {
		return nil, &PersistenceError{Op: "list", Store: "postgres", Cause: err}
	}
	defer rows.Close()

	var out []TrainingResult
	for rows.Next() {
		var r TrainingResult
		var itemsJSON, summaryJSON []byte
		var start, end time.Time
		err := rows.Scan(
			&r.ID, &r.StudentID, &r.StudentName, &r.ProjectID, &r.FilePath,
			&r.TotalScore, &r.MaxScore, &r.PassingScore, &r.Passed, &r.RubricGenerated,
			&start, &end, &r.DurationMinutes, &itemsJSON, &summaryJSON,
		)
		if err != nil {
			return nil, &PersistenceError{Op: "list", Store: "postgres", Cause: err}
		}
		r.StartTime = start
		r.EndTime = end
		if err := json.Unmarshal(itemsJSON, &r.Items); err != nil {
			return nil, &PersistenceError{Op: "list", Store: "postgres", Cause: err}
		}
		if err := json.Unmarshal(summaryJSON, &r.Summary); err != nil {
			return nil, &PersistenceError{Op: "list", Store: "postgres", Cause: err}
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, &PersistenceError{Op: "list", Store: "postgres", Cause: err}
	}
	return out, nil
}
