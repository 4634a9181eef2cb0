package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yamada-labo/prospectline/modules/runs/model"
	"github.com/yamada-labo/prospectline/modules/runs/ports"
)

// RunRepository implements ports.RunRepository against Postgres.
type RunRepository struct {
	pool *pgxpool.Pool
}

// NewRunRepository creates a new run repository.
func NewRunRepository(pool *pgxpool.Pool) *RunRepository {
	return &RunRepository{pool: pool}
}

// Create inserts one finished-run audit entry.
func (r *RunRepository) Create(ctx context.Context, run *model.Run) error {
	query := `
		INSERT INTO search_runs (
			id, job_id, keyword, target_count, result_count,
			spreadsheet_url, status, error_message, started_at, finished_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	if run.ID == "" {
		run.ID = uuid.New().String()
	}

	_, err := r.pool.Exec(ctx, query,
		run.ID,
		run.JobID,
		run.Keyword,
		run.TargetCount,
		run.ResultCount,
		run.SpreadsheetURL,
		run.Status,
		run.ErrorMessage,
		run.StartedAt,
		run.FinishedAt,
	)
	return err
}

// List retrieves runs newest-first with pagination.
func (r *RunRepository) List(ctx context.Context, opts *ports.ListOptions) ([]*model.Run, int, error) {
	countQuery := `SELECT COUNT(*) FROM search_runs`
	var total int
	if err := r.pool.QueryRow(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, job_id, keyword, target_count, result_count,
		       spreadsheet_url, status, error_message, started_at, finished_at
		FROM search_runs
		ORDER BY finished_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, opts.Limit, opts.Offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var runs []*model.Run
	for rows.Next() {
		run := &model.Run{}
		if err := rows.Scan(
			&run.ID,
			&run.JobID,
			&run.Keyword,
			&run.TargetCount,
			&run.ResultCount,
			&run.SpreadsheetURL,
			&run.Status,
			&run.ErrorMessage,
			&run.StartedAt,
			&run.FinishedAt,
		); err != nil {
			return nil, 0, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return runs, total, nil
}
