package repository

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yamada-labo/prospectline/modules/runs/model"
	"github.com/yamada-labo/prospectline/modules/runs/ports"
)

// testRunRepo mirrors RunRepository but accepts pgxmock.PgxPoolIface,
// since pgxpool.Pool itself is a concrete type pgxmock cannot satisfy.
type testRunRepo struct {
	mock pgxmock.PgxPoolIface
}

func (r *testRunRepo) Create(ctx context.Context, run *model.Run) error {
	query := `INSERT INTO search_runs`
	_, err := r.mock.Exec(ctx, query,
		run.ID, run.JobID, run.Keyword, run.TargetCount, run.ResultCount,
		run.SpreadsheetURL, run.Status, run.ErrorMessage, run.StartedAt, run.FinishedAt,
	)
	return err
}

func (r *testRunRepo) List(ctx context.Context, opts *ports.ListOptions) ([]*model.Run, int, error) {
	var total int
	if err := r.mock.QueryRow(ctx, `SELECT COUNT`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.mock.Query(ctx, `SELECT id, job_id`, opts.Limit, opts.Offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var runs []*model.Run
	for rows.Next() {
		run := &model.Run{}
		if err := rows.Scan(
			&run.ID, &run.JobID, &run.Keyword, &run.TargetCount, &run.ResultCount,
			&run.SpreadsheetURL, &run.Status, &run.ErrorMessage, &run.StartedAt, &run.FinishedAt,
		); err != nil {
			return nil, 0, err
		}
		runs = append(runs, run)
	}
	return runs, total, rows.Err()
}

func TestRunRepository_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now()
	run := model.NewCompleted("run-1", "job-1", "東京 IT企業", 50, 45, "https://sheets/abc", now.Add(-time.Minute), now)

	mock.ExpectExec("INSERT INTO search_runs").
		WithArgs(run.ID, run.JobID, run.Keyword, run.TargetCount, run.ResultCount,
			run.SpreadsheetURL, run.Status, run.ErrorMessage, run.StartedAt, run.FinishedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	repo := &testRunRepo{mock: mock}
	require.NoError(t, repo.Create(context.Background(), run))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRunRepository_List(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now()
	mock.ExpectQuery("SELECT COUNT").WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(2))

	rows := pgxmock.NewRows([]string{
		"id", "job_id", "keyword", "target_count", "result_count",
		"spreadsheet_url", "status", "error_message", "started_at", "finished_at",
	}).AddRow(
		"run-1", "job-1", "東京 IT企業", 50, 45, "https://sheets/abc", model.StatusCompleted, "", now, now,
	)
	mock.ExpectQuery("SELECT id, job_id").WithArgs(20, 0).WillReturnRows(rows)

	repo := &testRunRepo{mock: mock}
	runs, total, err := repo.List(context.Background(), &ports.ListOptions{Limit: 20, Offset: 0})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, runs, 1)
	assert.Equal(t, "run-1", runs[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}
