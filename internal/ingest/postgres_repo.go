package ingest

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	CreateRun(ctx context.Context, run *Run) (string, error)
	UpdateRun(ctx context.Context, run *Run) error
	RecentRuns(ctx context.Context, limit int) ([]Run, error)
}

type PostgresRepo struct {
	db *pgxpool.Pool
}

func NewPostgresRepo(db *pgxpool.Pool) *PostgresRepo {
	return &PostgresRepo{db: db}
}

func (r *PostgresRepo) CreateRun(ctx context.Context, run *Run) (string, error) {
	const sql = `
		INSERT INTO sync_runs (trigger, years, started_at, status, tasks_total)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id::text`

	var id string
	err := r.db.QueryRow(ctx, sql, string(run.Trigger), run.Years, run.StartedAt, string(run.Status), run.TasksTotal).Scan(&id)
	return id, err
}

func (r *PostgresRepo) UpdateRun(ctx context.Context, run *Run) error {
	const sql = `
		UPDATE sync_runs SET
			finished_at = $1,
			status = $2,
			tasks_succeeded = $3,
			tasks_failed = $4,
			error = $5
		WHERE id = $6::uuid`

	_, err := r.db.Exec(ctx, sql, run.FinishedAt, string(run.Status), run.TasksSucceeded, run.TasksFailed, run.Error, run.ID)
	return err
}

func (r *PostgresRepo) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	const sql = `
		SELECT id::text, trigger, years, started_at, finished_at, status,
			tasks_total, tasks_succeeded, tasks_failed, error
		FROM sync_runs
		ORDER BY started_at DESC
		LIMIT $1`

	rows, err := r.db.Query(ctx, sql, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Run, error) {
		var (
			run             Run
			trigger, status string
		)
		err := row.Scan(&run.ID, &trigger, &run.Years, &run.StartedAt, &run.FinishedAt, &status,
			&run.TasksTotal, &run.TasksSucceeded, &run.TasksFailed, &run.Error)
		run.Trigger = Trigger(trigger)
		run.Status = Status(status)
		return run, err
	})
	if err != nil {
		return nil, err
	}
	if runs == nil {
		runs = []Run{}
	}
	return runs, nil
}
