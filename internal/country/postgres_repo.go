package country

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

const selectColumns = `id, code, name, created_at, updated_at`

func (r *PostgresRepo) FindByCode(ctx context.Context, code string) (Country, error) {
	return r.findOne(ctx, "SELECT "+selectColumns+" FROM countries WHERE code = $1", code)
}

func (r *PostgresRepo) FindByName(ctx context.Context, name string) (Country, error) {
	return r.findOne(ctx, "SELECT "+selectColumns+" FROM countries WHERE name = $1", name)
}

func (r *PostgresRepo) findOne(ctx context.Context, query string, arg string) (Country, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	var c Country
	err := r.db.QueryRow(timeoutCtx, query, arg).Scan(&c.ID, &c.Code, &c.Name, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Country{}, fmt.Errorf("%w: %s", ErrNotFound, arg)
		}
		return Country{}, err
	}
	return c, nil
}

func (r *PostgresRepo) ExistsByCode(ctx context.Context, code string) (bool, error) {
	return r.exists(ctx, "SELECT EXISTS (SELECT 1 FROM countries WHERE code = $1)", code)
}

func (r *PostgresRepo) ExistsByName(ctx context.Context, name string) (bool, error) {
	return r.exists(ctx, "SELECT EXISTS (SELECT 1 FROM countries WHERE name = $1)", name)
}

func (r *PostgresRepo) exists(ctx context.Context, query string, arg string) (bool, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	var ok bool
	err := r.db.QueryRow(timeoutCtx, query, arg).Scan(&ok)
	return ok, err
}

func (r *PostgresRepo) FindAll(ctx context.Context) ([]Country, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.Query(timeoutCtx, "SELECT "+selectColumns+" FROM countries ORDER BY code")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Country
	for rows.Next() {
		var c Country
		if err := rows.Scan(&c.ID, &c.Code, &c.Name, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// SaveAll inserts new countries and refreshes the name of existing codes
// in a single transaction. The returned slice carries the stored IDs.
func (r *PostgresRepo) SaveAll(ctx context.Context, countries []Country) ([]Country, error) {
	if len(countries) == 0 {
		return nil, nil
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	tx, err := r.db.Begin(timeoutCtx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(timeoutCtx)

	const sql = `
		INSERT INTO countries (code, name, created_at, updated_at)
		VALUES ($1, $2, now(), now())
		ON CONFLICT (code) DO UPDATE SET
			name = EXCLUDED.name,
			updated_at = now()
		RETURNING id, created_at, updated_at`

	batch := &pgx.Batch{}
	for _, c := range countries {
		batch.Queue(sql, c.Code, c.Name)
	}

	br := tx.SendBatch(timeoutCtx, batch)
	out := make([]Country, len(countries))
	for i, c := range countries {
		out[i] = c
		if err := br.QueryRow().Scan(&out[i].ID, &out[i].CreatedAt, &out[i].UpdatedAt); err != nil {
			_ = br.Close()
			return nil, fmt.Errorf("upsert country %s: %w", c.Code, err)
		}
	}
	if err := br.Close(); err != nil {
		return nil, err
	}

	if err := tx.Commit(timeoutCtx); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresRepo) Count(ctx context.Context) (int64, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	var count int64
	err := r.db.QueryRow(timeoutCtx, "SELECT COUNT(*) FROM countries").Scan(&count)
	return count, err
}
