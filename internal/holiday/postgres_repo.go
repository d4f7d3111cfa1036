package holiday

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
	// countFiltered applies the search predicates to the total count.
	// Off by default: the total counts every stored holiday.
	countFiltered bool
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration, countFiltered bool) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout, countFiltered: countFiltered}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *PostgresRepo) FindByFilters(ctx context.Context, cond SearchCondition, page, pageSize int) ([]View, int64, error) {
	where, args := Where(
		DateBetween(cond.StartDate, cond.EndDate),
		CountryNameEq(cond.CountryName),
	)

	countSQL := "SELECT COUNT(*) FROM holidays"
	var countArgs []any
	if r.countFiltered {
		countSQL = fmt.Sprintf("SELECT COUNT(*) FROM holidays h JOIN countries c ON c.id = h.country_id %s", where)
		countArgs = args
	}

	var total int64
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	if err := r.db.QueryRow(timeoutCtx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	dataSQL := fmt.Sprintf(`
		SELECT h.id, h.local_name, h.name, c.name, h.fixed, h.global, h.launch_year, h.date
		FROM holidays h
		JOIN countries c ON c.id = h.country_id
		%s
		ORDER BY h.date DESC, h.id DESC
		LIMIT $%d OFFSET $%d`,
		where, len(args)+1, len(args)+2)

	argsWithPage := append([]any{}, args...)
	argsWithPage = append(argsWithPage, pageSize, page*pageSize)
	timeoutCtx2, cancel2 := r.withTimeout(ctx)
	defer cancel2()
	rows, err := r.db.Query(timeoutCtx2, dataSQL, argsWithPage...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []View{}
	for rows.Next() {
		var v View
		if err := rows.Scan(
			&v.ID, &v.LocalName, &v.Name, &v.Country, &v.Fixed, &v.Global, &v.LaunchYear, &v.Date,
		); err != nil {
			return nil, 0, err
		}
		out = append(out, v)
	}
	return out, total, rows.Err()
}

// SaveAll upserts every holiday on its natural key (country, date, name)
// inside one transaction. Duplicates within the batch are merged first, so the
// result may be shorter than the input. A later batch replaces stored counties.
func (r *PostgresRepo) SaveAll(ctx context.Context, holidays []Holiday) ([]Holiday, error) {
	if len(holidays) == 0 {
		return nil, nil
	}
	for _, h := range holidays {
		if h.Country == nil {
			return nil, fmt.Errorf("%w: %s %s", ErrNoCountry, h.Name, h.Date.Format(time.DateOnly))
		}
	}
	holidays = MergeDuplicates(holidays)

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	tx, err := r.db.Begin(timeoutCtx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(timeoutCtx)

	const sql = `
		INSERT INTO holidays (country_id, name, local_name, date, fixed, global, launch_year, counties, types, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now(), now())
		ON CONFLICT (country_id, date, name) DO UPDATE SET
			local_name = EXCLUDED.local_name,
			fixed = EXCLUDED.fixed,
			global = EXCLUDED.global,
			launch_year = EXCLUDED.launch_year,
			counties = EXCLUDED.counties,
			types = EXCLUDED.types,
			updated_at = now()
		RETURNING id`

	batch := &pgx.Batch{}
	for _, h := range holidays {
		batch.Queue(sql,
			h.Country.ID, h.Name, h.LocalName, DateOf(h.Date), h.Fixed, h.Global, h.LaunchYear,
			nonNil(h.Counties), nonNil(h.Types),
		)
	}

	br := tx.SendBatch(timeoutCtx, batch)
	out := make([]Holiday, len(holidays))
	for i, h := range holidays {
		out[i] = h
		if err := br.QueryRow().Scan(&out[i].ID); err != nil {
			_ = br.Close()
			return nil, fmt.Errorf("upsert holiday %s %s: %w", h.Country.Code, h.Date.Format(time.DateOnly), err)
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

func (r *PostgresRepo) DeleteByDateAndCountry(ctx context.Context, date time.Time, countryID int64) (int64, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	tag, err := r.db.Exec(timeoutCtx, "DELETE FROM holidays WHERE date = $1 AND country_id = $2", DateOf(date), countryID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
