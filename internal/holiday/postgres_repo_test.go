package holiday

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"holidaykeeper/internal/country"
	"holidaykeeper/internal/testutil"
)

func seedGermanyAndFrance(t *testing.T, ctx context.Context, countries *country.PostgresRepo, repo *PostgresRepo) (country.Country, country.Country) {
	t.Helper()
	saved, err := countries.SaveAll(ctx, []country.Country{
		{Code: "DE", Name: "Germany"},
		{Code: "FR", Name: "France"},
	})
	require.NoError(t, err)
	de, fr := saved[0], saved[1]

	german := []Holiday{
		{Name: "New Year's Day", LocalName: "Neujahr", Date: date(2025, 1, 1), Fixed: true, Global: true, Types: []string{"Public"}},
		{Name: "Good Friday", LocalName: "Karfreitag", Date: date(2025, 4, 18), Global: true, Types: []string{"Public"}},
		{Name: "Easter Monday", LocalName: "Ostermontag", Date: date(2025, 4, 21), Global: true, Types: []string{"Public"}},
		{Name: "Labour Day", LocalName: "Tag der Arbeit", Date: date(2025, 5, 1), Fixed: true, Global: true},
		{Name: "German Unity Day", LocalName: "Tag der Deutschen Einheit", Date: date(2025, 10, 3), Fixed: true, Global: true},
		{Name: "Christmas Day", LocalName: "Erster Weihnachtstag", Date: date(2025, 12, 25), Fixed: true, Global: true},
		{Name: "St. Stephen's Day", LocalName: "Zweiter Weihnachtstag", Date: date(2025, 12, 26), Fixed: true, Global: true},
		{Name: "New Year's Day", LocalName: "Neujahr", Date: date(2024, 1, 1), Fixed: true, Global: true},
	}
	for i := range german {
		german[i].Country = &de
	}
	french := []Holiday{
		{Name: "Bastille Day", LocalName: "Fête nationale", Date: date(2025, 7, 14), Fixed: true, Global: true},
		{Name: "Christmas Day", LocalName: "Noël", Date: date(2025, 12, 25), Fixed: true, Global: true, Counties: []string{"FR-A"}},
	}
	for i := range french {
		french[i].Country = &fr
	}

	_, err = repo.SaveAll(ctx, append(german, french...))
	require.NoError(t, err)
	return de, fr
}

func TestPostgresRepo_FindByFilters(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	ctx := context.Background()
	countries := country.NewPostgresRepo(pool, 5*time.Second)
	repo := NewPostgresRepo(pool, 5*time.Second, false)
	seedGermanyAndFrance(t, ctx, countries, repo)

	t.Run("germany 2025 first page newest first", func(t *testing.T) {
		cond := SearchCondition{StartDate: ptr(date(2025, 1, 1)), EndDate: ptr(date(2025, 12, 31)), CountryName: "Germany"}

		views, total, err := repo.FindByFilters(ctx, cond, 0, 3)

		require.NoError(t, err)
		require.Len(t, views, 3)
		assert.Equal(t, date(2025, 12, 26), views[0].Date)
		assert.Equal(t, date(2025, 12, 25), views[1].Date)
		assert.Equal(t, date(2025, 10, 3), views[2].Date)
		for _, v := range views {
			assert.Equal(t, "Germany", v.Country)
		}
		// unfiltered total
		assert.Equal(t, int64(10), total)
	})

	t.Run("last page", func(t *testing.T) {
		cond := SearchCondition{StartDate: ptr(date(2025, 1, 1)), EndDate: ptr(date(2025, 12, 31)), CountryName: "Germany"}

		views, _, err := repo.FindByFilters(ctx, cond, 2, 3)

		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Equal(t, date(2025, 1, 1), views[0].Date)
	})

	t.Run("bounds are inclusive", func(t *testing.T) {
		cond := SearchCondition{StartDate: ptr(date(2025, 12, 25)), EndDate: ptr(date(2025, 12, 25))}

		views, _, err := repo.FindByFilters(ctx, cond, 0, 10)

		require.NoError(t, err)
		assert.Len(t, views, 2)
	})

	t.Run("open start", func(t *testing.T) {
		views, _, err := repo.FindByFilters(ctx, SearchCondition{EndDate: ptr(date(2025, 1, 1)), CountryName: "Germany"}, 0, 10)

		require.NoError(t, err)
		require.Len(t, views, 2)
		assert.Equal(t, date(2024, 1, 1), views[1].Date)
	})

	t.Run("open end", func(t *testing.T) {
		views, _, err := repo.FindByFilters(ctx, SearchCondition{StartDate: ptr(date(2025, 12, 1))}, 0, 10)

		require.NoError(t, err)
		assert.Len(t, views, 3)
	})

	t.Run("no match returns empty slice", func(t *testing.T) {
		views, _, err := repo.FindByFilters(ctx, SearchCondition{CountryName: "Atlantis"}, 0, 10)

		require.NoError(t, err)
		assert.NotNil(t, views)
		assert.Empty(t, views)
	})

	t.Run("filtered count", func(t *testing.T) {
		filtered := NewPostgresRepo(pool, 5*time.Second, true)
		cond := SearchCondition{StartDate: ptr(date(2025, 1, 1)), EndDate: ptr(date(2025, 12, 31)), CountryName: "Germany"}

		_, total, err := filtered.FindByFilters(ctx, cond, 0, 3)

		require.NoError(t, err)
		assert.Equal(t, int64(7), total)
	})
}

func TestPostgresRepo_SaveAllAndDelete(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	ctx := context.Background()
	countries := country.NewPostgresRepo(pool, 5*time.Second)
	repo := NewPostgresRepo(pool, 5*time.Second, true)
	de, fr := seedGermanyAndFrance(t, ctx, countries, repo)

	t.Run("repeated upsert does not duplicate", func(t *testing.T) {
		launch := "1990"
		again := []Holiday{{Name: "German Unity Day", LocalName: "Tag der Deutschen Einheit", Date: date(2025, 10, 3), Fixed: true, Global: true, LaunchYear: &launch, Country: &de}}

		_, err := repo.SaveAll(ctx, again)
		require.NoError(t, err)

		views, total, err := repo.FindByFilters(ctx, SearchCondition{StartDate: ptr(date(2025, 10, 3)), EndDate: ptr(date(2025, 10, 3))}, 0, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, views, 1)
		require.NotNil(t, views[0].LaunchYear)
		assert.Equal(t, "1990", *views[0].LaunchYear)
	})

	t.Run("duplicates in one batch merge counties", func(t *testing.T) {
		batch := []Holiday{
			{Name: "Assumption Day", LocalName: "Mariä Himmelfahrt", Date: date(2025, 8, 15), Counties: []string{"DE-BY"}, Country: &de},
			{Name: "Assumption Day", LocalName: "Mariä Himmelfahrt", Date: date(2025, 8, 15), Counties: []string{"DE-SL"}, Country: &de},
		}

		saved, err := repo.SaveAll(ctx, batch)
		require.NoError(t, err)
		require.Len(t, saved, 1)

		var counties []string
		require.NoError(t, pool.QueryRow(ctx, "SELECT counties FROM holidays WHERE id = $1", saved[0].ID).Scan(&counties))
		assert.Equal(t, []string{"DE-BY", "DE-SL"}, counties)
	})

	t.Run("unreconciled holiday is rejected", func(t *testing.T) {
		_, err := repo.SaveAll(ctx, []Holiday{{Name: "Orphan", Date: date(2025, 1, 2)}})
		assert.ErrorIs(t, err, ErrNoCountry)
	})

	t.Run("delete matches exact date and country", func(t *testing.T) {
		n, err := repo.DeleteByDateAndCountry(ctx, date(2025, 12, 25), de.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		views, _, err := repo.FindByFilters(ctx, SearchCondition{StartDate: ptr(date(2025, 12, 25)), EndDate: ptr(date(2025, 12, 25))}, 0, 10)
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Equal(t, "France", views[0].Country)
	})

	t.Run("delete with no match", func(t *testing.T) {
		n, err := repo.DeleteByDateAndCountry(ctx, date(2025, 2, 11), fr.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(0), n)
	})

	t.Run("deleting a country cascades", func(t *testing.T) {
		_, err := pool.Exec(ctx, "DELETE FROM countries WHERE id = $1", fr.ID)
		require.NoError(t, err)

		var remaining int64
		require.NoError(t, pool.QueryRow(ctx, "SELECT COUNT(*) FROM holidays WHERE country_id = $1", fr.ID).Scan(&remaining))
		assert.Zero(t, remaining)
	})
}

func TestPostgresRepo_FindByFilters_GermanUnityDay(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	ctx := context.Background()
	countries := country.NewPostgresRepo(pool, 5*time.Second)
	repo := NewPostgresRepo(pool, 5*time.Second, false)

	saved, err := countries.SaveAll(ctx, []country.Country{{Code: "DE", Name: "Germany"}})
	require.NoError(t, err)
	de := saved[0]

	launch := "1990"
	stored, err := repo.SaveAll(ctx, []Holiday{{
		Name:       "German Unity Day",
		LocalName:  "독일 통일의 날",
		Date:       date(2025, 10, 3),
		Fixed:      true,
		Global:     false,
		LaunchYear: &launch,
		Country:    &de,
	}})
	require.NoError(t, err)
	require.Len(t, stored, 1)

	cond := SearchCondition{StartDate: ptr(date(2025, 1, 1)), EndDate: ptr(date(2025, 12, 31)), CountryName: "Germany"}
	views, total, err := repo.FindByFilters(ctx, cond, 0, 3)

	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, views, 1)
	assert.Equal(t, View{
		ID:         stored[0].ID,
		LocalName:  "독일 통일의 날",
		Name:       "German Unity Day",
		Country:    "Germany",
		Fixed:      true,
		Global:     false,
		LaunchYear: &launch,
		Date:       date(2025, 10, 3),
	}, views[0])
}
