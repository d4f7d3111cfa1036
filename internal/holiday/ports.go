package holiday

//go:generate mockgen -source=ports.go -destination=mock_ports.go -package=holiday

import (
	"context"
	"time"

	"holidaykeeper/internal/country"
)

// Repository defines the contract for holiday storage.
type Repository interface {
	// FindByFilters returns one page (zero-based) of matching holidays,
	// newest first, plus the total count.
	FindByFilters(ctx context.Context, cond SearchCondition, page, pageSize int) ([]View, int64, error)
	SaveAll(ctx context.Context, holidays []Holiday) ([]Holiday, error)
	DeleteByDateAndCountry(ctx context.Context, date time.Time, countryID int64) (int64, error)
}

// CountryLookup resolves the owning country of a holiday.
type CountryLookup interface {
	FindByCode(ctx context.Context, code string) (country.Country, error)
	FindByName(ctx context.Context, name string) (country.Country, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
}
