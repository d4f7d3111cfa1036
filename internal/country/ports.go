package country

import (
	"context"
)

// Repository defines the contract for country storage.
type Repository interface {
	FindByCode(ctx context.Context, code string) (Country, error)
	FindByName(ctx context.Context, name string) (Country, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	FindAll(ctx context.Context) ([]Country, error)
	SaveAll(ctx context.Context, countries []Country) ([]Country, error)
	Count(ctx context.Context) (int64, error)
}

// Source provides the list of countries to synchronize.
type Source interface {
	Countries(ctx context.Context) ([]Country, error)
}
