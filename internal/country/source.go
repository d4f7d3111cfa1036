package country

import (
	"context"
)

// Fetcher loads country skeletons from the external holiday source.
type Fetcher interface {
	FetchCountries(ctx context.Context) ([]Country, error)
}

// APISource reads countries from the external source. Used on first run.
type APISource struct {
	fetcher Fetcher
}

func NewAPISource(fetcher Fetcher) *APISource {
	return &APISource{fetcher: fetcher}
}

func (s *APISource) Countries(ctx context.Context) ([]Country, error) {
	return s.fetcher.FetchCountries(ctx)
}

// DBSource reads the countries already stored. Used by recurring syncs.
type DBSource struct {
	repo Repository
}

func NewDBSource(repo Repository) *DBSource {
	return &DBSource{repo: repo}
}

func (s *DBSource) Countries(ctx context.Context) ([]Country, error) {
	return s.repo.FindAll(ctx)
}
