package ingest

import (
	"context"
	"fmt"
	"log/slog"

	"holidaykeeper/internal/country"
)

// CountryInitializer seeds the country table from a source.
type CountryInitializer interface {
	Count(ctx context.Context) (int64, error)
	InitializeCountries(ctx context.Context, src country.Source) ([]country.Country, error)
}

// Bootstrapper fills an empty database with countries and the bootstrap
// window of holidays.
type Bootstrapper struct {
	countries CountryInitializer
	source    country.Source
	svc       *Service
}

func NewBootstrapper(countries CountryInitializer, source country.Source, svc *Service) *Bootstrapper {
	return &Bootstrapper{countries: countries, source: source, svc: svc}
}

// Run bootstraps when no country is stored. Errors are logged, never returned.
func (b *Bootstrapper) Run(ctx context.Context) {
	if err := b.run(ctx); err != nil {
		slog.Error("bootstrap_failed", "error", err)
	}
}

func (b *Bootstrapper) run(ctx context.Context) error {
	n, err := b.countries.Count(ctx)
	if err != nil {
		return fmt.Errorf("count countries: %w", err)
	}
	if n > 0 {
		slog.Info("bootstrap_skipped", "countries", n)
		return nil
	}

	countries, err := b.countries.InitializeCountries(ctx, b.source)
	if err != nil {
		return err
	}
	slog.Info("bootstrap_countries_saved", "countries", len(countries))

	report, err := b.svc.InitializeHolidays(ctx, countries)
	slog.Info("bootstrap_finished", "run_id", report.RunID, "total", report.Total, "succeeded", report.Succeeded, "failed", report.Failed)
	return err
}
