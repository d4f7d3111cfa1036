package holiday

import (
	"context"
	"fmt"
	"time"

	"holidaykeeper/internal/country"
)

// Service provides holiday queries, deletes and reconciliation of fetched
// holidays into storage.
type Service struct {
	repo      Repository
	countries CountryLookup
}

// NewService creates a new holiday service.
func NewService(repo Repository, countries CountryLookup) *Service {
	return &Service{repo: repo, countries: countries}
}

// Search returns one zero-based page of holidays matching cond.
func (s *Service) Search(ctx context.Context, cond SearchCondition, page, pageSize int) ([]View, int64, error) {
	if err := cond.Validate(); err != nil {
		return nil, 0, err
	}
	return s.repo.FindByFilters(ctx, cond, page, pageSize)
}

// DeleteByDateAndCountryName removes the holidays of the named country on
// date. Deleting nothing is not an error.
func (s *Service) DeleteByDateAndCountryName(ctx context.Context, date time.Time, countryName string) (int64, error) {
	c, err := s.countries.FindByName(ctx, countryName)
	if err != nil {
		return 0, err
	}
	return s.repo.DeleteByDateAndCountry(ctx, date, c.ID)
}

// UpsertAll reconciles holidays to targetYear and the country with
// countryCode, then stores them.
func (s *Service) UpsertAll(ctx context.Context, holidays []Holiday, targetYear time.Time, countryCode string) error {
	c, err := s.countries.FindByCode(ctx, countryCode)
	if err != nil {
		return err
	}
	Reconcile(holidays, targetYear.Year(), c)
	if _, err := s.repo.SaveAll(ctx, holidays); err != nil {
		return fmt.Errorf("save holidays %s/%d: %w", countryCode, targetYear.Year(), err)
	}
	return nil
}

// Reconcile moves every holiday to year, keeping month and day, and attaches
// the owning country. Feb 29 in a non-leap year normalizes to Mar 1.
func Reconcile(holidays []Holiday, year int, owner country.Country) {
	for i := range holidays {
		d := holidays[i].Date
		holidays[i].Date = time.Date(year, d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
		holidays[i].Country = &owner
	}
}

// CountryNameExists reports whether a country with name is stored.
func (s *Service) CountryNameExists(ctx context.Context, name string) (bool, error) {
	return s.countries.ExistsByName(ctx, name)
}
