package country

import (
	"context"
	"fmt"
)

// Service provides country lookups and the initial country import.
type Service struct {
	repo Repository
}

// NewService creates a new country service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

// FindByCode returns ErrNotFound when the code is unknown.
func (s *Service) FindByCode(ctx context.Context, code string) (Country, error) {
	return s.repo.FindByCode(ctx, code)
}

// FindByName returns ErrNotFound when the name is unknown.
func (s *Service) FindByName(ctx context.Context, name string) (Country, error) {
	return s.repo.FindByName(ctx, name)
}

func (s *Service) ExistsByCode(ctx context.Context, code string) (bool, error) {
	return s.repo.ExistsByCode(ctx, code)
}

func (s *Service) ExistsByName(ctx context.Context, name string) (bool, error) {
	return s.repo.ExistsByName(ctx, name)
}

func (s *Service) SaveAll(ctx context.Context, countries []Country) ([]Country, error) {
	return s.repo.SaveAll(ctx, countries)
}

// InitializeCountries loads every country from src and stores it.
func (s *Service) InitializeCountries(ctx context.Context, src Source) ([]Country, error) {
	countries, err := src.Countries(ctx)
	if err != nil {
		return nil, err
	}
	saved, err := s.repo.SaveAll(ctx, countries)
	if err != nil {
		return nil, fmt.Errorf("save countries: %w", err)
	}
	return saved, nil
}
