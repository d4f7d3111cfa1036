package country

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) FindByCode(ctx context.Context, code string) (Country, error) {
	args := m.Called(ctx, code)
	return args.Get(0).(Country), args.Error(1)
}

func (m *mockRepo) FindByName(ctx context.Context, name string) (Country, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(Country), args.Error(1)
}

func (m *mockRepo) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *mockRepo) ExistsByName(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func (m *mockRepo) FindAll(ctx context.Context) ([]Country, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Country), args.Error(1)
}

func (m *mockRepo) SaveAll(ctx context.Context, countries []Country) ([]Country, error) {
	args := m.Called(ctx, countries)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Country), args.Error(1)
}

func (m *mockRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type stubFetcher struct {
	countries []Country
	err       error
}

func (f stubFetcher) FetchCountries(ctx context.Context) ([]Country, error) {
	return f.countries, f.err
}

func TestService_InitializeCountries(t *testing.T) {
	ctx := context.Background()

	t.Run("saves fetched countries", func(t *testing.T) {
		repo := new(mockRepo)
		svc := NewService(repo)

		fetched := []Country{{Code: "KR", Name: "South Korea"}, {Code: "DE", Name: "Germany"}}
		saved := []Country{{ID: 1, Code: "KR", Name: "South Korea"}, {ID: 2, Code: "DE", Name: "Germany"}}
		repo.On("SaveAll", ctx, fetched).Return(saved, nil)

		got, err := svc.InitializeCountries(ctx, NewAPISource(stubFetcher{countries: fetched}))
		require.NoError(t, err)
		assert.Equal(t, saved, got)
		repo.AssertExpectations(t)
	})

	t.Run("does not save when the source fails", func(t *testing.T) {
		repo := new(mockRepo)
		svc := NewService(repo)

		_, err := svc.InitializeCountries(ctx, NewAPISource(stubFetcher{err: errors.New("upstream down")}))
		assert.Error(t, err)
		repo.AssertNotCalled(t, "SaveAll", mock.Anything, mock.Anything)
	})

	t.Run("wraps store failures", func(t *testing.T) {
		repo := new(mockRepo)
		svc := NewService(repo)

		dbErr := errors.New("db error")
		repo.On("SaveAll", ctx, mock.Anything).Return(nil, dbErr)

		_, err := svc.InitializeCountries(ctx, NewAPISource(stubFetcher{countries: []Country{{Code: "JP", Name: "Japan"}}}))
		assert.ErrorIs(t, err, dbErr)
	})
}

func TestService_FindByCode_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := new(mockRepo)
	svc := NewService(repo)

	repo.On("FindByCode", ctx, "XX").Return(Country{}, ErrNotFound)

	_, err := svc.FindByCode(ctx, "XX")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDBSource_Countries(t *testing.T) {
	ctx := context.Background()
	repo := new(mockRepo)
	stored := []Country{{ID: 7, Code: "JP", Name: "Japan"}}
	repo.On("FindAll", ctx).Return(stored, nil)

	got, err := NewDBSource(repo).Countries(ctx)
	require.NoError(t, err)
	assert.Equal(t, stored, got)
}
