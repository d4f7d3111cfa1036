package ingest

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"holidaykeeper/internal/country"
	"holidaykeeper/internal/holiday"
)

// ErrTasksFailed marks a fan-out in which at least one task failed.
var ErrTasksFailed = errors.New("sync tasks failed")

const (
	defaultConcurrency       = 8
	defaultBootstrapFromYear = 2020
	defaultBootstrapYears    = 6
	maxRunErrorLen     = 2000
)

type Config struct {
	Concurrency       int
	BootstrapFromYear int
	BootstrapYears    int
}

// HolidayFetcher loads the raw holidays of one country for one year.
type HolidayFetcher interface {
	FetchHolidays(ctx context.Context, year int, countryCode string) ([]holiday.Holiday, error)
}

// Reconciler rewrites fetched holidays to the target year and stores them.
type Reconciler interface {
	UpsertAll(ctx context.Context, holidays []holiday.Holiday, targetYear time.Time, countryCode string) error
}

type Service struct {
	fetcher    HolidayFetcher
	reconciler Reconciler
	countries  country.Source
	runs       Repository
	cfg        Config
}

// NewService wires the orchestrator. Unset config fields fall back to eight
// workers and the 2020..2025 bootstrap window. countries lists the stored
// countries for scheduled and manual syncs. runs may be nil, in which case
// runs are not recorded.
func NewService(fetcher HolidayFetcher, reconciler Reconciler, countries country.Source, runs Repository, cfg Config) *Service {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = defaultConcurrency
	}
	if cfg.BootstrapFromYear <= 0 {
		cfg.BootstrapFromYear = defaultBootstrapFromYear
	}
	if cfg.BootstrapYears <= 0 {
		cfg.BootstrapYears = defaultBootstrapYears
	}
	return &Service{
		fetcher:    fetcher,
		reconciler: reconciler,
		countries:  countries,
		runs:       runs,
		cfg:        cfg,
	}
}

// UpsertHoliday fetches the holidays of countryCode for year's calendar year
// and reconciles them into storage. Nothing is written if the fetch fails.
func (s *Service) UpsertHoliday(ctx context.Context, year time.Time, countryCode string) error {
	holidays, err := s.fetcher.FetchHolidays(ctx, year.Year(), countryCode)
	if err != nil {
		return fmt.Errorf("fetch holidays %s/%d: %w", countryCode, year.Year(), err)
	}
	return s.reconciler.UpsertAll(ctx, holidays, year, countryCode)
}

// InitializeHolidays syncs every country over the bootstrap window.
func (s *Service) InitializeHolidays(ctx context.Context, countries []country.Country) (Report, error) {
	return s.fanOut(ctx, TriggerBootstrap, countries, YearRange(s.cfg.BootstrapFromYear, s.cfg.BootstrapYears))
}

// SyncHolidaysForYears syncs every country for every year in years.
func (s *Service) SyncHolidaysForYears(ctx context.Context, countries []country.Country, years []int) (Report, error) {
	return s.fanOut(ctx, TriggerManual, countries, years)
}

// syncStored syncs all stored countries for years.
func (s *Service) syncStored(ctx context.Context, trigger Trigger, years []int) (Report, error) {
	if len(years) == 0 {
		return Report{}, ErrInvalidYears
	}
	countries, err := s.countries.Countries(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("load countries: %w", err)
	}
	return s.fanOut(ctx, trigger, countries, years)
}

// RecentRuns returns up to limit runs, newest first.
func (s *Service) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	if s.runs == nil {
		return []Run{}, nil
	}
	return s.runs.RecentRuns(ctx, limit)
}

func (s *Service) fanOut(ctx context.Context, trigger Trigger, countries []country.Country, years []int) (report Report, err error) {
	tasks := make([]Task, 0, len(countries)*len(years))
	for _, c := range countries {
		for _, y := range years {
			tasks = append(tasks, Task{CountryCode: c.Code, Year: y})
		}
	}

	run := s.startRun(ctx, trigger, years, len(tasks))
	report.RunID = run.ID
	report.Total = len(tasks)
	report.Failures = []Failure{}
	defer func() { s.finishRun(ctx, run, report, err) }()

	slog.Info("sync_started", "trigger", trigger, "run_id", run.ID, "countries", len(countries), "years", years, "tasks", len(tasks))

	var (
		mu   sync.Mutex
		errs []error
	)
	g := new(errgroup.Group)
	g.SetLimit(s.cfg.Concurrency)
	for _, t := range tasks {
		g.Go(func() error {
			taskErr := s.UpsertHoliday(ctx, time.Date(t.Year, time.January, 1, 0, 0, 0, 0, time.UTC), t.CountryCode)

			mu.Lock()
			defer mu.Unlock()
			if taskErr != nil {
				slog.Warn("sync_task_failed", "run_id", run.ID, "task", t.String(), "error", taskErr)
				report.Failed++
				report.Failures = append(report.Failures, Failure{CountryCode: t.CountryCode, Year: t.Year, Error: taskErr.Error()})
				errs = append(errs, taskErr)
				return nil
			}
			report.Succeeded++
			return nil
		})
	}
	_ = g.Wait()

	slices.SortFunc(report.Failures, func(a, b Failure) int {
		return cmp.Or(cmp.Compare(a.CountryCode, b.CountryCode), cmp.Compare(a.Year, b.Year))
	})

	slog.Info("sync_finished", "trigger", trigger, "run_id", run.ID, "total", report.Total, "succeeded", report.Succeeded, "failed", report.Failed)

	if len(errs) > 0 {
		return report, fmt.Errorf("%w: %d of %d: %w", ErrTasksFailed, report.Failed, report.Total, errors.Join(errs...))
	}
	return report, nil
}

func (s *Service) startRun(ctx context.Context, trigger Trigger, years []int, total int) *Run {
	run := &Run{
		Trigger:    trigger,
		Years:      years,
		StartedAt:  time.Now(),
		Status:     StatusRunning,
		TasksTotal: total,
	}
	if s.runs == nil {
		return run
	}
	id, err := s.runs.CreateRun(ctx, run)
	if err != nil {
		slog.Error("sync_run_create_failed", "trigger", trigger, "error", err)
		return run
	}
	run.ID = id
	return run
}

func (s *Service) finishRun(ctx context.Context, run *Run, report Report, err error) {
	if s.runs == nil || run.ID == "" {
		return
	}
	now := time.Now()
	run.FinishedAt = &now
	run.TasksSucceeded = report.Succeeded
	run.TasksFailed = report.Failed
	run.Status = report.status()
	if err != nil {
		run.Error = truncate(err.Error(), maxRunErrorLen)
	}
	if updateErr := s.runs.UpdateRun(context.WithoutCancel(ctx), run); updateErr != nil {
		slog.Error("sync_run_update_failed", "run_id", run.ID, "error", updateErr)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
