package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

const (
	DefaultSyncSpec     = "0 1 2 1 *"
	DefaultSyncTimezone = "Asia/Seoul"
)

// Scheduler runs the annual holiday sync on a cron schedule.
type Scheduler struct {
	cron     *cron.Cron
	schedule cron.Schedule
	loc      *time.Location
	svc      *Service
	now      func() time.Time
	ctx      context.Context
}

// NewScheduler parses a standard five-field cron spec evaluated in timezone.
func NewScheduler(svc *Service, spec, timezone string) (*Scheduler, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("load sync timezone %q: %w", timezone, err)
	}
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("parse sync schedule %q: %w", spec, err)
	}

	logger := slogCronLogger{}
	s := &Scheduler{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithLogger(logger),
			cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
		),
		schedule: schedule,
		loc:      loc,
		svc:      svc,
		now:      time.Now,
		ctx:      context.Background(),
	}
	s.cron.Schedule(schedule, cron.FuncJob(s.runJob))
	return s, nil
}

// Start begins scheduling. Jobs run with ctx.
func (s *Scheduler) Start(ctx context.Context) {
	s.ctx = ctx
	s.cron.Start()
	slog.Info("sync_scheduler_started", "next_run", s.NextRun(s.now()))
}

// Stop stops scheduling and waits for a running job until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// NextRun returns the first activation after from, in the scheduler's zone.
func (s *Scheduler) NextRun(from time.Time) time.Time {
	return s.schedule.Next(from.In(s.loc))
}

// SyncAnnual syncs every stored country for the previous and current year.
func (s *Scheduler) SyncAnnual(ctx context.Context) (Report, error) {
	return s.svc.syncStored(ctx, TriggerScheduled, AnnualYears(s.now().In(s.loc)))
}

func (s *Scheduler) runJob() {
	if _, err := s.SyncAnnual(s.ctx); err != nil {
		slog.Error("scheduled_sync_failed", "error", err)
	}
}

// AnnualYears returns the year before now and now's year.
func AnnualYears(now time.Time) []int {
	return []int{now.Year() - 1, now.Year()}
}

type slogCronLogger struct{}

func (slogCronLogger) Info(msg string, keysAndValues ...interface{}) {
	slog.Debug("cron_"+msg, keysAndValues...)
}

func (slogCronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	slog.Error("cron_"+msg, append([]interface{}{"error", err}, keysAndValues...)...)
}
