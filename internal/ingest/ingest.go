package ingest

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidYears is returned when a sync is requested for no or implausible years.
var ErrInvalidYears = errors.New("invalid sync years")

type Trigger string

const (
	TriggerBootstrap Trigger = "BOOTSTRAP"
	TriggerScheduled Trigger = "SCHEDULED"
	TriggerManual    Trigger = "MANUAL"
)

type Status string

const (
	StatusRunning   Status = "RUNNING"
	StatusCompleted Status = "COMPLETED"
	StatusPartial   Status = "PARTIAL"
	StatusFailed    Status = "FAILED"
)

// Run is one recorded fan-out over (country, year) tasks.
type Run struct {
	ID             string     `json:"id"`
	Trigger        Trigger    `json:"trigger"`
	Years          []int      `json:"years"`
	StartedAt      time.Time  `json:"startedAt"`
	FinishedAt     *time.Time `json:"finishedAt,omitempty"`
	Status         Status     `json:"status"`
	TasksTotal     int        `json:"tasksTotal"`
	TasksSucceeded int        `json:"tasksSucceeded"`
	TasksFailed    int        `json:"tasksFailed"`
	Error          string     `json:"error,omitempty"`
}

// Task is one (country, year) unit of a fan-out.
type Task struct {
	CountryCode string
	Year        int
}

func (t Task) String() string {
	return fmt.Sprintf("%s/%d", t.CountryCode, t.Year)
}

type Failure struct {
	CountryCode string `json:"countryCode"`
	Year        int    `json:"year"`
	Error       string `json:"error"`
}

// Report summarizes a fan-out. Failures are sorted by country code then year.
type Report struct {
	RunID     string    `json:"runId,omitempty"`
	Total     int       `json:"total"`
	Succeeded int       `json:"succeeded"`
	Failed    int       `json:"failed"`
	Failures  []Failure `json:"failures"`
}

func (r Report) status() Status {
	switch {
	case r.Failed == 0:
		return StatusCompleted
	case r.Succeeded == 0:
		return StatusFailed
	default:
		return StatusPartial
	}
}

// YearRange returns n consecutive years starting at from.
func YearRange(from, n int) []int {
	if n <= 0 {
		return nil
	}
	years := make([]int, n)
	for i := range years {
		years[i] = from + i
	}
	return years
}
