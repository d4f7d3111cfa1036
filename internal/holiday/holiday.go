package holiday

import (
	"encoding/json"
	"errors"
	"slices"
	"time"

	"holidaykeeper/internal/country"
)

var (
	// ErrInvalidDateRange is returned when a search starts after it ends.
	ErrInvalidDateRange = errors.New("start date must be before or equal to end date")
	// ErrNoCountry is returned when an unreconciled holiday reaches the store.
	ErrNoCountry = errors.New("holiday has no owning country")
)

// Holiday is a public holiday observed in one country on one calendar date.
// Date is always a calendar date at 00:00 UTC.
type Holiday struct {
	ID         int64
	Name       string
	LocalName  string
	Date       time.Time
	Fixed      bool
	Global     bool
	LaunchYear *string
	Counties   []string
	Types      []string
	Country    *country.Country
}

// View is the read projection returned by searches.
type View struct {
	ID         int64     `json:"id"`
	LocalName  string    `json:"localName"`
	Name       string    `json:"name"`
	Country    string    `json:"country"`
	Fixed      bool      `json:"fixed"`
	Global     bool      `json:"global"`
	LaunchYear *string   `json:"launchYear"`
	Date       time.Time `json:"-"`
}

func (v View) MarshalJSON() ([]byte, error) {
	type alias View
	return json.Marshal(struct {
		alias
		Date string `json:"date"`
	}{alias: alias(v), Date: v.Date.Format(time.DateOnly)})
}

// SearchCondition filters holiday searches. A nil bound is open.
type SearchCondition struct {
	StartDate   *time.Time
	EndDate     *time.Time
	CountryName string
}

// Validate reports ErrInvalidDateRange when both bounds are set and
// StartDate is after EndDate. Equal bounds are allowed.
func (c SearchCondition) Validate() error {
	if c.StartDate != nil && c.EndDate != nil && c.StartDate.After(*c.EndDate) {
		return ErrInvalidDateRange
	}
	return nil
}

// DateOf truncates t to its calendar date in UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type naturalKey struct {
	countryID int64
	date      time.Time
	name      string
}

// MergeDuplicates folds holidays sharing (country, date, name) into the first
// occurrence. Counties and types are unioned in first-seen order and the
// merged holiday is global if any occurrence is.
func MergeDuplicates(holidays []Holiday) []Holiday {
	out := make([]Holiday, 0, len(holidays))
	index := make(map[naturalKey]int, len(holidays))
	for _, h := range holidays {
		var countryID int64
		if h.Country != nil {
			countryID = h.Country.ID
		}
		key := naturalKey{countryID: countryID, date: DateOf(h.Date), name: h.Name}
		i, ok := index[key]
		if !ok {
			index[key] = len(out)
			out = append(out, h)
			continue
		}
		out[i].Global = out[i].Global || h.Global
		out[i].Counties = union(out[i].Counties, h.Counties)
		out[i].Types = union(out[i].Types, h.Types)
	}
	return out
}

func union(a, b []string) []string {
	if len(b) == 0 {
		return a
	}
	out := append([]string(nil), a...)
	for _, v := range b {
		if !slices.Contains(out, v) {
			out = append(out, v)
		}
	}
	return out
}
