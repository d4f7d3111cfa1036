package country

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a country code or name is not stored.
var ErrNotFound = errors.New("country not found")

// Country is a holiday-owning country keyed by its ISO 3166-1 alpha-2 code.
type Country struct {
	ID        int64     `json:"id"`
	Code      string    `json:"countryCode"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
