package holiday

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ptr(t time.Time) *time.Time {
	return &t
}

func TestDateBetween(t *testing.T) {
	start := date(2025, 1, 1)
	end := date(2025, 12, 31)

	tests := []struct {
		name     string
		start    *time.Time
		end      *time.Time
		wantSQL  string
		wantArgs []any
	}{
		{"both bounds", &start, &end, "h.date BETWEEN ? AND ?", []any{start, end}},
		{"only start", &start, nil, "h.date >= ?", []any{start}},
		{"only end", nil, &end, "h.date <= ?", []any{end}},
		{"no bounds", nil, nil, "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DateBetween(tt.start, tt.end)
			assert.Equal(t, tt.wantSQL, p.SQL)
			assert.Equal(t, tt.wantArgs, p.Args)
		})
	}
}

func TestDateBetween_TruncatesToCalendarDate(t *testing.T) {
	p := DateBetween(ptr(time.Date(2025, 3, 1, 15, 30, 0, 0, time.UTC)), nil)
	assert.Equal(t, []any{date(2025, 3, 1)}, p.Args)
}

func TestCountryNameEq(t *testing.T) {
	assert.True(t, CountryNameEq("").Empty())

	p := CountryNameEq("Germany")
	assert.Equal(t, "c.name = ?", p.SQL)
	assert.Equal(t, []any{"Germany"}, p.Args)
}

func TestWhere(t *testing.T) {
	start := date(2025, 1, 1)
	end := date(2025, 12, 31)

	t.Run("no predicates", func(t *testing.T) {
		where, args := Where(DateBetween(nil, nil), CountryNameEq(""))
		assert.Empty(t, where)
		assert.Empty(t, args)
	})

	t.Run("numbers placeholders across fragments", func(t *testing.T) {
		where, args := Where(DateBetween(&start, &end), CountryNameEq("Germany"))
		assert.Equal(t, "WHERE h.date BETWEEN $1 AND $2 AND c.name = $3", where)
		assert.Equal(t, []any{start, end, "Germany"}, args)
	})

	t.Run("skips empty fragments", func(t *testing.T) {
		where, args := Where(DateBetween(nil, &end), CountryNameEq(""), CountryNameEq("Japan"))
		assert.Equal(t, "WHERE h.date <= $1 AND c.name = $2", where)
		assert.Equal(t, []any{end, "Japan"}, args)
	})
}
