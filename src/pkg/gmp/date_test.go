package gmp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var testReference = time.Date(2024, time.April, 5, 10, 30, 0, 0, testIST)

func TestNormalizeDateIsTotal(t *testing.T) {
	// None of these may panic; all must yield the sentinel.
	inputs := []any{nil, "", "   ", 123.0, true, []any{"2024-04-05"}, "garbage", "32-Foo", "not a date at all"}

	for _, input := range inputs {
		assert.Equal(t, DateUnknown, NormalizeDate(input, testReference), "input: %v", input)
	}
}

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name   string
		input  any
		expect string
	}{
		{"iso passthrough", "2024-04-05", "2024-04-05"},
		{"iso passthrough other year", "2023-12-31", "2023-12-31"},
		{"day-month expands with reference year", "5-Apr", "2024-04-05"},
		{"day-month two digits", "05-Apr", "2024-04-05"},
		{"day-month case-insensitive", "15-AUG", "2024-08-15"},
		{"day-month lowercase", "9-dec", "2024-12-09"},
		{"explicit layout day-month-year", "05-Apr-2024", "2024-04-05"},
		{"explicit layout slashes", "2024/04/05", "2024-04-05"},
		{"explicit layout with time", "2024-04-05 17:00:00", "2024-04-05"},
		{"rfc3339", "2024-04-05T10:00:00+05:30", "2024-04-05"},
		// Offset-bearing inputs take the reference-zone calendar date,
		// not the date in the string's own zone.
		{"rfc3339 foreign offset crosses day boundary", "2024-04-05T22:00:00-05:00", "2024-04-06"},
		{"rfc3339 utc late evening", "2024-04-05T23:30:00Z", "2024-04-06"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, NormalizeDate(tt.input, testReference))
		})
	}
}

func TestResolveCloseDate(t *testing.T) {
	t.Run("prefers the sortable close field", func(t *testing.T) {
		row := map[string]any{"~Srt_Close": "2024-04-05", "Close": "10-Apr"}
		assert.Equal(t, "2024-04-05", ResolveCloseDate(row, testReference))
	})

	t.Run("falls back to Close when absent", func(t *testing.T) {
		row := map[string]any{"Close": "5-Apr"}
		assert.Equal(t, "2024-04-05", ResolveCloseDate(row, testReference))
	})

	t.Run("falls back to Close when markup strips to nothing", func(t *testing.T) {
		row := map[string]any{"~Srt_Close": "<span></span>", "Close": "<b>5-Apr</b>"}
		assert.Equal(t, "2024-04-05", ResolveCloseDate(row, testReference))
	})

	t.Run("sentinel when neither field is usable", func(t *testing.T) {
		row := map[string]any{"~Srt_Close": 7.0, "Close": nil}
		assert.Equal(t, DateUnknown, ResolveCloseDate(row, testReference))
	})
}

func TestIsClosingToday(t *testing.T) {
	t.Run("matches the reference calendar date", func(t *testing.T) {
		row := map[string]any{"~Srt_Close": "2024-04-05"}
		assert.True(t, IsClosingToday(row, testReference))
	})

	t.Run("does not match another date", func(t *testing.T) {
		row := map[string]any{"~Srt_Close": "2024-04-06"}
		assert.False(t, IsClosingToday(row, testReference))
	})

	t.Run("unparseable close dates never match", func(t *testing.T) {
		row := map[string]any{"~Srt_Close": "whenever", "Close": "soon"}
		assert.False(t, IsClosingToday(row, testReference))
	})

	t.Run("empty row never matches", func(t *testing.T) {
		assert.False(t, IsClosingToday(map[string]any{}, testReference))
	})
}
