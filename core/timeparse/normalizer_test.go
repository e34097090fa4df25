package timeparse

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chicago(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Chicago")
	require.NoError(t, err)
	return loc
}

func TestNormalizeInLayouts(t *testing.T) {
	loc := chicago(t)
	n := New(DefaultEventHour)

	// Chicago is CST (UTC-6) in January and CDT (UTC-5) from March 8th on.
	tests := []struct {
		name     string
		raw      string
		expected time.Time
	}{
		{
			name:     "iso date time",
			raw:      "2026-01-15 20:00",
			expected: time.Date(2026, 1, 16, 2, 0, 0, 0, time.UTC),
		},
		{
			name:     "iso t separator with seconds",
			raw:      "2026-01-15T20:00:00",
			expected: time.Date(2026, 1, 16, 2, 0, 0, 0, time.UTC),
		},
		{
			name:     "rfc3339 keeps its explicit offset",
			raw:      "2026-03-14T20:00:00-05:00",
			expected: time.Date(2026, 3, 15, 1, 0, 0, 0, time.UTC),
		},
		{
			name:     "us slash twelve hour",
			raw:      "3/14/2026 8:00 PM",
			expected: time.Date(2026, 3, 15, 1, 0, 0, 0, time.UTC),
		},
		{
			name:     "padded slash with lowercase meridiem",
			raw:      "03/14/2026 8:00pm",
			expected: time.Date(2026, 3, 15, 1, 0, 0, 0, time.UTC),
		},
		{
			name:     "twenty four hour slash",
			raw:      "3/14/2026 20:00",
			expected: time.Date(2026, 3, 15, 1, 0, 0, 0, time.UTC),
		},
		{
			name:     "hour only meridiem",
			raw:      "3/14/2026 8 PM",
			expected: time.Date(2026, 3, 15, 1, 0, 0, 0, time.UTC),
		},
		{
			name:     "month name with ordinal suffix",
			raw:      "March 14th, 2026 8:00 PM",
			expected: time.Date(2026, 3, 15, 1, 0, 0, 0, time.UTC),
		},
		{
			name:     "abbreviated month",
			raw:      "Mar 14, 2026 8:00 PM",
			expected: time.Date(2026, 3, 15, 1, 0, 0, 0, time.UTC),
		},
		{
			name:     "weekday prefix",
			raw:      "Saturday, March 14, 2026 8:00 PM",
			expected: time.Date(2026, 3, 15, 1, 0, 0, 0, time.UTC),
		},
		{
			name:     "dotted meridiem and extra whitespace",
			raw:      "  January 15, 2026   8 p.m. ",
			expected: time.Date(2026, 1, 16, 2, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := n.NormalizeIn(tt.raw, loc)
			require.NoError(t, err)
			assert.WithinDuration(t, tt.expected, got, 0)
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}

func TestNormalizeInDateOnlyDefaultsEvening(t *testing.T) {
	loc := chicago(t)
	n := New(19)

	// 19:00 CDT on March 14th is midnight UTC on the 15th.
	want := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	for _, raw := range []string{"2026-03-14", "3/14/2026", "March 14, 2026", "Sat Mar 14 2026"} {
		got, err := n.NormalizeIn(raw, loc)
		require.NoError(t, err, "raw=%q", raw)
		assert.WithinDuration(t, want, got, 0, "raw=%q", raw)
	}
}

func TestNormalizeInConfigurableDefaultHour(t *testing.T) {
	loc := chicago(t)
	n := New(20)

	got, err := n.NormalizeIn("2026-03-14", loc)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Date(2026, 3, 15, 1, 0, 0, 0, time.UTC), got, 0)
}

func TestNormalizeInDSTOffsets(t *testing.T) {
	loc := chicago(t)
	n := New(19)

	summer, err := n.NormalizeIn("2026-07-04 20:00", loc)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Date(2026, 7, 5, 1, 0, 0, 0, time.UTC), summer, 0)

	winter, err := n.NormalizeIn("2026-01-15 20:00", loc)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Date(2026, 1, 16, 2, 0, 0, 0, time.UTC), winter, 0)

	// DST ends the morning of Nov 1 2026; the evening default hour is
	// already back on standard time.
	fallBack, err := n.NormalizeIn("2026-11-01", loc)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Date(2026, 11, 2, 1, 0, 0, 0, time.UTC), fallBack, 0)
}

func TestNormalizeInAmbiguousSlashReadsMonthFirst(t *testing.T) {
	loc := chicago(t)
	n := New(19)

	got, err := n.NormalizeIn("1/2/2026", loc)
	require.NoError(t, err)
	assert.Equal(t, time.January, got.In(loc).Month())
	assert.Equal(t, 2, got.In(loc).Day())
}

func TestNormalizeInParseErrors(t *testing.T) {
	loc := chicago(t)
	n := New(19)

	for _, raw := range []string{"TBA", "", "Doors at dusk", "14/25/2026", "2026-13-40"} {
		_, err := n.NormalizeIn(raw, loc)
		require.Error(t, err, "raw=%q", raw)

		var perr *ParseError
		require.True(t, errors.As(err, &perr), "raw=%q should yield a ParseError", raw)
		assert.Equal(t, raw, perr.Raw)
	}
}

func TestNormalizeUnknownTimezone(t *testing.T) {
	n := New(19)

	_, err := n.Normalize("2026-03-14", "Not/AZone")
	require.Error(t, err)

	var perr *ParseError
	assert.False(t, errors.As(err, &perr), "a bad timezone is a config error, not a parse error")
}

func TestClean(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"March 1st 8pm", "March 1 8 PM"},
		{"8 p.m.", "8 PM"},
		{"7:30AM", "7:30 AM"},
		{"  two   words  ", "two words"},
		{"June 22nd, 2026", "June 22, 2026"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, clean(tt.input), "input=%q", tt.input)
	}
}
