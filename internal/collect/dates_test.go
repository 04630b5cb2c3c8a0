package collect

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(year int, month time.Month, day int) func() time.Time {
	return func() time.Time {
		return time.Date(year, month, day, 10, 30, 0, 0, time.UTC)
	}
}

func TestNormalize_RelativePhrases(t *testing.T) {
	n := Normalizer{Now: fixedClock(2025, time.January, 1)}

	tests := []struct {
		input string
		want  string
	}{
		{"30 days", "2025-01-31"},
		{"in 5 days", "2025-01-06"},
		{"1 day", "2025-01-02"},
		{"2 weeks", "2025-01-15"},
		{"in 1 week", "2025-01-08"},
		{"3 months", "2025-04-01"},
		{"tomorrow", "2025-01-02"},
		{"next week", "2025-01-08"},
		{"next month", "2025-01-31"},
		{"net 30", "2025-01-31"},
		{"net30", "2025-01-31"},
		{"Net 15", "2025-01-16"},
	}
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, ok := n.Normalize(tc.input)
			require.True(t, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNormalize_NumericBeatsLiteral(t *testing.T) {
	n := Normalizer{Now: fixedClock(2025, time.January, 1)}

	// "2 weeks" must resolve to 14 days, never fall into the
	// "next week" branch.
	got, ok := n.Normalize("in 2 weeks from now")
	require.True(t, ok)
	assert.Equal(t, "2025-01-15", got)
}

func TestNormalize_AbsoluteDates(t *testing.T) {
	n := Normalizer{Now: fixedClock(2025, time.January, 1)}

	tests := []struct {
		input string
		want  string
	}{
		{"2025-03-15", "2025-03-15"},
		{"April 12 2025", "2025-04-12"},
		{"April 12, 2025", "2025-04-12"},
		{"jan 5th, 2026", "2026-01-05"},
		{"12/25/2025", "2025-12-25"},
		{"by April 12 2025", "2025-04-12"},
		{"due on March 3 2025", "2025-03-03"},
	}
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, ok := n.Normalize(tc.input)
			require.True(t, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNormalize_YearlessAssumesUpcoming(t *testing.T) {
	n := Normalizer{Now: fixedClock(2025, time.June, 15)}

	// Still ahead this year.
	got, ok := n.Normalize("December 15")
	require.True(t, ok)
	assert.Equal(t, "2025-12-15", got)

	// Already passed, rolls into next year.
	got, ok = n.Normalize("January 5")
	require.True(t, ok)
	assert.Equal(t, "2026-01-05", got)

	// Today itself does not roll.
	got, ok = n.Normalize("June 15")
	require.True(t, ok)
	assert.Equal(t, "2025-06-15", got)
}

func TestNormalize_Unparseable(t *testing.T) {
	n := Normalizer{Now: fixedClock(2025, time.January, 1)}

	for _, input := range []string{"", "   ", "whenever", "not a date"} {
		_, ok := n.Normalize(input)
		assert.False(t, ok, "input %q", input)
	}
}

func TestNormalize_SystemClockDefault(t *testing.T) {
	var n Normalizer

	got, ok := n.Normalize("tomorrow")
	require.True(t, ok)
	want := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	assert.Equal(t, want, got)
}
