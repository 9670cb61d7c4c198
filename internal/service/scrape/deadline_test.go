package scrape

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDeadline(t *testing.T) {
	tests := []struct {
		name string
		text string
		want time.Time
	}{
		{
			name: "hyphen between date and time",
			text: "25 September 2025-11:00 pm",
			want: time.Date(2025, time.September, 25, 23, 0, 0, 0, time.UTC),
		},
		{
			name: "long month with time",
			text: "25 September 2025 11:00 pm",
			want: time.Date(2025, time.September, 25, 23, 0, 0, 0, time.UTC),
		},
		{
			name: "short month with time",
			text: "5 Oct 2025 9:30 am",
			want: time.Date(2025, time.October, 5, 9, 30, 0, 0, time.UTC),
		},
		{
			name: "long month date only",
			text: "25 September 2025",
			want: time.Date(2025, time.September, 25, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "short month date only",
			text: "5 Oct 2025",
			want: time.Date(2025, time.October, 5, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "weekday prefixed long form",
			text: "Friday, 26 September 2025, 11:59 pm",
			want: time.Date(2025, time.September, 26, 23, 59, 0, 0, time.UTC),
		},
		{
			name: "comma between date and time",
			text: "25 September 2025, 11:00 pm",
			want: time.Date(2025, time.September, 25, 23, 0, 0, 0, time.UTC),
		},
		{
			name: "extra whitespace",
			text: "  25   September 2025-11:00   pm ",
			want: time.Date(2025, time.September, 25, 23, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeDeadline(tt.text, time.UTC)
			if assert.NotNil(t, got) {
				assert.True(t, tt.want.Equal(*got), "got %v, want %v", got, tt.want)
			}
		})
	}
}

// Matching a date-only layout first would silently drop the time of
// day; the full timestamp must win.
func TestNormalizeDeadlineKeepsTimeOfDay(t *testing.T) {
	got := NormalizeDeadline("25 September 2025-11:00 pm", time.UTC)
	if assert.NotNil(t, got) {
		assert.Equal(t, 23, got.Hour())
	}
}

// The LMS prints Pakistan wall-clock times with no zone marker. The
// deadline must be anchored in the clock's own zone or every day count
// on a non-UTC host is off by the UTC offset.
func TestNormalizeDeadlineAnchorsInClockZone(t *testing.T) {
	pkt := time.FixedZone("PKT", 5*60*60)

	got := NormalizeDeadline("25 September 2025-11:00 pm", pkt)
	if assert.NotNil(t, got) {
		want := time.Date(2025, time.September, 25, 23, 0, 0, 0, pkt)
		assert.True(t, want.Equal(*got), "got %v, want %v", got, want)
	}

	now := time.Date(2025, time.October, 1, 0, 0, 0, 0, pkt)
	left := DaysLeft(now, got)
	if assert.NotNil(t, left) {
		assert.Equal(t, -6, *left)
	}
}

func TestNormalizeDeadlineUnknownFormats(t *testing.T) {
	for _, text := range []string{
		"",
		"   ",
		"N/A",
		"Deadline Exceeded",
		"2025/09/25 23:00",
		"September 25th",
		"25-09-2025",
	} {
		assert.Nil(t, NormalizeDeadline(text, time.UTC), "input %q", text)
	}
}

func TestDaysLeft(t *testing.T) {
	now := time.Date(2025, time.October, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		deadline time.Time
		want     int
	}{
		{
			name:     "past deadline floors the partial day",
			deadline: time.Date(2025, time.September, 25, 23, 0, 0, 0, time.UTC),
			want:     -6,
		},
		{
			name:     "future deadline keeps only whole days",
			deadline: time.Date(2025, time.October, 4, 23, 0, 0, 0, time.UTC),
			want:     3,
		},
		{
			name:     "same day",
			deadline: time.Date(2025, time.October, 1, 22, 0, 0, 0, time.UTC),
			want:     0,
		},
		{
			name:     "exactly one week",
			deadline: time.Date(2025, time.October, 8, 0, 0, 0, 0, time.UTC),
			want:     7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DaysLeft(now, &tt.deadline)
			if assert.NotNil(t, got) {
				assert.Equal(t, tt.want, *got)
			}
		})
	}
}

func TestDaysLeftNilDeadline(t *testing.T) {
	assert.Nil(t, DaysLeft(time.Now(), nil))
}
