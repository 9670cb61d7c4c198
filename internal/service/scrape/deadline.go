package scrape

import (
	"math"
	"strings"
	"time"
)

// deadlineLayouts are tried most specific first: a date-only layout
// would happily match the date prefix of a timestamped string and drop
// the time of day.
var deadlineLayouts = []string{
	"Monday, 2 January 2006, 3:04 pm",
	"2 January 2006, 3:04 pm",
	"2 January 2006 3:04 pm",
	"2 Jan 2006 3:04 pm",
	"2 January 2006",
	"2 Jan 2006",
}

// NormalizeDeadline parses the free-text deadline column into a point
// in time. The LMS renders the separator between date and time
// inconsistently (usually a hyphen, e.g. "25 September 2025-11:00 pm"),
// so separators are canonicalized to spaces before format matching.
// The rendered times are wall-clock in the LMS's zone with no offset in
// the text, so the deadline is anchored in loc, which callers take from
// the same clock they pass to DaysLeft. Returns nil when no known
// format matches; that is a normal outcome, not an error.
func NormalizeDeadline(text string, loc *time.Location) *time.Time {
	cleaned := canonicalizeDeadline(text)
	if cleaned == "" {
		return nil
	}

	if loc == nil {
		loc = time.UTC
	}

	for _, layout := range deadlineLayouts {
		if t, err := time.ParseInLocation(layout, cleaned, loc); err == nil {
			return &t
		}
	}

	return nil
}

func canonicalizeDeadline(text string) string {
	cleaned := strings.ReplaceAll(text, "-", " ")
	return strings.Join(strings.Fields(cleaned), " ")
}

// DaysLeft returns the whole days between now and the deadline,
// flooring the fractional day: a deadline 5 days and 1 hour in the past
// is -6, one 3 days and 23 hours ahead is 3. Nil deadline yields nil.
func DaysLeft(now time.Time, deadline *time.Time) *int {
	if deadline == nil {
		return nil
	}

	days := int(math.Floor(deadline.Sub(now).Hours() / 24))
	return &days
}
