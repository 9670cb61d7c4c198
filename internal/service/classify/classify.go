package classify

import (
	"sort"

	"github.com/TasmeerJamali/Bahria-University-Assignment-Tracker/internal/models"
)

// Bucket thresholds in whole days. DaysLeft is authoritative for
// placement; the source's overdue marker is advisory context only and
// the two can legitimately disagree when the LMS renders a date the
// normalizer reads differently.
const (
	urgentMaxDays = 3
	soonMaxDays   = 7
)

// Classify partitions the pending assignments into urgency buckets.
// Every pending item lands in exactly one bucket; submitted items go
// to the separate Submitted bucket unordered. Each display bucket is
// stably sorted by ascending DaysLeft with unknown deadlines last, so
// two items with equal DaysLeft keep their aggregation order.
func Classify(assignments []models.Assignment) models.ClassifiedSet {
	var set models.ClassifiedSet

	for _, a := range assignments {
		if !a.Pending() {
			set.Submitted = append(set.Submitted, a)
			continue
		}

		switch {
		case a.DaysLeft == nil:
			set.Unknown = append(set.Unknown, a)
		case *a.DaysLeft < 0:
			set.Overdue = append(set.Overdue, a)
		case *a.DaysLeft <= urgentMaxDays:
			set.Urgent = append(set.Urgent, a)
		case *a.DaysLeft <= soonMaxDays:
			set.Soon = append(set.Soon, a)
		default:
			set.Upcoming = append(set.Upcoming, a)
		}
	}

	sortByDaysLeft(set.Overdue)
	sortByDaysLeft(set.Urgent)
	sortByDaysLeft(set.Soon)
	sortByDaysLeft(set.Upcoming)
	sortByDaysLeft(set.Unknown)

	return set
}

func sortByDaysLeft(items []models.Assignment) {
	sort.SliceStable(items, func(i, j int) bool {
		return lessDaysLeft(items[i].DaysLeft, items[j].DaysLeft)
	})
}

// lessDaysLeft orders ascending with nil sorting after any finite value.
func lessDaysLeft(a, b *int) bool {
	if a == nil {
		return false
	}
	if b == nil {
		return true
	}
	return *a < *b
}
