package notify

import (
	"fmt"
	"strings"

	"github.com/TasmeerJamali/Bahria-University-Assignment-Tracker/internal/models"
)

const (
	ReminderTitle = "BU Assignment Reminder"
	AllClearTitle = "BU Assignment Tracker"

	allClearMessage = "🎉 All Clear!\n\n" +
		"No urgent assignments today.\n" +
		"Keep up the great work!\n\n" +
		"✅ All assignments are either:\n" +
		"• Already submitted, or\n" +
		"• Due in 4+ days"
)

// Format decides whether a classified set warrants an alert and renders
// the message body. UrgentCount always reports the full overdue+urgent
// total even when the rendered list is truncated to maxItems; extras
// are silently omitted from the body. Pure: dispatch is the caller's
// concern.
func Format(set models.ClassifiedSet, maxItems int) models.NotificationDecision {
	urgentCount := set.UrgentCount()

	if urgentCount == 0 {
		return models.NotificationDecision{
			UrgentCount: 0,
			Message:     allClearMessage,
			AllClear:    true,
		}
	}

	// Overdue first, then urgent: both buckets are already ascending by
	// DaysLeft, so the concatenation is earliest-due-first.
	urgent := make([]models.Assignment, 0, urgentCount)
	urgent = append(urgent, set.Overdue...)
	urgent = append(urgent, set.Urgent...)

	if maxItems > 0 && len(urgent) > maxItems {
		urgent = urgent[:maxItems]
	}

	lines := []string{fmt.Sprintf("WARNING: %d URGENT assignment(s)!", urgentCount), ""}
	for i, a := range urgent {
		lines = append(lines,
			fmt.Sprintf("%d. %s", i+1, a.CourseName),
			fmt.Sprintf("   %q", a.Title),
			fmt.Sprintf("   Due: %s", dueText(a.DaysLeft)),
			"",
		)
	}

	return models.NotificationDecision{
		UrgentCount: urgentCount,
		Message:     strings.Join(lines, "\n"),
		AllClear:    false,
	}
}

func dueText(daysLeft *int) string {
	if daysLeft == nil {
		return "unknown"
	}
	switch *daysLeft {
	case 0:
		return "TODAY!"
	case 1:
		return "Tomorrow"
	default:
		return fmt.Sprintf("%d days left", *daysLeft)
	}
}
