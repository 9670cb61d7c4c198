package models

import (
	"strings"
	"time"
)

type AssignmentStatus string

const (
	StatusSubmitted    AssignmentStatus = "Submitted"
	StatusNotSubmitted AssignmentStatus = "Not Submitted"
)

func (s AssignmentStatus) String() string {
	return string(s)
}

// IsSubmitted compares case-insensitively: synced payloads from older
// clients carry "submitted" in lowercase.
func (s AssignmentStatus) IsSubmitted() bool {
	return strings.EqualFold(string(s), string(StatusSubmitted))
}

// CourseRef identifies one course in the LMS course dropdown.
type CourseRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// RawRecord is one row of the LMS assignments table before deadline
// normalization. Rows with an empty title are never retained.
type RawRecord struct {
	Title         string `json:"title"`
	Submitted     bool   `json:"submitted"`
	OverdueMarker bool   `json:"overdue_marker"`
	DeadlineText  string `json:"deadline_text"`
}

// Assignment is the aggregated entity. DaysLeft is nil exactly when
// DeadlineAt is nil (deadline text did not match any known format).
type Assignment struct {
	CourseName   string           `json:"course" db:"course_name"`
	Title        string           `json:"title" db:"title"`
	DeadlineText string           `json:"deadline" db:"deadline_text"`
	DeadlineAt   *time.Time       `json:"deadline_date,omitempty" db:"deadline_at"`
	DaysLeft     *int             `json:"days_left" db:"days_left"`
	Status       AssignmentStatus `json:"status" db:"status"`
	IsOverdue    bool             `json:"is_overdue" db:"is_overdue"`
}

// Pending reports whether the assignment still needs a submission.
func (a Assignment) Pending() bool {
	return !a.Status.IsSubmitted()
}

// ClassifiedSet partitions the pending assignments into urgency buckets
// by DaysLeft. Submitted items are kept aside, unordered. The source's
// overdue marker is advisory only and never decides bucket placement.
type ClassifiedSet struct {
	Overdue   []Assignment `json:"overdue"`
	Urgent    []Assignment `json:"urgent"`
	Soon      []Assignment `json:"soon"`
	Upcoming  []Assignment `json:"upcoming"`
	Unknown   []Assignment `json:"unknown"`
	Submitted []Assignment `json:"submitted"`
}

// UrgentCount counts items due within three days, overdue included.
func (s ClassifiedSet) UrgentCount() int {
	return len(s.Overdue) + len(s.Urgent)
}

// NotificationDecision is the outcome of formatting one student's
// classified set. Derived, never stored.
type NotificationDecision struct {
	UrgentCount int    `json:"urgent_count"`
	Message     string `json:"message"`
	AllClear    bool   `json:"all_clear"`
}
