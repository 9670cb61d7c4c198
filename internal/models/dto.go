package models

import "time"

// Data Transfer Objects

type SessionCookie struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type ScrapeRequest struct {
	Cookies    []SessionCookie `json:"cookies"`
	SemesterID string          `json:"semester_id"`
	Courses    []CourseRef     `json:"courses"`
}

type CourseFailure struct {
	CourseID   string `json:"course_id"`
	CourseName string `json:"course_name"`
	Error      string `json:"error"`
}

type ScrapeResponse struct {
	Assignments []Assignment    `json:"assignments"`
	Classified  ClassifiedSet   `json:"classified"`
	Failures    []CourseFailure `json:"failures,omitempty"`
	ScrapedAt   time.Time       `json:"scraped_at"`
}

type SyncRequest struct {
	Enrollment  string       `json:"enrollment"`
	Assignments []Assignment `json:"assignments"`
}

type SyncResponse struct {
	SyncID      string `json:"sync_id"`
	Synced      int    `json:"synced"`
	UrgentCount int    `json:"urgent_count"`
	Topic       string `json:"topic"`
}

type SubscribeRequest struct {
	Enrollment string `json:"enrollment"`
}

type SubscribeResponse struct {
	Topic   string `json:"topic"`
	Message string `json:"message"`
}

type StudentsResponse struct {
	Count    int      `json:"count"`
	Students []string `json:"students"`
}

// DeliveryDetail reports the notification outcome for one addressee.
type DeliveryDetail struct {
	Enrollment  string `json:"enrollment"`
	Status      string `json:"status"` // sent, all_clear, skipped, error
	UrgentCount int    `json:"urgent_count,omitempty"`
	Reason      string `json:"reason,omitempty"`
}

type TriggerSummary struct {
	Sent    int              `json:"sent"`
	Skipped int              `json:"skipped"`
	Errors  int              `json:"errors"`
	Details []DeliveryDetail `json:"details"`
}

type TriggerResponse struct {
	Success   bool           `json:"success"`
	Timestamp time.Time      `json:"timestamp"`
	Results   TriggerSummary `json:"results"`
}
