package models

import (
	"strings"
	"time"
)

type Student struct {
	Enrollment          string     `json:"enrollment" db:"enrollment"`
	Topic               string     `json:"topic" db:"topic"`
	NotificationEnabled bool       `json:"notification_enabled" db:"notification_enabled"`
	LastSyncedAt        *time.Time `json:"last_synced,omitempty" db:"last_synced_at"`
	CreatedAt           time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at" db:"updated_at"`
}

// TopicFor derives the ntfy routing key for an enrollment number.
func TopicFor(enrollment string) string {
	return "bu-assignments-" + strings.ToLower(enrollment)
}
