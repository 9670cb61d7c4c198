package models

type AssignmentsSyncedEvent struct {
	SyncID     string `json:"sync_id"`
	Enrollment string `json:"enrollment"`
	Count      int    `json:"count"`
	Timestamp  int64  `json:"timestamp"`
}
