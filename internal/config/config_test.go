package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, 15*time.Second, cfg.LMS.CourseTimeout)
	assert.Equal(t, 90*time.Second, cfg.LMS.OverallDeadline)
	assert.Equal(t, 8, cfg.LMS.MaxWorkers)
	assert.Equal(t, "https://lms.bahria.edu.pk/Student/Assignments.php", cfg.LMS.AssignmentsURL)

	assert.Equal(t, "https://ntfy.sh", cfg.Notify.URL)
	assert.Equal(t, 5, cfg.Notify.MaxItems)
	assert.Equal(t, 4, cfg.Notify.ReminderPriority)
	assert.Equal(t, 2, cfg.Notify.AllClearPriority)
	assert.Equal(t, []string{"school", "calendar", "warning"}, cfg.Notify.ReminderTags)
	assert.Equal(t, []string{"white_check_mark", "tada"}, cfg.Notify.AllClearTags)

	assert.Equal(t, "assignments.synced", cfg.RabbitMQ.RoutingKey)
	assert.Equal(t, "assignments_synced_queue", cfg.RabbitMQ.QueueName)

	// The scrape deadline must fit inside the server write timeout or
	// long aggregations get cut off mid-response.
	assert.Greater(t, cfg.Server.WriteTimeout, cfg.LMS.OverallDeadline)
}
