package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssignmentStatusIsSubmitted(t *testing.T) {
	assert.True(t, StatusSubmitted.IsSubmitted())
	assert.True(t, AssignmentStatus("submitted").IsSubmitted())
	assert.True(t, AssignmentStatus("SUBMITTED").IsSubmitted())
	assert.False(t, StatusNotSubmitted.IsSubmitted())
	assert.False(t, AssignmentStatus("").IsSubmitted())
}

func TestAssignmentPending(t *testing.T) {
	assert.True(t, Assignment{Status: StatusNotSubmitted}.Pending())
	assert.False(t, Assignment{Status: StatusSubmitted}.Pending())
}

func TestUrgentCount(t *testing.T) {
	set := ClassifiedSet{
		Overdue: []Assignment{{Title: "a"}},
		Urgent:  []Assignment{{Title: "b"}, {Title: "c"}},
		Soon:    []Assignment{{Title: "d"}},
	}
	assert.Equal(t, 3, set.UrgentCount())
	assert.Equal(t, 0, ClassifiedSet{}.UrgentCount())
}

func TestTopicFor(t *testing.T) {
	assert.Equal(t, "bu-assignments-01-134212-001", TopicFor("01-134212-001"))
	assert.Equal(t, "bu-assignments-01-134212-abc", TopicFor("01-134212-ABC"))
}
