package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/TasmeerJamali/Bahria-University-Assignment-Tracker/internal/models"
)

func TestSubscribeCreatesStudent(t *testing.T) {
	repo := &fakeStudentRepo{exists: false}
	svc := NewStudentService(repo, zerolog.Nop())

	resp, err := svc.Subscribe(context.Background(), "01-134212-001")

	assert.NoError(t, err)
	assert.Equal(t, "bu-assignments-01-134212-001", resp.Topic)
	assert.Contains(t, resp.Message, "Subscribe to 'bu-assignments-01-134212-001'")

	if assert.Len(t, repo.upserted, 1) {
		assert.True(t, repo.upserted[0].NotificationEnabled)
	}
}

func TestSubscribeIsIdempotent(t *testing.T) {
	repo := &fakeStudentRepo{exists: true}
	svc := NewStudentService(repo, zerolog.Nop())

	resp, err := svc.Subscribe(context.Background(), "01-134212-001")

	assert.NoError(t, err)
	assert.Equal(t, "bu-assignments-01-134212-001", resp.Topic)
	assert.Empty(t, repo.upserted)
}

func TestSubscribeLowercasesTopic(t *testing.T) {
	svc := NewStudentService(&fakeStudentRepo{}, zerolog.Nop())

	resp, err := svc.Subscribe(context.Background(), "01-134212-ABC")

	assert.NoError(t, err)
	assert.Equal(t, "bu-assignments-01-134212-abc", resp.Topic)
}

func TestSubscribeRequiresEnrollment(t *testing.T) {
	svc := NewStudentService(&fakeStudentRepo{}, zerolog.Nop())

	_, err := svc.Subscribe(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrEnrollmentRequired)
}

func TestListStudents(t *testing.T) {
	repo := &fakeStudentRepo{students: []models.Student{
		{Enrollment: "a"},
		{Enrollment: "b"},
	}}
	svc := NewStudentService(repo, zerolog.Nop())

	resp, err := svc.List(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, []string{"a", "b"}, resp.Students)
}

func TestListStudentsEmpty(t *testing.T) {
	svc := NewStudentService(&fakeStudentRepo{}, zerolog.Nop())

	resp, err := svc.List(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 0, resp.Count)
	assert.Empty(t, resp.Students)
}

func TestListStudentsRepositoryFailure(t *testing.T) {
	svc := NewStudentService(&fakeStudentRepo{err: errors.New("db down")}, zerolog.Nop())

	_, err := svc.List(context.Background())
	assert.Error(t, err)
}
