package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/TasmeerJamali/Bahria-University-Assignment-Tracker/internal/models"
	"github.com/TasmeerJamali/Bahria-University-Assignment-Tracker/internal/repository"
)

type StudentService interface {
	Subscribe(ctx context.Context, enrollment string) (*models.SubscribeResponse, error)
	List(ctx context.Context) (*models.StudentsResponse, error)
}

type studentService struct {
	studentRepo repository.StudentRepository
	logger      zerolog.Logger
}

func NewStudentService(studentRepo repository.StudentRepository, logger zerolog.Logger) StudentService {
	return &studentService{
		studentRepo: studentRepo,
		logger:      logger,
	}
}

func (s *studentService) Subscribe(ctx context.Context, enrollment string) (*models.SubscribeResponse, error) {
	enrollment = strings.TrimSpace(enrollment)
	if enrollment == "" {
		return nil, ErrEnrollmentRequired
	}

	now := time.Now()
	topic := models.TopicFor(enrollment)

	exists, err := s.studentRepo.Exists(ctx, enrollment)
	if err != nil {
		return nil, err
	}

	if !exists {
		student := &models.Student{
			Enrollment:          enrollment,
			Topic:               topic,
			NotificationEnabled: true,
			CreatedAt:           now,
			UpdatedAt:           now,
		}
		if err := s.studentRepo.Upsert(ctx, student); err != nil {
			return nil, err
		}

		s.logger.Info().Str("enrollment", enrollment).Str("topic", topic).Msg("Student subscribed")
	}

	return &models.SubscribeResponse{
		Topic:   topic,
		Message: fmt.Sprintf("Subscribe to '%s' in the ntfy app to receive notifications", topic),
	}, nil
}

func (s *studentService) List(ctx context.Context) (*models.StudentsResponse, error) {
	students, err := s.studentRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	enrollments := make([]string, 0, len(students))
	for _, student := range students {
		enrollments = append(enrollments, student.Enrollment)
	}

	return &models.StudentsResponse{
		Count:    len(enrollments),
		Students: enrollments,
	}, nil
}
