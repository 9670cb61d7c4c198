package notify

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/TasmeerJamali/Bahria-University-Assignment-Tracker/internal/models"
	"github.com/TasmeerJamali/Bahria-University-Assignment-Tracker/internal/repository"
	"github.com/TasmeerJamali/Bahria-University-Assignment-Tracker/internal/service/classify"
	"github.com/TasmeerJamali/Bahria-University-Assignment-Tracker/internal/service/integration"
)

const (
	StatusSent     = "sent"
	StatusAllClear = "all_clear"
	StatusSkipped  = "skipped"
	StatusError    = "error"
)

type Config struct {
	MaxItems         int
	ReminderPriority int
	AllClearPriority int
	ReminderTags     []string
	AllClearTags     []string
}

// Service classifies a student's stored assignments, formats the
// digest and hands it to the push relay. Delivery failures are reported
// per addressee and never abort the remaining addressees.
type Service interface {
	NotifyStudent(ctx context.Context, student models.Student, assignments []models.Assignment) models.DeliveryDetail
	NotifyAll(ctx context.Context) (models.TriggerSummary, error)
}

type service struct {
	studentRepo    repository.StudentRepository
	assignmentRepo repository.AssignmentRepository
	push           integration.PushClient
	cfg            Config
	logger         zerolog.Logger
}

func NewService(
	studentRepo repository.StudentRepository,
	assignmentRepo repository.AssignmentRepository,
	push integration.PushClient,
	cfg Config,
	logger zerolog.Logger,
) Service {
	return &service{
		studentRepo:    studentRepo,
		assignmentRepo: assignmentRepo,
		push:           push,
		cfg:            cfg,
		logger:         logger,
	}
}

func (s *service) NotifyStudent(ctx context.Context, student models.Student, assignments []models.Assignment) models.DeliveryDetail {
	if !student.NotificationEnabled {
		return models.DeliveryDetail{
			Enrollment: student.Enrollment,
			Status:     StatusSkipped,
			Reason:     "notifications disabled",
		}
	}

	decision := Format(classify.Classify(assignments), s.cfg.MaxItems)

	title := ReminderTitle
	priority := s.cfg.ReminderPriority
	tags := s.cfg.ReminderTags
	status := StatusSent
	if decision.AllClear {
		title = AllClearTitle
		priority = s.cfg.AllClearPriority
		tags = s.cfg.AllClearTags
		status = StatusAllClear
	}

	if err := s.push.Publish(ctx, student.Topic, title, decision.Message, priority, tags); err != nil {
		s.logger.Error().
			Err(err).
			Str("enrollment", student.Enrollment).
			Str("topic", student.Topic).
			Msg("Failed to deliver notification")

		return models.DeliveryDetail{
			Enrollment:  student.Enrollment,
			Status:      StatusError,
			UrgentCount: decision.UrgentCount,
			Reason:      err.Error(),
		}
	}

	s.logger.Info().
		Str("enrollment", student.Enrollment).
		Str("topic", student.Topic).
		Int("urgent", decision.UrgentCount).
		Bool("all_clear", decision.AllClear).
		Msg("Notification delivered")

	return models.DeliveryDetail{
		Enrollment:  student.Enrollment,
		Status:      status,
		UrgentCount: decision.UrgentCount,
	}
}

func (s *service) NotifyAll(ctx context.Context) (models.TriggerSummary, error) {
	summary := models.TriggerSummary{Details: []models.DeliveryDetail{}}

	students, err := s.studentRepo.GetAll(ctx)
	if err != nil {
		return summary, err
	}

	for _, student := range students {
		assignments, err := s.assignmentRepo.GetByEnrollment(ctx, student.Enrollment)
		if err != nil {
			summary.Errors++
			summary.Details = append(summary.Details, models.DeliveryDetail{
				Enrollment: student.Enrollment,
				Status:     StatusError,
				Reason:     err.Error(),
			})
			continue
		}

		detail := s.NotifyStudent(ctx, student, assignments)
		switch detail.Status {
		case StatusSent, StatusAllClear:
			summary.Sent++
		case StatusSkipped:
			summary.Skipped++
		default:
			summary.Errors++
		}
		summary.Details = append(summary.Details, detail)
	}

	return summary, nil
}
