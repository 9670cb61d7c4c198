package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/TasmeerJamali/Bahria-University-Assignment-Tracker/internal/models"
	"github.com/TasmeerJamali/Bahria-University-Assignment-Tracker/internal/repository"
	"github.com/TasmeerJamali/Bahria-University-Assignment-Tracker/internal/service/classify"
	"github.com/TasmeerJamali/Bahria-University-Assignment-Tracker/internal/worker/queue"
	"github.com/TasmeerJamali/Bahria-University-Assignment-Tracker/pkg/utils"
)

var ErrEnrollmentRequired = errors.New("enrollment is required")

// SyncService stores a student's freshly scraped assignment set and
// announces the sync on the queue so the notification worker can react.
type SyncService interface {
	Sync(ctx context.Context, req models.SyncRequest) (*models.SyncResponse, error)
}

type syncService struct {
	studentRepo    repository.StudentRepository
	assignmentRepo repository.AssignmentRepository
	publisher      queue.Publisher
	exchange       string
	routingKey     string
	logger         zerolog.Logger
}

func NewSyncService(
	studentRepo repository.StudentRepository,
	assignmentRepo repository.AssignmentRepository,
	publisher queue.Publisher,
	exchange, routingKey string,
	logger zerolog.Logger,
) SyncService {
	return &syncService{
		studentRepo:    studentRepo,
		assignmentRepo: assignmentRepo,
		publisher:      publisher,
		exchange:       exchange,
		routingKey:     routingKey,
		logger:         logger,
	}
}

func (s *syncService) Sync(ctx context.Context, req models.SyncRequest) (*models.SyncResponse, error) {
	enrollment := strings.TrimSpace(req.Enrollment)
	if enrollment == "" {
		return nil, ErrEnrollmentRequired
	}

	now := time.Now()
	topic := models.TopicFor(enrollment)

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

	syncID := utils.GenerateUUID()
	if err := s.assignmentRepo.Replace(ctx, enrollment, syncID, req.Assignments, now); err != nil {
		return nil, err
	}

	if err := s.studentRepo.MarkSynced(ctx, enrollment, now); err != nil {
		return nil, err
	}

	classified := classify.Classify(req.Assignments)

	s.publishSyncedEvent(ctx, syncID, enrollment, len(req.Assignments))

	s.logger.Info().
		Str("enrollment", enrollment).
		Str("sync_id", syncID).
		Int("assignments", len(req.Assignments)).
		Int("urgent", classified.UrgentCount()).
		Msg("Assignments synced")

	return &models.SyncResponse{
		SyncID:      syncID,
		Synced:      len(req.Assignments),
		UrgentCount: classified.UrgentCount(),
		Topic:       topic,
	}, nil
}

// publishSyncedEvent is best effort: a queue outage must not fail the
// sync itself, the next trigger run will still pick the data up.
func (s *syncService) publishSyncedEvent(ctx context.Context, syncID, enrollment string, count int) {
	if s.publisher == nil {
		return
	}

	event := models.AssignmentsSyncedEvent{
		SyncID:     syncID,
		Enrollment: enrollment,
		Count:      count,
		Timestamp:  time.Now().Unix(),
	}

	body, err := json.Marshal(event)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to marshal synced event")
		return
	}

	if err := s.publisher.Publish(ctx, s.exchange, s.routingKey, body); err != nil {
		s.logger.Error().Err(err).Str("enrollment", enrollment).Msg("Failed to publish synced event")
	}
}
