package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/TasmeerJamali/Bahria-University-Assignment-Tracker/internal/models"
	"github.com/TasmeerJamali/Bahria-University-Assignment-Tracker/internal/repository"
	"github.com/TasmeerJamali/Bahria-University-Assignment-Tracker/internal/service/notify"
	"github.com/TasmeerJamali/Bahria-University-Assignment-Tracker/internal/worker/queue"
)

// NotifyWorker reacts to assignments.synced events: it reloads the
// student's stored set and pushes the urgency digest right after a
// sync, so a student does not have to wait for the next scheduled
// trigger run.
type NotifyWorker interface {
	Start(ctx context.Context) error
	Stop() error
	GetStats() NotifyStats
}

type NotifyStats struct {
	TotalProcessed int `json:"total_processed"`
	FailedJobs     int `json:"failed_jobs"`
}

type notifyWorker struct {
	pool           *Pool
	consumer       queue.Consumer
	studentRepo    repository.StudentRepository
	assignmentRepo repository.AssignmentRepository
	notifyService  notify.Service
	logger         zerolog.Logger
	stats          NotifyStats
	statsMutex     sync.RWMutex
	startTime      time.Time
}

func NewNotifyWorker(
	pool *Pool,
	consumer queue.Consumer,
	studentRepo repository.StudentRepository,
	assignmentRepo repository.AssignmentRepository,
	notifyService notify.Service,
	logger zerolog.Logger,
) NotifyWorker {
	return &notifyWorker{
		pool:           pool,
		consumer:       consumer,
		studentRepo:    studentRepo,
		assignmentRepo: assignmentRepo,
		notifyService:  notifyService,
		logger:         logger,
		startTime:      time.Now(),
	}
}

func (w *notifyWorker) Start(ctx context.Context) error {
	w.logger.Info().Msg("Starting notify worker...")

	w.pool.Start()

	msgs, err := w.consumer.Consume(ctx)
	if err != nil {
		return fmt.Errorf("failed to start consuming messages: %w", err)
	}

	go w.processMessages(ctx, msgs)

	w.logger.Info().Msg("Notify worker started")
	return nil
}

func (w *notifyWorker) Stop() error {
	w.logger.Info().Msg("Stopping notify worker...")

	w.pool.Stop()

	if err := w.consumer.Close(); err != nil {
		w.logger.Error().Err(err).Msg("Failed to close queue consumer")
	}

	w.logger.Info().
		Int("total_processed", w.stats.TotalProcessed).
		Int("failed_jobs", w.stats.FailedJobs).
		Dur("uptime", time.Since(w.startTime)).
		Msg("Notify worker stopped")

	return nil
}

func (w *notifyWorker) processMessages(ctx context.Context, msgs <-chan queue.Message) {
	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("Stopping message processing")
			return
		case msg, ok := <-msgs:
			if !ok {
				w.logger.Warn().Msg("Message channel closed")
				return
			}

			w.pool.Submit(func() {
				if err := w.processMessage(ctx, msg); err != nil {
					w.logger.Error().Err(err).Msg("Failed to process message")

					w.statsMutex.Lock()
					w.stats.FailedJobs++
					w.statsMutex.Unlock()

					if isPermanentError(err) {
						if ackErr := msg.Ack(false); ackErr != nil {
							w.logger.Error().Err(ackErr).Msg("Failed to ack message")
						}
						return
					}

					if nackErr := msg.Nack(false, true); nackErr != nil {
						w.logger.Error().Err(nackErr).Msg("Failed to nack message")
					}
					return
				}

				if err := msg.Ack(false); err != nil {
					w.logger.Error().Err(err).Msg("Failed to ack message")
				}

				w.statsMutex.Lock()
				w.stats.TotalProcessed++
				w.statsMutex.Unlock()
			})
		}
	}
}

func (w *notifyWorker) processMessage(ctx context.Context, msg queue.Message) error {
	var event models.AssignmentsSyncedEvent
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		return permanent(fmt.Errorf("failed to unmarshal event: %w", err))
	}

	if strings.TrimSpace(event.Enrollment) == "" {
		return permanent(errors.New("empty enrollment"))
	}

	w.logger.Info().
		Str("enrollment", event.Enrollment).
		Str("sync_id", event.SyncID).
		Int("count", event.Count).
		Msg("Processing synced event")

	student, err := w.studentRepo.GetByEnrollment(ctx, event.Enrollment)
	if err != nil {
		return fmt.Errorf("failed to load student: %w", err)
	}
	if student == nil {
		return permanent(fmt.Errorf("unknown enrollment %s", event.Enrollment))
	}

	assignments, err := w.assignmentRepo.GetByEnrollment(ctx, event.Enrollment)
	if err != nil {
		return fmt.Errorf("failed to load assignments: %w", err)
	}

	detail := w.notifyService.NotifyStudent(ctx, *student, assignments)
	if detail.Status == notify.StatusError {
		return fmt.Errorf("delivery failed: %s", detail.Reason)
	}

	return nil
}

func (w *notifyWorker) GetStats() NotifyStats {
	w.statsMutex.RLock()
	defer w.statsMutex.RUnlock()
	return w.stats
}

type permanentError struct {
	err error
}

func (e permanentError) Error() string { return e.err.Error() }
func (e permanentError) Unwrap() error { return e.err }

func permanent(err error) error {
	return permanentError{err: err}
}

func isPermanentError(err error) bool {
	var p permanentError
	return errors.As(err, &p)
}
