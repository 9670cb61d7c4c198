package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/TasmeerJamali/Bahria-University-Assignment-Tracker/internal/models"
)

// AssignmentRepository stores the most recent synced assignment set per
// student. Every run recomputes from scratch, so Replace swaps the
// whole set atomically instead of diffing against the previous sync.
type AssignmentRepository interface {
	Replace(ctx context.Context, enrollment, syncID string, assignments []models.Assignment, syncedAt time.Time) error
	GetByEnrollment(ctx context.Context, enrollment string) ([]models.Assignment, error)
}

type assignmentRepository struct {
	*PostgresRepository
}

func NewAssignmentRepository(db *sql.DB, logger zerolog.Logger) AssignmentRepository {
	return &assignmentRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

func (r *assignmentRepository) Replace(ctx context.Context, enrollment, syncID string, assignments []models.Assignment, syncedAt time.Time) error {
	tx, err := r.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM assignments WHERE enrollment = $1`, enrollment); err != nil {
		return err
	}

	query := `
		INSERT INTO assignments (
			id, enrollment, sync_id, course_name, title, deadline_text,
			deadline_at, days_left, status, is_overdue, synced_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	for _, a := range assignments {
		_, err := tx.ExecContext(ctx, query,
			uuid.New().String(),
			enrollment,
			syncID,
			a.CourseName,
			a.Title,
			a.DeadlineText,
			a.DeadlineAt,
			a.DaysLeft,
			a.Status.String(),
			a.IsOverdue,
			syncedAt,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *assignmentRepository) GetByEnrollment(ctx context.Context, enrollment string) ([]models.Assignment, error) {
	query := `
		SELECT course_name, title, deadline_text, deadline_at, days_left, status, is_overdue
		FROM assignments
		WHERE enrollment = $1
		ORDER BY synced_at, id
	`

	rows, err := r.db.QueryContext(ctx, query, enrollment)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assignments []models.Assignment
	for rows.Next() {
		var a models.Assignment
		var status string
		err := rows.Scan(
			&a.CourseName,
			&a.Title,
			&a.DeadlineText,
			&a.DeadlineAt,
			&a.DaysLeft,
			&status,
			&a.IsOverdue,
		)
		if err != nil {
			return nil, err
		}
		a.Status = models.AssignmentStatus(status)
		assignments = append(assignments, a)
	}

	return assignments, rows.Err()
}
