package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/rs/zerolog"

	"github.com/TasmeerJamali/Bahria-University-Assignment-Tracker/internal/models"
)

type StudentRepository interface {
	Upsert(ctx context.Context, student *models.Student) error
	GetByEnrollment(ctx context.Context, enrollment string) (*models.Student, error)
	GetAll(ctx context.Context) ([]models.Student, error)
	MarkSynced(ctx context.Context, enrollment string, syncedAt time.Time) error
	Exists(ctx context.Context, enrollment string) (bool, error)
}

type studentRepository struct {
	*PostgresRepository
}

func NewStudentRepository(db *sql.DB, logger zerolog.Logger) StudentRepository {
	return &studentRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

func (r *studentRepository) Upsert(ctx context.Context, student *models.Student) error {
	query := `
		INSERT INTO students (enrollment, topic, notification_enabled, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (enrollment) DO UPDATE
		SET topic = EXCLUDED.topic,
		    notification_enabled = EXCLUDED.notification_enabled,
		    updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.ExecContext(ctx, query,
		student.Enrollment,
		student.Topic,
		student.NotificationEnabled,
		student.CreatedAt,
		student.UpdatedAt,
	)

	return err
}

func (r *studentRepository) GetByEnrollment(ctx context.Context, enrollment string) (*models.Student, error) {
	query := `
		SELECT enrollment, topic, notification_enabled, last_synced_at, created_at, updated_at
		FROM students
		WHERE enrollment = $1
	`

	student := &models.Student{}
	err := r.db.QueryRowContext(ctx, query, enrollment).Scan(
		&student.Enrollment,
		&student.Topic,
		&student.NotificationEnabled,
		&student.LastSyncedAt,
		&student.CreatedAt,
		&student.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return student, err
}

func (r *studentRepository) GetAll(ctx context.Context) ([]models.Student, error) {
	query := `
		SELECT enrollment, topic, notification_enabled, last_synced_at, created_at, updated_at
		FROM students
		ORDER BY created_at
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []models.Student
	for rows.Next() {
		var student models.Student
		err := rows.Scan(
			&student.Enrollment,
			&student.Topic,
			&student.NotificationEnabled,
			&student.LastSyncedAt,
			&student.CreatedAt,
			&student.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		students = append(students, student)
	}

	return students, rows.Err()
}

func (r *studentRepository) MarkSynced(ctx context.Context, enrollment string, syncedAt time.Time) error {
	query := `
		UPDATE students
		SET last_synced_at = $2, updated_at = $2
		WHERE enrollment = $1
	`

	_, err := r.db.ExecContext(ctx, query, enrollment, syncedAt)
	return err
}

func (r *studentRepository) Exists(ctx context.Context, enrollment string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM students WHERE enrollment = $1)`

	var exists bool
	err := r.db.QueryRowContext(ctx, query, enrollment).Scan(&exists)
	return exists, err
}
