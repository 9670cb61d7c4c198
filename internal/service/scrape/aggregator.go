package scrape

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/TasmeerJamali/Bahria-University-Assignment-Tracker/internal/models"
	"github.com/TasmeerJamali/Bahria-University-Assignment-Tracker/internal/worker"
)

// ErrSessionRejected signals that every course fetch failed over a
// non-empty course list. Operationally that means the supplied cookies
// are invalid or expired, which must stay distinguishable from a
// legitimately empty assignment list.
var ErrSessionRejected = errors.New("session rejected by lms")

// CourseResult is the typed per-course outcome. Failed courses carry
// their error instead of being silently folded into "no data".
type CourseResult struct {
	Course  models.CourseRef
	Records []models.RawRecord
	Err     error
}

// Aggregator fans one fetch+extract task per course out over a bounded
// worker pool and fans the results back in. Completion order is
// arbitrary; consumers needing a stable order sort downstream.
type Aggregator interface {
	Aggregate(ctx context.Context, session *Session, semesterID string, courses []models.CourseRef, now time.Time) ([]models.Assignment, []CourseResult, error)
}

type aggregator struct {
	fetcher         CourseFetcher
	maxWorkers      int
	overallDeadline time.Duration
	logger          zerolog.Logger
}

func NewAggregator(fetcher CourseFetcher, maxWorkers int, overallDeadline time.Duration, logger zerolog.Logger) Aggregator {
	return &aggregator{
		fetcher:         fetcher,
		maxWorkers:      maxWorkers,
		overallDeadline: overallDeadline,
		logger:          logger,
	}
}

func (a *aggregator) Aggregate(ctx context.Context, session *Session, semesterID string, courses []models.CourseRef, now time.Time) ([]models.Assignment, []CourseResult, error) {
	if len(courses) == 0 {
		return nil, nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, a.overallDeadline)
	defer cancel()

	// The pool lives for exactly one aggregation call and is sized by
	// the concurrency limit, not the course count.
	pool := worker.NewPool(a.maxWorkers, len(courses), a.logger)
	pool.Start()
	// Drain in the background: on an exceeded deadline the abandoned
	// tasks still finish into the buffered results channel, so nothing
	// blocks or leaks.
	defer func() { go pool.Stop() }()

	// Buffered to course count so abandoned workers never block on send.
	results := make(chan CourseResult, len(courses))

	for _, course := range courses {
		course := course
		pool.Submit(func() {
			records, err := a.fetcher.FetchCourse(ctx, session, semesterID, course)
			results <- CourseResult{Course: course, Records: records, Err: err}
		})
	}

	var assignments []models.Assignment
	courseResults := make([]CourseResult, 0, len(courses))
	succeeded := 0

collect:
	for len(courseResults) < len(courses) {
		select {
		case res := <-results:
			courseResults = append(courseResults, res)
			if res.Err != nil {
				a.logger.Warn().
					Str("course_id", res.Course.ID).
					Str("course_name", res.Course.Name).
					Err(res.Err).
					Msg("Course fetch failed")
				continue
			}
			succeeded++
			for _, rec := range res.Records {
				assignments = append(assignments, buildAssignment(res.Course, rec, now))
			}
		case <-ctx.Done():
			// Overall deadline: abandon outstanding courses and return
			// whatever completed.
			a.logger.Warn().
				Int("collected", len(courseResults)).
				Int("total", len(courses)).
				Msg("Aggregation deadline exceeded, returning partial results")
			break collect
		}
	}

	if succeeded == 0 {
		return assignments, courseResults, fmt.Errorf("%w: 0/%d courses succeeded", ErrSessionRejected, len(courses))
	}

	a.logger.Info().
		Int("courses", len(courses)).
		Int("succeeded", succeeded).
		Int("assignments", len(assignments)).
		Msg("Aggregation completed")

	return assignments, courseResults, nil
}

func buildAssignment(course models.CourseRef, rec models.RawRecord, now time.Time) models.Assignment {
	deadlineAt := NormalizeDeadline(rec.DeadlineText, now.Location())

	status := models.StatusNotSubmitted
	if rec.Submitted {
		status = models.StatusSubmitted
	}

	return models.Assignment{
		CourseName:   course.Name,
		Title:        rec.Title,
		DeadlineText: rec.DeadlineText,
		DeadlineAt:   deadlineAt,
		DaysLeft:     DaysLeft(now, deadlineAt),
		Status:       status,
		IsOverdue:    rec.OverdueMarker,
	}
}
