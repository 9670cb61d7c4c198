package scrape

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/TasmeerJamali/Bahria-University-Assignment-Tracker/internal/models"
)

type fakeFetcher struct {
	fetch func(ctx context.Context, course models.CourseRef) ([]models.RawRecord, error)
}

func (f *fakeFetcher) FetchCourse(ctx context.Context, _ *Session, _ string, course models.CourseRef) ([]models.RawRecord, error) {
	return f.fetch(ctx, course)
}

func testCourses(n int) []models.CourseRef {
	courses := make([]models.CourseRef, 0, n)
	for i := 0; i < n; i++ {
		courses = append(courses, models.CourseRef{
			ID:   string(rune('1' + i)),
			Name: "Course " + string(rune('A'+i)),
		})
	}
	return courses
}

func TestAggregatePartialFailure(t *testing.T) {
	now := time.Date(2025, time.October, 1, 0, 0, 0, 0, time.UTC)
	fetcher := &fakeFetcher{
		fetch: func(_ context.Context, course models.CourseRef) ([]models.RawRecord, error) {
			if course.ID == "3" {
				return nil, errors.New("connection reset")
			}
			return []models.RawRecord{{
				Title:        "Assignment for " + course.Name,
				DeadlineText: "10 October 2025-11:00 pm",
			}}, nil
		},
	}

	agg := NewAggregator(fetcher, 8, 5*time.Second, zerolog.Nop())
	assignments, results, err := agg.Aggregate(context.Background(), NewSession(nil, "", ""), "14", testCourses(5), now)

	assert.NoError(t, err)
	assert.Len(t, assignments, 4)
	assert.Len(t, results, 5)

	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
			assert.Equal(t, "3", res.Course.ID)
		}
	}
	assert.Equal(t, 1, failed)

	for _, a := range assignments {
		if assert.NotNil(t, a.DaysLeft) {
			assert.Equal(t, 9, *a.DaysLeft)
		}
		assert.Equal(t, models.StatusNotSubmitted, a.Status)
	}
}

func TestAggregateAllCoursesFail(t *testing.T) {
	fetcher := &fakeFetcher{
		fetch: func(_ context.Context, _ models.CourseRef) ([]models.RawRecord, error) {
			return nil, errors.New("lms returned status 302")
		},
	}

	agg := NewAggregator(fetcher, 8, 5*time.Second, zerolog.Nop())
	assignments, results, err := agg.Aggregate(context.Background(), NewSession(nil, "", ""), "14", testCourses(3), time.Now())

	assert.ErrorIs(t, err, ErrSessionRejected)
	assert.Empty(t, assignments)
	assert.Len(t, results, 3)
}

func TestAggregateEmptyCourseList(t *testing.T) {
	agg := NewAggregator(&fakeFetcher{}, 8, 5*time.Second, zerolog.Nop())
	assignments, results, err := agg.Aggregate(context.Background(), NewSession(nil, "", ""), "14", nil, time.Now())

	assert.NoError(t, err)
	assert.Nil(t, assignments)
	assert.Nil(t, results)
}

func TestAggregateDeadlineReturnsPartialResults(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	fetcher := &fakeFetcher{
		fetch: func(ctx context.Context, course models.CourseRef) ([]models.RawRecord, error) {
			if course.ID == "2" {
				select {
				case <-release:
				case <-ctx.Done():
				}
				return nil, ctx.Err()
			}
			return []models.RawRecord{{Title: "Quick " + course.Name, DeadlineText: "10 October 2025"}}, nil
		},
	}

	agg := NewAggregator(fetcher, 8, 100*time.Millisecond, zerolog.Nop())
	assignments, results, err := agg.Aggregate(context.Background(), NewSession(nil, "", ""), "14", testCourses(3), time.Now())

	assert.NoError(t, err)
	assert.Len(t, assignments, 2)
	assert.LessOrEqual(t, len(results), 3)
}

func TestAggregateKeepsDeadlinesInClockZone(t *testing.T) {
	pkt := time.FixedZone("PKT", 5*60*60)
	now := time.Date(2025, time.October, 1, 0, 0, 0, 0, pkt)

	fetcher := &fakeFetcher{
		fetch: func(_ context.Context, _ models.CourseRef) ([]models.RawRecord, error) {
			return []models.RawRecord{{Title: "Essay 1", DeadlineText: "25 September 2025-11:00 pm"}}, nil
		},
	}

	agg := NewAggregator(fetcher, 1, 5*time.Second, zerolog.Nop())
	assignments, _, err := agg.Aggregate(context.Background(), NewSession(nil, "", ""), "14", testCourses(1), now)

	assert.NoError(t, err)
	if assert.Len(t, assignments, 1) {
		if assert.NotNil(t, assignments[0].DeadlineAt) {
			_, offset := assignments[0].DeadlineAt.Zone()
			assert.Equal(t, 5*60*60, offset)
		}
		if assert.NotNil(t, assignments[0].DaysLeft) {
			assert.Equal(t, -6, *assignments[0].DaysLeft)
		}
	}
}

func TestAggregateSubmittedStatus(t *testing.T) {
	fetcher := &fakeFetcher{
		fetch: func(_ context.Context, _ models.CourseRef) ([]models.RawRecord, error) {
			return []models.RawRecord{
				{Title: "Done one", Submitted: true, DeadlineText: "10 October 2025"},
				{Title: "Overdue one", OverdueMarker: true, DeadlineText: "garbled"},
			}, nil
		},
	}

	agg := NewAggregator(fetcher, 1, 5*time.Second, zerolog.Nop())
	assignments, _, err := agg.Aggregate(context.Background(), NewSession(nil, "", ""), "14", testCourses(1), time.Now())

	assert.NoError(t, err)
	if assert.Len(t, assignments, 2) {
		assert.Equal(t, models.StatusSubmitted, assignments[0].Status)
		assert.True(t, assignments[1].IsOverdue)
		assert.Nil(t, assignments[1].DeadlineAt)
		assert.Nil(t, assignments[1].DaysLeft)
	}
}
