package scrape

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/TasmeerJamali/Bahria-University-Assignment-Tracker/internal/models"
)

// CourseFetcher retrieves and extracts one course's assignment rows.
// Failures are per-course: the caller decides how a failed course
// affects the aggregate. No retries happen at this layer.
type CourseFetcher interface {
	FetchCourse(ctx context.Context, session *Session, semesterID string, course models.CourseRef) ([]models.RawRecord, error)
}

type courseFetcher struct {
	assignmentsURL string
	timeout        time.Duration
	client         *http.Client
	logger         zerolog.Logger
}

func NewCourseFetcher(assignmentsURL string, timeout time.Duration, logger zerolog.Logger) CourseFetcher {
	return &courseFetcher{
		assignmentsURL: assignmentsURL,
		timeout:        timeout,
		client: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

func (f *courseFetcher) FetchCourse(ctx context.Context, session *Session, semesterID string, course models.CourseRef) ([]models.RawRecord, error) {
	requestURL := fmt.Sprintf("%s?s=%s&oc=%s",
		f.assignmentsURL,
		url.QueryEscape(semesterID),
		url.QueryEscape(course.ID),
	)

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	session.apply(req)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch course %s: %w", course.ID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("lms returned status %d for course %s", resp.StatusCode, course.ID)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read course %s response: %w", course.ID, err)
	}

	records := ExtractRecords(string(body))

	f.logger.Debug().
		Str("course_id", course.ID).
		Str("course_name", course.Name).
		Int("records", len(records)).
		Msg("Fetched course assignments")

	return records, nil
}
