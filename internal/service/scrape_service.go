package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/TasmeerJamali/Bahria-University-Assignment-Tracker/internal/models"
	"github.com/TasmeerJamali/Bahria-University-Assignment-Tracker/internal/service/classify"
	"github.com/TasmeerJamali/Bahria-University-Assignment-Tracker/internal/service/scrape"
)

var (
	ErrCookiesRequired = errors.New("session cookies are required")
	ErrCoursesRequired = errors.New("course list is required")
)

// ScrapeService is the HTTP face of the aggregation pipeline: it takes
// an externally acquired session snapshot, runs the concurrent
// fetch+extract+normalize pass and classifies the outcome.
type ScrapeService interface {
	Scrape(ctx context.Context, req models.ScrapeRequest) (*models.ScrapeResponse, error)
}

type scrapeService struct {
	aggregator scrape.Aggregator
	userAgent  string
	referer    string
	logger     zerolog.Logger
}

func NewScrapeService(aggregator scrape.Aggregator, userAgent, referer string, logger zerolog.Logger) ScrapeService {
	return &scrapeService{
		aggregator: aggregator,
		userAgent:  userAgent,
		referer:    referer,
		logger:     logger,
	}
}

func (s *scrapeService) Scrape(ctx context.Context, req models.ScrapeRequest) (*models.ScrapeResponse, error) {
	if len(req.Cookies) == 0 {
		return nil, ErrCookiesRequired
	}
	if len(req.Courses) == 0 {
		return nil, ErrCoursesRequired
	}

	session := scrape.NewSession(req.Cookies, s.userAgent, s.referer)
	now := time.Now()

	assignments, courseResults, err := s.aggregator.Aggregate(ctx, session, req.SemesterID, req.Courses, now)
	if err != nil {
		return nil, err
	}

	var failures []models.CourseFailure
	for _, res := range courseResults {
		if res.Err != nil {
			failures = append(failures, models.CourseFailure{
				CourseID:   res.Course.ID,
				CourseName: res.Course.Name,
				Error:      res.Err.Error(),
			})
		}
	}

	return &models.ScrapeResponse{
		Assignments: assignments,
		Classified:  classify.Classify(assignments),
		Failures:    failures,
		ScrapedAt:   now,
	}, nil
}
