package httpd

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/TasmeerJamali/Bahria-University-Assignment-Tracker/internal/service"
	"github.com/TasmeerJamali/Bahria-University-Assignment-Tracker/internal/service/notify"
)

// ReadinessChecker reports whether the storage backend is reachable.
type ReadinessChecker interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	scrapeService  service.ScrapeService
	syncService    service.SyncService
	studentService service.StudentService
	notifyService  notify.Service
	readiness      ReadinessChecker
	logger         zerolog.Logger
}

func NewHandler(
	scrapeService service.ScrapeService,
	syncService service.SyncService,
	studentService service.StudentService,
	notifyService notify.Service,
	readiness ReadinessChecker,
	logger zerolog.Logger,
) *Handler {
	return &Handler{
		scrapeService:  scrapeService,
		syncService:    syncService,
		studentService: studentService,
		notifyService:  notifyService,
		readiness:      readiness,
		logger:         logger,
	}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	// Health check
	router.Get("/health", h.HealthCheck)

	// Versioned API
	router.Route("/api/v1", func(api chi.Router) {
		api.Post("/scrape", h.Scrape)
		api.Post("/sync", h.SyncAssignments)
		api.Post("/trigger", h.TriggerNotifications)

		api.Route("/students", func(r chi.Router) {
			r.Get("/", h.ListStudents)
			r.Post("/subscribe", h.Subscribe)
		})
	})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{
		"error":   http.StatusText(status),
		"message": message,
	})
}

func writeSuccess(w http.ResponseWriter, data interface{}) {
	response := map[string]interface{}{
		"success": true,
		"data":    data,
	}
	writeJSON(w, http.StatusOK, response)
}
