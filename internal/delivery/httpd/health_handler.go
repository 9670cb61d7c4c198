package httpd

import (
	"net/http"
)

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if h.readiness != nil {
		if err := h.readiness.Ping(r.Context()); err != nil {
			h.logger.Error().Err(err).Msg("Readiness check failed")
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status":  "degraded",
				"service": "assignment-tracker",
				"version": "1.0.0",
			})
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "assignment-tracker",
		"version": "1.0.0",
	})
}
