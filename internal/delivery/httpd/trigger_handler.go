package httpd

import (
	"net/http"
	"time"

	"github.com/TasmeerJamali/Bahria-University-Assignment-Tracker/internal/models"
)

func (h *Handler) TriggerNotifications(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	summary, err := h.notifyService.NotifyAll(ctx)
	if err != nil {
		h.logger.Error().Err(err).Msg("Trigger run failed")
		writeError(w, http.StatusInternalServerError, "Failed to trigger notifications")
		return
	}

	writeJSON(w, http.StatusOK, models.TriggerResponse{
		Success:   true,
		Timestamp: time.Now(),
		Results:   summary,
	})
}
