package httpd

import (
	"errors"
	"net/http"

	"github.com/TasmeerJamali/Bahria-University-Assignment-Tracker/internal/models"
	"github.com/TasmeerJamali/Bahria-University-Assignment-Tracker/internal/service"
	"github.com/TasmeerJamali/Bahria-University-Assignment-Tracker/pkg/utils"
)

func (h *Handler) SyncAssignments(w http.ResponseWriter, r *http.Request) {
	var req models.SyncRequest
	if err := utils.ReadJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ctx := r.Context()
	resp, err := h.syncService.Sync(ctx, req)
	if err != nil {
		if errors.Is(err, service.ErrEnrollmentRequired) {
			writeError(w, http.StatusBadRequest, "Enrollment required")
			return
		}

		h.logger.Error().Err(err).Msg("Sync failed")
		writeError(w, http.StatusInternalServerError, "Failed to sync assignments")
		return
	}

	writeSuccess(w, resp)
}
