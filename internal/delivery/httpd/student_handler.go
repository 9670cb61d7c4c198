package httpd

import (
	"errors"
	"net/http"

	"github.com/TasmeerJamali/Bahria-University-Assignment-Tracker/internal/models"
	"github.com/TasmeerJamali/Bahria-University-Assignment-Tracker/internal/service"
	"github.com/TasmeerJamali/Bahria-University-Assignment-Tracker/pkg/utils"
)

func (h *Handler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req models.SubscribeRequest
	if err := utils.ReadJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ctx := r.Context()
	resp, err := h.studentService.Subscribe(ctx, req.Enrollment)
	if err != nil {
		if errors.Is(err, service.ErrEnrollmentRequired) {
			writeError(w, http.StatusBadRequest, "Enrollment required")
			return
		}

		h.logger.Error().Err(err).Msg("Subscribe failed")
		writeError(w, http.StatusInternalServerError, "Failed to subscribe student")
		return
	}

	writeSuccess(w, resp)
}

func (h *Handler) ListStudents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	resp, err := h.studentService.List(ctx)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list students")
		writeError(w, http.StatusInternalServerError, "Failed to list students")
		return
	}

	writeSuccess(w, resp)
}
