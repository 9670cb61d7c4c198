package httpd

import (
	"errors"
	"net/http"

	"github.com/TasmeerJamali/Bahria-University-Assignment-Tracker/internal/models"
	"github.com/TasmeerJamali/Bahria-University-Assignment-Tracker/internal/service"
	"github.com/TasmeerJamali/Bahria-University-Assignment-Tracker/internal/service/scrape"
	"github.com/TasmeerJamali/Bahria-University-Assignment-Tracker/pkg/utils"
)

func (h *Handler) Scrape(w http.ResponseWriter, r *http.Request) {
	var req models.ScrapeRequest
	if err := utils.ReadJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ctx := r.Context()
	resp, err := h.scrapeService.Scrape(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCookiesRequired),
			errors.Is(err, service.ErrCoursesRequired):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, scrape.ErrSessionRejected):
			// Every course fetch failed: the session is dead, not the
			// assignment list empty.
			writeError(w, http.StatusUnauthorized, "LMS session rejected for all courses, re-authenticate and retry")
		default:
			h.logger.Error().Err(err).Msg("Scrape failed")
			writeError(w, http.StatusInternalServerError, "Failed to scrape assignments")
		}
		return
	}

	writeSuccess(w, resp)
}
