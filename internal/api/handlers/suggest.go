package handlers

import (
	"net/http"
	"strings"
	"trip-planner-service/internal/api/dto"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/obs"
	"trip-planner-service/internal/ports"

	"go.uber.org/zap"
)

// Queries shorter than this return no suggestions without a provider call.
const minSuggestQueryLen = 3

type SuggestHandler struct {
	Places               ports.PlacesProvider
	CredentialConfigured bool
	Logger               *zap.Logger
}

func (h *SuggestHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(h.Logger, w, r, http.MethodGet) {
		return
	}

	if !h.CredentialConfigured {
		writeError(h.Logger, w, r, http.StatusInternalServerError, domain.ErrMissingCredential.Error())
		return
	}

	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if len([]rune(q)) < minSuggestQueryLen {
		writeJSON(h.Logger, w, r, http.StatusOK, dto.SuggestResponse{Suggestions: []domain.PlaceSuggestion{}})
		return
	}

	suggestions, err := h.Places.Autocomplete(r.Context(), q)
	if err != nil {
		h.Logger.Warn("address autocomplete failed",
			zap.String("req_id", obs.RequestID(r.Context())),
			zap.Error(err),
		)
		writeError(h.Logger, w, r, http.StatusBadGateway, "Address lookup failed.")
		return
	}
	if suggestions == nil {
		suggestions = []domain.PlaceSuggestion{}
	}

	writeJSON(h.Logger, w, r, http.StatusOK, dto.SuggestResponse{Suggestions: suggestions})
}
