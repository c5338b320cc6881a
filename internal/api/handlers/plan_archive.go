package handlers

import (
	"errors"
	"net/http"
	"trip-planner-service/internal/api/dto"
	"trip-planner-service/internal/platform/obs"
	"trip-planner-service/internal/ports"

	"go.uber.org/zap"
)

type PlanArchiveHandler struct {
	// Nil means archiving is disabled and every lookup is a 404.
	Archive ports.PlanArchive
	Logger  *zap.Logger
}

// Get returns an archived plan's metadata.
func (h *PlanArchiveHandler) Get(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(h.Logger, w, r, http.MethodGet) {
		return
	}

	plan, ok := h.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(h.Logger, w, r, http.StatusOK, dto.NewArchivedPlanResponse(plan))
}

// CSV serves an archived plan's itinerary report as a download.
func (h *PlanArchiveHandler) CSV(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(h.Logger, w, r, http.MethodGet) {
		return
	}

	plan, ok := h.lookup(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="trip-plan-`+plan.ID+`.csv"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(plan.CSV)); err != nil {
		h.Logger.Warn("write csv failed",
			zap.String("req_id", obs.RequestID(r.Context())),
			zap.Error(err),
		)
	}
}

func (h *PlanArchiveHandler) lookup(w http.ResponseWriter, r *http.Request) (ports.ArchivedPlan, bool) {
	if h.Archive == nil {
		writeError(h.Logger, w, r, http.StatusNotFound, "plan archive is disabled")
		return ports.ArchivedPlan{}, false
	}

	plan, err := h.Archive.Get(r.Context(), r.PathValue("id"))
	if errors.Is(err, ports.ErrPlanNotFound) {
		writeError(h.Logger, w, r, http.StatusNotFound, "plan not found")
		return ports.ArchivedPlan{}, false
	}
	if err != nil {
		h.Logger.Error("load archived plan failed",
			zap.String("req_id", obs.RequestID(r.Context())),
			zap.Error(err),
		)
		writeError(h.Logger, w, r, http.StatusInternalServerError, "internal server error")
		return ports.ArchivedPlan{}, false
	}
	return plan, true
}
