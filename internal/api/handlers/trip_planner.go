package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"
	"trip-planner-service/internal/api/dto"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/obs"
	"trip-planner-service/internal/ports"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

const (
	msgInvalidPlanBody    = "Invalid request body for trip planner."
	msgMissingCredential  = "Trip planner is not configured: the mapping API key is missing. Contact an admin."
	msgMappingUnavailable = "The mapping service is unavailable, try again."
	msgPlanningFailed     = "Trip planning failed."
)

type TripPlanner interface {
	PlanTrip(ctx context.Context, req domain.TripPlanRequest) (*domain.TripPlanResponse, error)
}

type TripPlannerHandler struct {
	Planner TripPlanner
	// Nil disables archiving; responses then carry no planId.
	Archive                    ports.PlanArchive
	NewPlanID                  func() string
	Validate                   *validator.Validate
	Logger                     *zap.Logger
	DefaultExportWaypointLimit int
}

// Plan validates the request, runs the planner and archives the result
// when an archive is configured.
func (h *TripPlannerHandler) Plan(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(h.Logger, w, r, http.MethodPost) {
		return
	}

	var req dto.TripPlanRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()

	if err := dec.Decode(&req); err != nil {
		writeJSON(h.Logger, w, r, http.StatusBadRequest, map[string]any{
			"message": msgInvalidPlanBody,
			"errors":  validationErrors{FormErrors: []string{"invalid json body"}, FieldErrors: map[string][]string{}},
		})
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeJSON(h.Logger, w, r, http.StatusBadRequest, map[string]any{
			"message": msgInvalidPlanBody,
			"errors":  validationErrors{FormErrors: []string{"body must contain only one JSON object"}, FieldErrors: map[string][]string{}},
		})
		return
	}

	req.Normalize()
	if err := h.Validate.Struct(req); err != nil {
		writeJSON(h.Logger, w, r, http.StatusBadRequest, map[string]any{
			"message": msgInvalidPlanBody,
			"errors":  flattenValidation(err),
		})
		return
	}

	var loc *time.Location
	if req.TimeZone != "" {
		l, err := time.LoadLocation(req.TimeZone)
		if err != nil {
			writeJSON(h.Logger, w, r, http.StatusBadRequest, map[string]any{
				"message": msgInvalidPlanBody,
				"errors": validationErrors{
					FormErrors:  []string{},
					FieldErrors: map[string][]string{"timeZone": {"must be an IANA time zone name"}},
				},
			})
			return
		}
		loc = l
	}

	plan, err := h.Planner.PlanTrip(r.Context(), req.ToDomain(loc, h.DefaultExportWaypointLimit))
	if err != nil {
		h.writePlanError(w, r, err)
		return
	}

	planID := h.archive(r, req, plan)
	writeJSON(h.Logger, w, r, http.StatusOK, dto.NewTripPlanResponse(planID, plan))
}

func (h *TripPlannerHandler) writePlanError(w http.ResponseWriter, r *http.Request, err error) {
	fields := []zap.Field{
		zap.String("req_id", obs.RequestID(r.Context())),
		zap.Error(err),
	}

	var routingErr *domain.RoutingError
	switch {
	case errors.Is(err, domain.ErrMissingCredential):
		h.Logger.Error("trip planner misconfigured", fields...)
		writeError(h.Logger, w, r, http.StatusInternalServerError, msgMissingCredential)
	case errors.As(err, &routingErr):
		h.Logger.Warn("trip planning routing failed", append(fields, zap.Int("provider_status", routingErr.Status))...)
		writeJSON(h.Logger, w, r, http.StatusBadGateway, map[string]string{
			"message": msgMappingUnavailable,
			"detail":  err.Error(),
		})
	case errors.Is(err, domain.ErrProviderUnavailable):
		h.Logger.Warn("mapping provider unreachable", fields...)
		writeJSON(h.Logger, w, r, http.StatusBadGateway, map[string]string{
			"message": msgMappingUnavailable,
			"detail":  err.Error(),
		})
	default:
		h.Logger.Error("trip planning failed", fields...)
		writeError(h.Logger, w, r, http.StatusInternalServerError, msgPlanningFailed)
	}
}

// archive stores the plan and returns its id, or "" when archiving is off
// or fails. A failed save never fails the request.
func (h *TripPlannerHandler) archive(r *http.Request, req dto.TripPlanRequest, plan *domain.TripPlanResponse) string {
	if h.Archive == nil || h.NewPlanID == nil {
		return ""
	}

	end := req.EndAddress
	if req.RoundTrip {
		end = req.StartAddress
	}

	rec := ports.ArchivedPlan{
		ID:           h.NewPlanID(),
		CreatedAt:    time.Now(),
		StartAddress: req.StartAddress,
		EndAddress:   end,
		TotalStops:   plan.Summary.TotalStops,
		FitsInWindow: plan.Summary.FitsInWindow,
		Notes:        plan.Summary.Notes,
		CSV:          plan.CSV,
	}
	if err := h.Archive.Save(r.Context(), rec); err != nil {
		h.Logger.Warn("archive plan failed",
			zap.String("req_id", obs.RequestID(r.Context())),
			zap.Error(err),
		)
		return ""
	}
	return rec.ID
}
