package handlers

import (
	"encoding/json"
	"net/http"
	"trip-planner-service/internal/platform/obs"

	"go.uber.org/zap"
)

func writeJSON(logger *zap.Logger, w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil && logger != nil {
		logger.Warn("encode response failed",
			zap.String("req_id", obs.RequestID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}
}

func writeError(logger *zap.Logger, w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(logger, w, r, status, map[string]string{"message": msg})
}

func requireMethod(logger *zap.Logger, w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method == method {
		return true
	}
	w.Header().Set("Allow", method)
	writeError(logger, w, r, http.StatusMethodNotAllowed, "method not allowed")
	return false
}
