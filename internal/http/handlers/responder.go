package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"nba-surprise-service/internal/app/seasons"
	"nba-surprise-service/internal/http/middleware"
	"nba-surprise-service/internal/http/requestutil"
	"nba-surprise-service/internal/logging"
)

// Error codes carried in error bodies.
const (
	CodeBadRequest         = "BAD_REQUEST"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeNotFound           = "NOT_FOUND"
	CodeMethodNotAllowed   = "METHOD_NOT_ALLOWED"
	CodeConflict           = "CONFLICT"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
	CodeInternal           = "INTERNAL"
)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"requestId,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.Error(logger, "failed to encode response", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string, logger *slog.Logger) {
	reqID := middleware.RequestIDFromContext(r.Context())
	if reqID == "" {
		reqID = r.Header.Get(requestutil.HeaderRequestID)
	}
	writeJSON(w, status, ErrorBody{Error: message, Code: code, RequestID: reqID}, logger)
}

// writeServiceError maps season service errors onto HTTP responses.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	switch {
	case errors.Is(err, seasons.ErrSeasonNotFound):
		writeError(w, r, http.StatusNotFound, CodeNotFound, "season not found", logger)
	case errors.Is(err, seasons.ErrDataUnavailable),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		writeError(w, r, http.StatusServiceUnavailable, CodeServiceUnavailable, "season data unavailable", logger)
	default:
		logging.Error(logger, "unexpected season service error", err)
		writeError(w, r, http.StatusInternalServerError, CodeInternal, "internal error", logger)
	}
}

func loggerFromContext(r *http.Request, fallback *slog.Logger) *slog.Logger {
	if r == nil {
		return fallback
	}
	return logging.FromContext(r.Context(), fallback)
}
