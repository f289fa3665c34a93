package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"nba-surprise-service/internal/app/seasons"
	"nba-surprise-service/internal/logging"
	"nba-surprise-service/internal/poller"
	"nba-surprise-service/internal/standings"
)

// SeasonService is what the public routes need from the season service.
type SeasonService interface {
	SeasonGames(ctx context.Context, seasonID int) (seasons.Result, error)
	Standings(ctx context.Context, seasonID int) (standings.Table, error)
	Seasons() []seasons.Summary
}

// Handler serves the public read routes.
type Handler struct {
	svc      SeasonService
	logger   *slog.Logger
	statusFn func() poller.Status
}

// NewHandler constructs a Handler. A nil statusFn means the service is always ready.
func NewHandler(svc SeasonService, logger *slog.Logger, statusFn func() poller.Status) *Handler {
	return &Handler{
		svc:      svc,
		logger:   logger,
		statusFn: statusFn,
	}
}

// SeasonsResponse lists catalog seasons.
type SeasonsResponse struct {
	Seasons []seasons.Summary `json:"seasons"`
}

// Health reports the service health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, http.StatusServiceUnavailable, CodeServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness for traffic based on the warm poller.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.statusFn == nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	status := h.statusFn()
	if status.IsReady() {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	msg := status.LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, http.StatusServiceUnavailable, CodeServiceUnavailable, msg, h.logger)
}

// ListSeasons returns every catalog season with its current phase.
func (h *Handler) ListSeasons(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, SeasonsResponse{Seasons: h.svc.Seasons()}, h.logger)
}

// SeasonGames returns the candidate games of a season.
func (h *Handler) SeasonGames(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	id, ok := h.seasonID(w, r)
	if !ok {
		return
	}

	res, err := h.svc.SeasonGames(r.Context(), id)
	if err != nil {
		logging.Warn(logger, "season games unavailable",
			slog.Int(logging.FieldSeasonID, id),
			slog.Any("err", err),
		)
		writeServiceError(w, r, err, logger)
		return
	}
	writeJSON(w, http.StatusOK, res.Payload(), logger)
}

// SeasonStandings returns the surprise standings of a season.
func (h *Handler) SeasonStandings(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	id, ok := h.seasonID(w, r)
	if !ok {
		return
	}

	table, err := h.svc.Standings(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, logger)
		return
	}
	writeJSON(w, http.StatusOK, table, logger)
}

// NotFound answers unmatched routes.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, http.StatusNotFound, CodeNotFound, "not found", h.logger)
}

// MethodNotAllowed answers known routes called with the wrong method.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, http.StatusMethodNotAllowed, CodeMethodNotAllowed, "method not allowed", h.logger)
}

func (h *Handler) seasonID(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := mux.Vars(r)["seasonId"]
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		writeError(w, r, http.StatusBadRequest, CodeBadRequest, "invalid season id", h.logger)
		return 0, false
	}
	return id, true
}
