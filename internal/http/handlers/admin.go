package handlers

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"nba-surprise-service/internal/archive"
	"nba-surprise-service/internal/http/requestutil"
	"nba-surprise-service/internal/logging"
)

// ArchiveRunner runs the archival pipeline.
type ArchiveRunner interface {
	Run(ctx context.Context, selector string) (archive.Result, error)
}

// ManifestReader exposes the archive manifest.
type ManifestReader interface {
	Manifest() (archive.Manifest, error)
}

// AdminHandler exposes admin-only endpoints guarded by a bearer token.
type AdminHandler struct {
	runner   ArchiveRunner
	manifest ManifestReader
	token    string
	logger   *slog.Logger

	runTimeout time.Duration
}

// AdminOption customizes an AdminHandler.
type AdminOption func(*AdminHandler)

// WithRunTimeout lets archive runs hold the response open for d, past the
// server's write timeout, and cancels the run once d elapses.
func WithRunTimeout(d time.Duration) AdminOption {
	return func(h *AdminHandler) {
		h.runTimeout = d
	}
}

// NewAdminHandler constructs an AdminHandler. An empty token disables every admin route.
func NewAdminHandler(runner ArchiveRunner, manifest ManifestReader, token string, logger *slog.Logger, opts ...AdminOption) *AdminHandler {
	h := &AdminHandler{
		runner:   runner,
		manifest: manifest,
		token:    token,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// RunArchive archives the seasons named by the {selector} path segment.
func (h *AdminHandler) RunArchive(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	if !h.authorize(w, r, logger) {
		return
	}
	if h.runner == nil {
		writeError(w, r, http.StatusServiceUnavailable, CodeServiceUnavailable, "archiver not configured", logger)
		return
	}

	selector := mux.Vars(r)["selector"]
	ctx := r.Context()
	if h.runTimeout > 0 {
		deadline := time.Now().Add(h.runTimeout)
		if err := http.NewResponseController(w).SetWriteDeadline(deadline); err != nil {
			logging.Debug(logger, "write deadline not extended", slog.Any(logging.FieldError, err))
		}
		var cancel context.CancelFunc
		ctx, cancel = context.WithDeadline(ctx, deadline)
		defer cancel()
	}
	res, err := h.runner.Run(ctx, selector)
	if err != nil {
		logging.Warn(logger, "admin archive rejected",
			slog.String("selector", selector),
			slog.Any("err", err),
		)
		switch {
		case errors.Is(err, archive.ErrInvalidSelector):
			writeError(w, r, http.StatusBadRequest, CodeBadRequest, err.Error(), logger)
		case errors.Is(err, archive.ErrUnknownSeason):
			writeError(w, r, http.StatusNotFound, CodeNotFound, err.Error(), logger)
		case errors.Is(err, archive.ErrSeasonNotConcluded):
			writeError(w, r, http.StatusConflict, CodeConflict, err.Error(), logger)
		default:
			writeError(w, r, http.StatusInternalServerError, CodeInternal, "archive run failed", logger)
		}
		return
	}

	logging.Info(logger, "admin archive complete",
		slog.String("selector", selector),
		slog.Int("processed", len(res.Processed)),
		slog.Int("failed", len(res.Failed)),
		slog.Int(logging.FieldCount, res.TotalGames),
	)
	writeJSON(w, http.StatusOK, res, logger)
}

// Manifest returns the archive manifest.
func (h *AdminHandler) Manifest(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	if !h.authorize(w, r, logger) {
		return
	}
	if h.manifest == nil {
		writeError(w, r, http.StatusServiceUnavailable, CodeServiceUnavailable, "archive not configured", logger)
		return
	}
	m, err := h.manifest.Manifest()
	if err != nil {
		logging.Error(logger, "archive manifest read failed", err)
		writeError(w, r, http.StatusInternalServerError, CodeInternal, "failed to read manifest", logger)
		return
	}
	writeJSON(w, http.StatusOK, m, logger)
}

func (h *AdminHandler) authorize(w http.ResponseWriter, r *http.Request, logger *slog.Logger) bool {
	got := requestutil.BearerToken(r)
	if h.token != "" && subtle.ConstantTimeCompare([]byte(got), []byte(h.token)) == 1 {
		return true
	}
	logging.Warn(logger, "admin unauthorized",
		slog.String(logging.FieldPath, r.URL.Path),
		slog.String("client_ip", requestutil.ClientIP(r)),
	)
	writeError(w, r, http.StatusUnauthorized, CodeUnauthorized, "unauthorized", logger)
	return false
}
