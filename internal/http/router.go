package http

import (
	"log/slog"
	nethttp "net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"nba-surprise-service/internal/http/handlers"
	"nba-surprise-service/internal/http/middleware"
	"nba-surprise-service/internal/metrics"
)

// RouterConfig carries the router's cross-cutting dependencies.
type RouterConfig struct {
	Logger         *slog.Logger
	Recorder       *metrics.Recorder
	AllowedOrigins []string
}

// NewRouter registers the public and admin routes. Admin routes are mounted
// only when admin is non-nil.
func NewRouter(handler *handlers.Handler, admin *handlers.AdminHandler, cfg RouterConfig) nethttp.Handler {
	r := mux.NewRouter()
	logged := middleware.Logging(cfg.Logger, cfg.Recorder)
	r.Use(logged)

	r.HandleFunc("/health", handler.Health).Methods(nethttp.MethodGet)
	r.HandleFunc("/ready", handler.Ready).Methods(nethttp.MethodGet)
	r.HandleFunc("/seasons", handler.ListSeasons).Methods(nethttp.MethodGet)
	r.HandleFunc("/seasons/{seasonId}/games", handler.SeasonGames).Methods(nethttp.MethodGet)
	r.HandleFunc("/seasons/{seasonId}/standings", handler.SeasonStandings).Methods(nethttp.MethodGet)

	if admin != nil {
		r.HandleFunc("/admin/archive/manifest", admin.Manifest).Methods(nethttp.MethodGet)
		r.HandleFunc("/admin/archive/{selector}", admin.RunArchive).Methods(nethttp.MethodPost)
	}

	// mux skips Use middleware for these
	r.NotFoundHandler = logged(nethttp.HandlerFunc(handler.NotFound))
	r.MethodNotAllowedHandler = logged(nethttp.HandlerFunc(handler.MethodNotAllowed))

	return withCORS(r, cfg.AllowedOrigins)
}

func withCORS(next nethttp.Handler, origins []string) nethttp.Handler {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{nethttp.MethodGet, nethttp.MethodPost, nethttp.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	})
	return c.Handler(next)
}
