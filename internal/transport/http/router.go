// Package httptransport assembles the HTTP surface: middleware chain, route
// registration and the operational endpoints.
package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	authhandler "pinboard/internal/auth/handler"
	boardhandler "pinboard/internal/board/handler"
	"pinboard/internal/platform/metrics"
	"pinboard/internal/platform/middleware"
	"pinboard/pkg/apiresult"
)

// Stats is the health snapshot served on the root route.
type Stats struct {
	Users          int
	Posts          int
	ActiveSessions int
}

// Deps carries everything the router needs; main builds it once.
type Deps struct {
	Auth     *authhandler.Handler
	Board    *boardhandler.Handler
	Gate     func(http.Handler) http.Handler
	Health   func() Stats
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
	Logger   *slog.Logger
}

type healthResponse struct {
	Message        string `json:"message"`
	Users          int    `json:"users"`
	Posts          int    `json:"posts"`
	ActiveSessions int    `json:"activeSessions"`
}

// NewRouter wires the middleware chain and all endpoints.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recover(d.Logger))
	r.Use(middleware.InFlight(d.Metrics.RequestsInFlight))
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)
	r.Use(middleware.ClientMetadata)
	r.Use(middleware.Trace)

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		stats := d.Health()
		apiresult.WriteSuccess(w, healthResponse{
			Message:        "Board server is running.",
			Users:          stats.Users,
			Posts:          stats.Posts,
			ActiveSessions: stats.ActiveSessions,
		})
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))

	d.Auth.Register(r, d.Gate)
	r.Group(func(gr chi.Router) {
		gr.Use(d.Gate)
		d.Board.Register(gr)
	})

	return r
}
