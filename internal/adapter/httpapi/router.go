// Package httpapi exposes the dashboard over HTTP, JSON and websockets.
package httpapi

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/simaogato/salesdash-backend/internal/usecase/dashboard"
)

// RouterConfig wires the router's dependencies
type RouterConfig struct {
	Dashboard      *dashboard.DashboardService
	Reports        ReportProvider // Optional
	Metrics        http.Handler   // Optional; served on /metrics
	Logger         *slog.Logger
	RateLimitRPS   int
	RateLimitBurst int
}

// NewRouter builds the chi router.
//
// Routes:
//
//	GET /healthz
//	GET /metrics
//	GET /ws                       websocket selection session
//	GET /api/periods
//	GET /api/dashboard
//	PUT /api/dashboard/selection  {"periods": ["2011-01", ...]}
//	GET /api/report               latest report document
//	GET /api/report/summary
//	POST /api/report/refresh      re-emit and replace the cached report
func NewRouter(cfg RouterConfig) http.Handler {
	base := cfg.Logger
	if base == nil {
		base = slog.Default()
	}

	dashboardHandler := NewDashboardHandler(cfg.Dashboard, cfg.Reports)
	socket := NewSelectionSocket(cfg.Dashboard)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(ContextualLoggerMiddleware(base))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		sendJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.Metrics)
	}
	r.Get("/ws", socket.HandleConnections)

	r.Route("/api", func(r chi.Router) {
		r.Use(RateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst))

		r.Get("/periods", dashboardHandler.HandleGetPeriods)
		r.Get("/dashboard", dashboardHandler.HandleGetDashboard)
		r.Put("/dashboard/selection", dashboardHandler.HandleSetSelection)
		r.Get("/report", dashboardHandler.HandleGetReport)
		r.Get("/report/summary", dashboardHandler.HandleGetReportSummary)
		r.Post("/report/refresh", dashboardHandler.HandleRefreshReport)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") {
			sendJSONError(w, "not found", http.StatusNotFound)
			return
		}
		http.NotFound(w, r)
	})

	return r
}
