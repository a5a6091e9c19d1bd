package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"time"

	"github.com/simaogato/salesdash-backend/internal/adapter/presenter"
	"github.com/simaogato/salesdash-backend/internal/domain"
	"github.com/simaogato/salesdash-backend/internal/logger"
	"github.com/simaogato/salesdash-backend/internal/usecase/dashboard"
	"github.com/simaogato/salesdash-backend/internal/usecase/report"
)

const maxBodyBytes = 64 * 1024

// ReportProvider supplies the latest report artifact
type ReportProvider interface {
	Latest(ctx context.Context) (*report.Artifact, error)
	Refresh(ctx context.Context) (*report.Artifact, error)
}

// DashboardHandler serves the dashboard JSON API
type DashboardHandler struct {
	dashboard *dashboard.DashboardService
	reports   ReportProvider
}

// NewDashboardHandler creates a new DashboardHandler instance.
// reports may be nil, in which case the report endpoints return 503.
func NewDashboardHandler(dashboardService *dashboard.DashboardService, reports ReportProvider) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboardService, reports: reports}
}

// SelectionRequest is the body of PUT /api/dashboard/selection.
// A missing or null periods field selects nothing.
type SelectionRequest struct {
	Periods []string `json:"periods"`
}

// PeriodsResponse is the body of GET /api/periods
type PeriodsResponse struct {
	Periods []string `json:"periods"`
}

// ReportSummary is the body of GET /api/report/summary
type ReportSummary struct {
	ID          string            `json:"id"`
	GeneratedAt time.Time         `json:"generatedAt"`
	ReportFile  string            `json:"reportFile"`
	SizeBytes   int               `json:"sizeBytes"`
	Metrics     presenter.Metrics `json:"metrics"`
}

// HandleGetPeriods lists the selectable periods
func (h *DashboardHandler) HandleGetPeriods(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, http.StatusOK, PeriodsResponse{Periods: presenter.PeriodStrings(h.dashboard.Periods())})
}

// HandleGetDashboard returns the view for the held selection
func (h *DashboardHandler) HandleGetDashboard(w http.ResponseWriter, r *http.Request) {
	view := h.dashboard.Current()
	sendJSON(w, http.StatusOK, presenter.FromView(view))
}

// HandleSetSelection replaces the selection and returns the new view
func (h *DashboardHandler) HandleSetSelection(w http.ResponseWriter, r *http.Request) {
	ctxLogger := logger.FromContext(r.Context())

	var req SelectionRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&req); err != nil {
		ctxLogger.Debug("Invalid selection body", "error", err)
		sendJSONError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	selection := domain.NewFilterSelection(presenter.ToPeriods(req.Periods)...)
	view := h.dashboard.OnSelectionChanged(selection)
	ctxLogger.Info("Selection changed", "periods", selection.Len(), "records", view.Metrics.RecordCount)

	sendJSON(w, http.StatusOK, presenter.FromView(view))
}

// HandleGetReport streams the latest report document
func (h *DashboardHandler) HandleGetReport(w http.ResponseWriter, r *http.Request) {
	artifact, ok := h.latestReport(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filepath.Base(artifact.ReportPath)))
	w.Header().Set("X-Report-ID", artifact.ID.String())
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(artifact.Content); err != nil {
		logger.FromContext(r.Context()).Warn("Failed to write report response", "error", err)
	}
}

// HandleGetReportSummary describes the latest report and the unfiltered metrics it was built from
func (h *DashboardHandler) HandleGetReportSummary(w http.ResponseWriter, r *http.Request) {
	artifact, ok := h.latestReport(w, r)
	if !ok {
		return
	}

	sendJSON(w, http.StatusOK, h.summarize(artifact))
}

// HandleRefreshReport emits a new report, replacing the cached one
func (h *DashboardHandler) HandleRefreshReport(w http.ResponseWriter, r *http.Request) {
	if h.reports == nil {
		sendJSONError(w, "report generation is not configured", http.StatusServiceUnavailable)
		return
	}

	artifact, err := h.reports.Refresh(r.Context())
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to refresh report", "error", err)
		sendJSONError(w, "failed to refresh report", reportErrorStatus(err))
		return
	}

	logger.FromContext(r.Context()).Info("Report refreshed", "id", artifact.ID.String())
	sendJSON(w, http.StatusOK, h.summarize(artifact))
}

func (h *DashboardHandler) summarize(artifact *report.Artifact) ReportSummary {
	snapshot, _ := h.dashboard.Unfiltered()
	return ReportSummary{
		ID:          artifact.ID.String(),
		GeneratedAt: artifact.GeneratedAt,
		ReportFile:  filepath.Base(artifact.ReportPath),
		SizeBytes:   len(artifact.Content),
		Metrics:     presenter.FromSnapshot(snapshot),
	}
}

func (h *DashboardHandler) latestReport(w http.ResponseWriter, r *http.Request) (*report.Artifact, bool) {
	if h.reports == nil {
		sendJSONError(w, "report generation is not configured", http.StatusServiceUnavailable)
		return nil, false
	}

	artifact, err := h.reports.Latest(r.Context())
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to get report", "error", err)
		sendJSONError(w, "failed to get report", reportErrorStatus(err))
		return nil, false
	}
	return artifact, true
}

func reportErrorStatus(err error) int {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func sendJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

func sendJSONError(w http.ResponseWriter, message string, statusCode int) {
	sendJSON(w, statusCode, map[string]string{"error": message})
}
