package dashboard

import (
	"log/slog"
	"sync"
	"time"

	"github.com/simaogato/salesdash-backend/internal/domain"
	"github.com/simaogato/salesdash-backend/internal/usecase/aggregation"
	"github.com/simaogato/salesdash-backend/internal/usecase/metrics"
)

// View is the output triple presented after a selection change.
// Metrics and Aggregates are always computed from the same subset.
type View struct {
	Selection  domain.FilterSelection
	Metrics    domain.MetricsSnapshot
	Aggregates domain.AggregateSet
}

// RecomputeRecorder observes each completed recomputation
type RecomputeRecorder interface {
	Recomputed(selected int, records int, elapsed time.Duration)
}

// DashboardService is the filter state machine.
// It has a single "ready" state parameterized by the current selection;
// OnSelectionChanged is the only way to change it.
type DashboardService struct {
	table    *domain.RecordTable
	logger   *slog.Logger
	recorder RecomputeRecorder

	// mu serializes selection changes: a change arriving while another is
	// being computed waits for it, so every View matches one selection.
	mu        sync.Mutex
	selection domain.FilterSelection
}

// NewDashboardService creates a new DashboardService instance.
// The initial selection is every period present in the table.
func NewDashboardService(table *domain.RecordTable, logger *slog.Logger, recorder RecomputeRecorder) *DashboardService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DashboardService{
		table:     table,
		logger:    logger,
		recorder:  recorder,
		selection: domain.NewFilterSelection(table.Periods()...),
	}
}

// Periods returns the selectable periods, ascending
func (s *DashboardService) Periods() []domain.Period {
	return s.table.Periods()
}

// Selection returns the currently held selection
func (s *DashboardService) Selection() domain.FilterSelection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection
}

// Current recomputes the view for the held selection
func (s *DashboardService) Current() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recompute(s.selection)
}

// OnSelectionChanged replaces the held selection and recomputes the view.
// Logic:
//  1. Replace the selection as a whole
//  2. Filter the table to records whose period is selected
//  3. Run the metric engine, then the aggregation engine, on that one subset
//
// An empty selection is valid and yields zero metrics and empty aggregates.
func (s *DashboardService) OnSelectionChanged(selection domain.FilterSelection) View {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.selection = selection
	return s.recompute(selection)
}

// Unfiltered computes metrics and aggregates over the whole table,
// independent of the held selection. This is what the report consumes.
func (s *DashboardService) Unfiltered() (domain.MetricsSnapshot, domain.AggregateSet) {
	subset := s.table.All()
	return metrics.ComputeMetrics(subset), aggregation.ComputeAggregates(subset)
}

// TopItems returns the item-frequency series of the whole table
func (s *DashboardService) TopItems() []domain.ItemCount {
	_, aggs := s.Unfiltered()
	return aggs.TopItems
}

// PeriodTotals returns the period-total series of the whole table
func (s *DashboardService) PeriodTotals() []domain.PeriodTotal {
	_, aggs := s.Unfiltered()
	return aggs.PeriodTotals
}

// recompute must be called with mu held
func (s *DashboardService) recompute(selection domain.FilterSelection) View {
	start := time.Now()

	subset := s.table.Filter(selection)
	view := View{
		Selection:  selection,
		Metrics:    metrics.ComputeMetrics(subset),
		Aggregates: aggregation.ComputeAggregates(subset),
	}

	elapsed := time.Since(start)
	s.logger.Debug("Dashboard recomputed",
		"periods", selection.Len(),
		"records", subset.Len(),
		"elapsed", elapsed,
	)
	if s.recorder != nil {
		s.recorder.Recomputed(selection.Len(), subset.Len(), elapsed)
	}

	return view
}
