package grpc

import (
	"context"
	"errors"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/simaogato/salesdash-backend/internal/adapter/presenter"
	"github.com/simaogato/salesdash-backend/internal/domain"
	"github.com/simaogato/salesdash-backend/internal/usecase/dashboard"
	"github.com/simaogato/salesdash-backend/internal/usecase/report"
)

// ReportProvider supplies the latest report artifact
type ReportProvider interface {
	Latest(ctx context.Context) (*report.Artifact, error)
}

// Server implements DashboardServiceServer
type Server struct {
	DashboardService *dashboard.DashboardService
	Reports          ReportProvider
}

// NewServer creates a new gRPC server instance
func NewServer(dashboardService *dashboard.DashboardService, reports ReportProvider) *Server {
	return &Server{
		DashboardService: dashboardService,
		Reports:          reports,
	}
}

// ListPeriods handles the ListPeriods RPC
func (s *Server) ListPeriods(ctx context.Context, _ *emptypb.Empty) (*structpb.ListValue, error) {
	periods := presenter.PeriodStrings(s.DashboardService.Periods())
	values := make([]interface{}, 0, len(periods))
	for _, p := range periods {
		values = append(values, p)
	}
	list, err := structpb.NewList(values)
	if err != nil {
		return nil, mapError(err)
	}
	return list, nil
}

// GetDashboard handles the GetDashboard RPC
func (s *Server) GetDashboard(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	view := s.DashboardService.Current()
	return toStruct(presenter.FromView(view).AsMap())
}

// SelectPeriods handles the SelectPeriods RPC.
// Every list element must be a string period; an empty list selects nothing.
func (s *Server) SelectPeriods(ctx context.Context, req *structpb.ListValue) (*structpb.Struct, error) {
	values := req.GetValues()
	periods := make([]domain.Period, 0, len(values))
	for i, v := range values {
		str, ok := v.GetKind().(*structpb.Value_StringValue)
		if !ok {
			return nil, status.Errorf(codes.InvalidArgument, "invalid period at index %d: expected string", i)
		}
		periods = append(periods, domain.Period(str.StringValue))
	}

	view := s.DashboardService.OnSelectionChanged(domain.NewFilterSelection(periods...))
	return toStruct(presenter.FromView(view).AsMap())
}

// GetReportSummary handles the GetReportSummary RPC
func (s *Server) GetReportSummary(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	if s.Reports == nil {
		return nil, status.Error(codes.Unavailable, "report generation is not configured")
	}

	artifact, err := s.Reports.Latest(ctx)
	if err != nil {
		return nil, mapError(err)
	}

	snapshot, _ := s.DashboardService.Unfiltered()
	return toStruct(map[string]interface{}{
		"id":            artifact.ID.String(),
		"generatedAt":   artifact.GeneratedAt.Format(time.RFC3339),
		"reportPath":    artifact.ReportPath,
		"barChartPath":  artifact.BarChartPath,
		"lineChartPath": artifact.LineChartPath,
		"sizeBytes":     len(artifact.Content),
		"metrics":       presenter.FromSnapshot(snapshot).AsMap(),
	})
}

func toStruct(m map[string]interface{}) (*structpb.Struct, error) {
	st, err := structpb.NewStruct(m)
	if err != nil {
		return nil, mapError(err)
	}
	return st, nil
}

// mapError converts domain errors to gRPC status errors
func mapError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, context.Canceled):
		return status.Errorf(codes.Canceled, "%s", err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Errorf(codes.DeadlineExceeded, "%s", err.Error())
	case errors.Is(err, domain.ErrSourceUnavailable):
		return status.Errorf(codes.Unavailable, "%s", err.Error())
	case errors.Is(err, domain.ErrInvalidTimestamp), errors.Is(err, domain.ErrMissingColumn):
		return status.Errorf(codes.FailedPrecondition, "%s", err.Error())
	}

	// Default to Internal error for unknown errors
	return status.Errorf(codes.Internal, "%s", err.Error())
}
