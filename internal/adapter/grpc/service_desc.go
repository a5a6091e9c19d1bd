package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully-qualified gRPC service name
const ServiceName = "salesdash.v1.DashboardService"

// Full method names
const (
	ListPeriodsMethod      = "/" + ServiceName + "/ListPeriods"
	GetDashboardMethod     = "/" + ServiceName + "/GetDashboard"
	SelectPeriodsMethod    = "/" + ServiceName + "/SelectPeriods"
	GetReportSummaryMethod = "/" + ServiceName + "/GetReportSummary"
)

// DashboardServiceServer is the server API for the dashboard service.
// Messages are well-known protobuf types, so no generated code is needed.
type DashboardServiceServer interface {
	// ListPeriods returns the selectable periods as a list of "YYYY-MM" strings
	ListPeriods(context.Context, *emptypb.Empty) (*structpb.ListValue, error)
	// GetDashboard returns the view for the currently held selection
	GetDashboard(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	// SelectPeriods replaces the selection with the given periods and returns the new view
	SelectPeriods(context.Context, *structpb.ListValue) (*structpb.Struct, error)
	// GetReportSummary returns the unfiltered metrics and the latest report artifact
	GetReportSummary(context.Context, *emptypb.Empty) (*structpb.Struct, error)
}

// RegisterDashboardServiceServer registers srv on s
func RegisterDashboardServiceServer(s grpc.ServiceRegistrar, srv DashboardServiceServer) {
	s.RegisterService(&DashboardServiceDesc, srv)
}

// DashboardServiceDesc describes the dashboard service for grpc.Server
var DashboardServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*DashboardServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ListPeriods", Handler: listPeriodsHandler},
		{MethodName: "GetDashboard", Handler: getDashboardHandler},
		{MethodName: "SelectPeriods", Handler: selectPeriodsHandler},
		{MethodName: "GetReportSummary", Handler: getReportSummaryHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "salesdash/v1/dashboard.proto",
}

func listPeriodsHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DashboardServiceServer).ListPeriods(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ListPeriodsMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(DashboardServiceServer).ListPeriods(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func getDashboardHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DashboardServiceServer).GetDashboard(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: GetDashboardMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(DashboardServiceServer).GetDashboard(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func selectPeriodsHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.ListValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DashboardServiceServer).SelectPeriods(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: SelectPeriodsMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(DashboardServiceServer).SelectPeriods(ctx, req.(*structpb.ListValue))
	}
	return interceptor(ctx, in, info, handler)
}

func getReportSummaryHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DashboardServiceServer).GetReportSummary(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: GetReportSummaryMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(DashboardServiceServer).GetReportSummary(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

// DashboardClient is the client API for the dashboard service
type DashboardClient struct {
	cc grpc.ClientConnInterface
}

// NewDashboardClient creates a new DashboardClient on cc
func NewDashboardClient(cc grpc.ClientConnInterface) *DashboardClient {
	return &DashboardClient{cc: cc}
}

// ListPeriods calls DashboardService.ListPeriods
func (c *DashboardClient) ListPeriods(ctx context.Context, opts ...grpc.CallOption) (*structpb.ListValue, error) {
	out := new(structpb.ListValue)
	if err := c.cc.Invoke(ctx, ListPeriodsMethod, &emptypb.Empty{}, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// GetDashboard calls DashboardService.GetDashboard
func (c *DashboardClient) GetDashboard(ctx context.Context, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, GetDashboardMethod, &emptypb.Empty{}, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// SelectPeriods calls DashboardService.SelectPeriods
func (c *DashboardClient) SelectPeriods(ctx context.Context, periods []string, opts ...grpc.CallOption) (*structpb.Struct, error) {
	values := make([]interface{}, 0, len(periods))
	for _, p := range periods {
		values = append(values, p)
	}
	in, err := structpb.NewList(values)
	if err != nil {
		return nil, err
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, SelectPeriodsMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// GetReportSummary calls DashboardService.GetReportSummary
func (c *DashboardClient) GetReportSummary(ctx context.Context, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, GetReportSummaryMethod, &emptypb.Empty{}, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
