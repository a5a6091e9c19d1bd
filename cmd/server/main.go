package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	grpclib "google.golang.org/grpc"

	"github.com/simaogato/salesdash-backend/internal/adapter/cache"
	grpcadapter "github.com/simaogato/salesdash-backend/internal/adapter/grpc"
	"github.com/simaogato/salesdash-backend/internal/adapter/httpapi"
	"github.com/simaogato/salesdash-backend/internal/adapter/render"
	"github.com/simaogato/salesdash-backend/internal/bootstrap"
	"github.com/simaogato/salesdash-backend/internal/config"
	"github.com/simaogato/salesdash-backend/internal/logger"
	"github.com/simaogato/salesdash-backend/internal/observability"
	"github.com/simaogato/salesdash-backend/internal/usecase/dashboard"
	"github.com/simaogato/salesdash-backend/internal/usecase/report"
)

func main() {
	// 1. Config and logging
	cfg := config.Load()
	l := logger.Init(cfg.LogLevel)
	metrics := observability.NewMetrics("salesdash")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	// 2. Load the record table (fatal on any error)
	source, closeSource, err := bootstrap.OpenSource(ctx, cfg, l)
	if err != nil {
		log.Fatalf("Failed to open record source: %v", err)
	}
	table, _, err := bootstrap.BuildTable(ctx, source, l, metrics)
	closeSource()
	if err != nil {
		log.Fatalf("Failed to build record table: %v", err)
	}

	// 3. Initialize Services (Use Cases)
	dashboardService := dashboard.NewDashboardService(table, l, metrics)
	reportService := report.NewReportService(
		render.NewChartRenderer(),
		render.NewPDFWriter(),
		cfg.ReportDir,
		cfg.ReportFile,
		l,
	).WithRecorder(metrics)

	reports := cache.NewReportCache(cfg.ReportCacheTTL, func(ctx context.Context) (*report.Artifact, error) {
		snapshot, aggs := dashboardService.Unfiltered()
		return reportService.Emit(ctx, snapshot, aggs)
	})

	// Emit the report once at startup, over the whole table
	if _, err := reports.Latest(ctx); err != nil {
		l.Error("Failed to emit startup report", "error", err)
	}

	// 4. Start gRPC Server
	grpcServer := grpclib.NewServer(
		grpclib.ChainUnaryInterceptor(
			grpcadapter.LoggingInterceptor(l),
			grpcadapter.AuthInterceptor(cfg.APIToken),
		),
	)
	grpcadapter.RegisterDashboardServiceServer(grpcServer, grpcadapter.NewServer(dashboardService, reports))

	grpcAddr := ":" + cfg.GRPCPort
	lis, err := net.Listen("tcp", grpcAddr)
	if err != nil {
		log.Fatalf("Failed to listen on %s: %v", grpcAddr, err)
	}

	go func() {
		l.Info("gRPC server listening", "address", grpcAddr)
		if err := grpcServer.Serve(lis); err != nil {
			log.Fatalf("Failed to serve gRPC server: %v", err)
		}
	}()

	// 5. Start HTTP Server
	httpServer := &http.Server{
		Addr: ":" + cfg.HTTPPort,
		Handler: httpapi.NewRouter(httpapi.RouterConfig{
			Dashboard:      dashboardService,
			Reports:        reports,
			Metrics:        metrics.Handler(),
			Logger:         l,
			RateLimitRPS:   cfg.RateLimitRPS,
			RateLimitBurst: cfg.RateLimitBurst,
		}),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		l.Info("HTTP server listening", "address", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to serve HTTP server: %v", err)
		}
	}()

	// Graceful shutdown
	waitForShutdown(l, grpcServer, httpServer, cfg.ShutdownTimeout)
}

// waitForShutdown waits for SIGTERM or SIGINT and gracefully shuts down both servers
func waitForShutdown(l *slog.Logger, grpcServer *grpclib.Server, httpServer *http.Server, timeout time.Duration) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigChan
	l.Info("Shutting down gracefully", "signal", sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		l.Error("HTTP server shutdown failed", "error", err)
	} else {
		l.Info("HTTP server stopped")
	}

	grpcServer.GracefulStop()
	l.Info("gRPC server stopped")
}
