// Command report runs the batch pipeline once: load, derive, compute over the
// whole table, and write bar_chart.png, line_chart.png and the PDF report.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/simaogato/salesdash-backend/internal/adapter/render"
	"github.com/simaogato/salesdash-backend/internal/bootstrap"
	"github.com/simaogato/salesdash-backend/internal/config"
	"github.com/simaogato/salesdash-backend/internal/logger"
	"github.com/simaogato/salesdash-backend/internal/usecase/dashboard"
	"github.com/simaogato/salesdash-backend/internal/usecase/report"
)

func main() {
	cfg := config.Load()

	flag.StringVar(&cfg.DataPath, "data", cfg.DataPath, "path to the sales CSV file")
	flag.StringVar(&cfg.ReportDir, "out", cfg.ReportDir, "directory for the report and chart files")
	flag.Parse()

	if err := run(cfg); err != nil {
		log.Printf("Report failed: %v", err)
		os.Exit(1)
	}
}

// run owns every resource so deferred cleanup completes before main exits
func run(cfg *config.AppConfig) error {
	l := logger.Init(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	source, closeSource, err := bootstrap.OpenSource(ctx, cfg, l)
	if err != nil {
		return fmt.Errorf("failed to open record source: %w", err)
	}
	defer closeSource()

	table, stats, err := bootstrap.BuildTable(ctx, source, l, nil)
	if err != nil {
		return fmt.Errorf("failed to build record table: %w", err)
	}
	l.Info("Cleaning summary",
		"originalRows", stats.RowsRead,
		"afterCleaningRows", stats.Kept,
		"dropped", stats.Dropped(),
	)

	snapshot, aggs := dashboard.NewDashboardService(table, l, nil).Unfiltered()
	artifact, err := report.NewReportService(
		render.NewChartRenderer(),
		render.NewPDFWriter(),
		cfg.ReportDir,
		cfg.ReportFile,
		l,
	).Emit(ctx, snapshot, aggs)
	if err != nil {
		return fmt.Errorf("failed to emit report: %w", err)
	}

	l.Info("Done", "report", artifact.ReportPath, "id", artifact.ID.String())
	return nil
}
