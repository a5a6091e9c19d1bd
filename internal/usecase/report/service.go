package report

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/simaogato/salesdash-backend/internal/domain"
)

// Default artifact file names
const (
	DefaultReportFile    = "Starter_Package_Report.pdf"
	DefaultBarChartFile  = "bar_chart.png"
	DefaultLineChartFile = "line_chart.png"
)

// BarChart is the item-frequency chart input
type BarChart struct {
	Title  string
	XLabel string
	YLabel string
	Items  []domain.ItemCount
}

// LineChart is the period-total chart input
type LineChart struct {
	Title  string
	XLabel string
	YLabel string
	Points []domain.PeriodTotal
}

// ChartRenderer renders chart series to PNG bytes
type ChartRenderer interface {
	RenderBar(chart BarChart) ([]byte, error)
	RenderLine(chart LineChart) ([]byte, error)
}

// Line is one "label: value" paragraph of the document
type Line struct {
	Label string
	Value string
}

// Figure is a headed, embedded PNG image
type Figure struct {
	Heading string
	Name    string
	PNG     []byte
}

// Document is the fixed-layout report content, independent of the output format
type Document struct {
	Title       string
	GeneratedAt time.Time
	Lines       []Line
	Figures     []Figure
}

// DocumentWriter encodes a Document (e.g. as PDF)
type DocumentWriter interface {
	Write(w io.Writer, doc Document) error
}

// Recorder observes emitted reports
type Recorder interface {
	ReportGenerated()
}

// Artifact describes one emitted report
type Artifact struct {
	ID            uuid.UUID
	GeneratedAt   time.Time
	ReportPath    string
	BarChartPath  string
	LineChartPath string
	Content       []byte // Encoded report document
}

// ReportService turns a metrics snapshot and aggregates into a report artifact.
// It never sees the record table.
type ReportService struct {
	charts   ChartRenderer
	writer   DocumentWriter
	dir      string
	file     string
	logger   *slog.Logger
	recorder Recorder
	now      func() time.Time // Injectable clock for deterministic output
}

// NewReportService creates a new ReportService instance.
// Files are written to dir; file is the report file name.
func NewReportService(charts ChartRenderer, writer DocumentWriter, dir, file string, logger *slog.Logger) *ReportService {
	if dir == "" {
		dir = "."
	}
	if file == "" {
		file = DefaultReportFile
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportService{
		charts: charts,
		writer: writer,
		dir:    dir,
		file:   file,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// WithClock sets a custom clock function for deterministic output
func (s *ReportService) WithClock(now func() time.Time) *ReportService {
	s.now = now
	return s
}

// WithRecorder sets the report recorder
func (s *ReportService) WithRecorder(recorder Recorder) *ReportService {
	s.recorder = recorder
	return s
}

// Emit renders both charts, persists them as PNG files and assembles the report.
// Logic:
//  1. Render the bar chart from TopItems and write bar_chart.png
//  2. Render the line chart from PeriodTotals and write line_chart.png
//  3. Assemble the document (average sale value, total quantity, both charts)
//  4. Encode and write the report file
func (s *ReportService) Emit(ctx context.Context, snapshot domain.MetricsSnapshot, aggs domain.AggregateSet) (*Artifact, error) {
	artifact := &Artifact{
		ID:            uuid.New(),
		GeneratedAt:   s.now(),
		ReportPath:    filepath.Join(s.dir, s.file),
		BarChartPath:  filepath.Join(s.dir, DefaultBarChartFile),
		LineChartPath: filepath.Join(s.dir, DefaultLineChartFile),
	}

	averageSale := snapshot.AverageValue.StringFixed(2)
	s.logger.Info("Descriptive statistics",
		"averageSaleValue", averageSale,
		"totalQuantitySold", snapshot.TotalQuantity,
	)

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create report directory: %w", err)
	}

	// 1. Bar chart
	barPNG, err := s.charts.RenderBar(BarChart{
		Title:  "Top 10 Products by Number of Orders",
		XLabel: "Product",
		YLabel: "Number of Orders",
		Items:  aggs.TopItems,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render bar chart: %w", err)
	}
	if err := os.WriteFile(artifact.BarChartPath, barPNG, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write bar chart: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// 2. Line chart
	linePNG, err := s.charts.RenderLine(LineChart{
		Title:  "Monthly Sales Trend",
		XLabel: "Month",
		YLabel: "Total Sales",
		Points: aggs.PeriodTotals,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render line chart: %w", err)
	}
	if err := os.WriteFile(artifact.LineChartPath, linePNG, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write line chart: %w", err)
	}

	// 3. Document
	doc := Document{
		Title:       "Starter Package - Basic Data Analysis Report",
		GeneratedAt: artifact.GeneratedAt,
		Lines: []Line{
			{Label: "Average Sale Value", Value: averageSale},
			{Label: "Total Quantity Sold", Value: fmt.Sprintf("%d", snapshot.TotalQuantity)},
		},
		Figures: []Figure{
			{Heading: "Top Products by Orders:", Name: DefaultBarChartFile, PNG: barPNG},
			{Heading: "Monthly Sales Trend:", Name: DefaultLineChartFile, PNG: linePNG},
		},
	}

	// 4. Encode
	var buf bytes.Buffer
	if err := s.writer.Write(&buf, doc); err != nil {
		return nil, fmt.Errorf("failed to encode report: %w", err)
	}
	if err := os.WriteFile(artifact.ReportPath, buf.Bytes(), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write report: %w", err)
	}
	artifact.Content = buf.Bytes()

	s.logger.Info("Report generated successfully",
		"id", artifact.ID.String(),
		"path", artifact.ReportPath,
	)
	if s.recorder != nil {
		s.recorder.ReportGenerated()
	}

	return artifact, nil
}
