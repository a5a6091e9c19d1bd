package report

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/salesdash-backend/internal/domain"
)

// MockChartRenderer is a mock implementation of ChartRenderer
type MockChartRenderer struct {
	mock.Mock
}

func (m *MockChartRenderer) RenderBar(chart BarChart) ([]byte, error) {
	args := m.Called(chart)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockChartRenderer) RenderLine(chart LineChart) ([]byte, error) {
	args := m.Called(chart)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockDocumentWriter is a mock implementation of DocumentWriter
type MockDocumentWriter struct {
	mock.Mock
}

func (m *MockDocumentWriter) Write(w io.Writer, doc Document) error {
	args := m.Called(w, doc)
	if args.Error(0) == nil {
		_, _ = io.WriteString(w, "%PDF-fake")
	}
	return args.Error(0)
}

// MockRecorder is a mock implementation of Recorder
type MockRecorder struct {
	mock.Mock
}

func (m *MockRecorder) ReportGenerated() {
	m.Called()
}

var fixedNow = time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

func testInputs() (domain.MetricsSnapshot, domain.AggregateSet) {
	snapshot := domain.MetricsSnapshot{
		TotalRevenue:  decimal.NewFromInt(31),
		AverageValue:  decimal.NewFromInt(31).Div(decimal.NewFromInt(3)),
		OrderCount:    2,
		RecordCount:   3,
		TotalQuantity: 7,
	}
	aggs := domain.AggregateSet{
		TopItems: []domain.ItemCount{{Item: "WHITE HANGING HEART", Count: 2}},
		PeriodTotals: []domain.PeriodTotal{
			{Period: "2010-12", Total: decimal.NewFromInt(11)},
			{Period: "2011-01", Total: decimal.NewFromInt(20)},
		},
	}
	return snapshot, aggs
}

func TestEmit_WritesAllArtifacts(t *testing.T) {
	dir := t.TempDir()
	snapshot, aggs := testInputs()

	charts := new(MockChartRenderer)
	charts.On("RenderBar", BarChart{
		Title:  "Top 10 Products by Number of Orders",
		XLabel: "Product",
		YLabel: "Number of Orders",
		Items:  aggs.TopItems,
	}).Return([]byte("bar-png"), nil)
	charts.On("RenderLine", LineChart{
		Title:  "Monthly Sales Trend",
		XLabel: "Month",
		YLabel: "Total Sales",
		Points: aggs.PeriodTotals,
	}).Return([]byte("line-png"), nil)

	writer := new(MockDocumentWriter)
	writer.On("Write", mock.Anything, mock.MatchedBy(func(doc Document) bool {
		return doc.Title == "Starter Package - Basic Data Analysis Report" &&
			doc.GeneratedAt.Equal(fixedNow) &&
			len(doc.Lines) == 2 &&
			doc.Lines[0] == Line{Label: "Average Sale Value", Value: "10.33"} &&
			doc.Lines[1] == Line{Label: "Total Quantity Sold", Value: "7"} &&
			len(doc.Figures) == 2 &&
			doc.Figures[0].Heading == "Top Products by Orders:" &&
			bytes.Equal(doc.Figures[0].PNG, []byte("bar-png")) &&
			doc.Figures[1].Heading == "Monthly Sales Trend:" &&
			bytes.Equal(doc.Figures[1].PNG, []byte("line-png"))
	})).Return(nil)

	recorder := new(MockRecorder)
	recorder.On("ReportGenerated").Return().Once()

	svc := NewReportService(charts, writer, dir, "", nil).
		WithClock(func() time.Time { return fixedNow }).
		WithRecorder(recorder)

	artifact, err := svc.Emit(context.Background(), snapshot, aggs)

	require.NoError(t, err)
	assert.Equal(t, fixedNow, artifact.GeneratedAt)
	assert.Equal(t, filepath.Join(dir, DefaultReportFile), artifact.ReportPath)
	assert.Equal(t, []byte("%PDF-fake"), artifact.Content)

	for path, expected := range map[string]string{
		filepath.Join(dir, DefaultBarChartFile):  "bar-png",
		filepath.Join(dir, DefaultLineChartFile): "line-png",
		filepath.Join(dir, DefaultReportFile):    "%PDF-fake",
	} {
		content, err := os.ReadFile(path)
		require.NoError(t, err, path)
		assert.Equal(t, expected, string(content))
	}

	charts.AssertExpectations(t)
	writer.AssertExpectations(t)
	recorder.AssertExpectations(t)
}

func TestEmit_CreatesReportDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	snapshot, aggs := testInputs()

	charts := new(MockChartRenderer)
	charts.On("RenderBar", mock.Anything).Return([]byte("bar"), nil)
	charts.On("RenderLine", mock.Anything).Return([]byte("line"), nil)
	writer := new(MockDocumentWriter)
	writer.On("Write", mock.Anything, mock.Anything).Return(nil)

	artifact, err := NewReportService(charts, writer, dir, "custom.pdf", nil).Emit(context.Background(), snapshot, aggs)

	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "custom.pdf"))
	assert.Equal(t, filepath.Join(dir, "custom.pdf"), artifact.ReportPath)
}

func TestEmit_EmptyInputsStillProduceReport(t *testing.T) {
	dir := t.TempDir()
	empty := domain.AggregateSet{TopItems: []domain.ItemCount{}, PeriodTotals: []domain.PeriodTotal{}}
	snapshot := domain.MetricsSnapshot{TotalRevenue: decimal.Zero, AverageValue: decimal.Zero}

	charts := new(MockChartRenderer)
	charts.On("RenderBar", mock.Anything).Return([]byte("bar"), nil)
	charts.On("RenderLine", mock.Anything).Return([]byte("line"), nil)
	writer := new(MockDocumentWriter)
	writer.On("Write", mock.Anything, mock.MatchedBy(func(doc Document) bool {
		return doc.Lines[0].Value == "0.00" && doc.Lines[1].Value == "0"
	})).Return(nil)

	_, err := NewReportService(charts, writer, dir, "", nil).Emit(context.Background(), snapshot, empty)

	require.NoError(t, err)
	writer.AssertExpectations(t)
}

func TestEmit_RenderFailure(t *testing.T) {
	dir := t.TempDir()
	snapshot, aggs := testInputs()

	charts := new(MockChartRenderer)
	charts.On("RenderBar", mock.Anything).Return(nil, errors.New("font missing"))
	writer := new(MockDocumentWriter)
	recorder := new(MockRecorder)

	_, err := NewReportService(charts, writer, dir, "", nil).WithRecorder(recorder).Emit(context.Background(), snapshot, aggs)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to render bar chart")
	assert.NoFileExists(t, filepath.Join(dir, DefaultReportFile))
	writer.AssertNotCalled(t, "Write", mock.Anything, mock.Anything)
	recorder.AssertNotCalled(t, "ReportGenerated")
}

func TestEmit_EncodeFailure(t *testing.T) {
	dir := t.TempDir()
	snapshot, aggs := testInputs()

	charts := new(MockChartRenderer)
	charts.On("RenderBar", mock.Anything).Return([]byte("bar"), nil)
	charts.On("RenderLine", mock.Anything).Return([]byte("line"), nil)
	writer := new(MockDocumentWriter)
	writer.On("Write", mock.Anything, mock.Anything).Return(errors.New("image too large"))

	_, err := NewReportService(charts, writer, dir, "", nil).Emit(context.Background(), snapshot, aggs)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to encode report")
	assert.NoFileExists(t, filepath.Join(dir, DefaultReportFile))
}

func TestEmit_Canceled(t *testing.T) {
	dir := t.TempDir()
	snapshot, aggs := testInputs()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	charts := new(MockChartRenderer)
	charts.On("RenderBar", mock.Anything).Return([]byte("bar"), nil)

	_, err := NewReportService(charts, new(MockDocumentWriter), dir, "", nil).Emit(ctx, snapshot, aggs)

	assert.ErrorIs(t, err, context.Canceled)
	charts.AssertNotCalled(t, "RenderLine", mock.Anything)
}

func TestEmit_LogsDescriptiveStatistics(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(slog.NewJSONHandler(&buf, nil))
	snapshot, aggs := testInputs()

	charts := new(MockChartRenderer)
	charts.On("RenderBar", mock.Anything).Return([]byte("bar"), nil)
	charts.On("RenderLine", mock.Anything).Return([]byte("line"), nil)
	writer := new(MockDocumentWriter)
	writer.On("Write", mock.Anything, mock.Anything).Return(nil)

	_, err := NewReportService(charts, writer, t.TempDir(), "", l).Emit(context.Background(), snapshot, aggs)

	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"averageSaleValue":"10.33"`)
	assert.Contains(t, buf.String(), `"totalQuantitySold":7`)
	assert.Contains(t, buf.String(), "Report generated successfully")
}
