package render

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/salesdash-backend/internal/domain"
	"github.com/simaogato/salesdash-backend/internal/usecase/report"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func TestRenderBar(t *testing.T) {
	tests := []struct {
		name  string
		items []domain.ItemCount
	}{
		{"With Items", []domain.ItemCount{
			{Item: "WHITE HANGING HEART T-LIGHT HOLDER", Count: 2028},
			{Item: "REGENCY CAKESTAND 3 TIER", Count: 1723},
			{Item: "JUMBO BAG RED RETROSPOT", Count: 1618},
		}},
		{"Empty Series", []domain.ItemCount{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			png, err := NewChartRenderer().RenderBar(report.BarChart{
				Title:  "Top 10 Products by Number of Orders",
				XLabel: "Product",
				YLabel: "Number of Orders",
				Items:  tt.items,
			})

			require.NoError(t, err)
			assert.True(t, bytes.HasPrefix(png, pngMagic), "output should be a PNG")
		})
	}
}

func TestRenderLine(t *testing.T) {
	tests := []struct {
		name   string
		points []domain.PeriodTotal
	}{
		{"Several Periods", []domain.PeriodTotal{
			{Period: "2010-12", Total: decimal.RequireFromString("748957.02")},
			{Period: "2011-01", Total: decimal.RequireFromString("560000.26")},
			{Period: "2011-02", Total: decimal.RequireFromString("498062.65")},
		}},
		{"Single Period", []domain.PeriodTotal{{Period: "2011-01", Total: decimal.NewFromInt(20)}}},
		{"Negative Total", []domain.PeriodTotal{
			{Period: "2011-01", Total: decimal.NewFromInt(-5)},
			{Period: "2011-02", Total: decimal.NewFromInt(10)},
		}},
		{"Empty Series", []domain.PeriodTotal{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			png, err := NewChartRenderer().RenderLine(report.LineChart{
				Title:  "Monthly Sales Trend",
				XLabel: "Month",
				YLabel: "Total Sales",
				Points: tt.points,
			})

			require.NoError(t, err)
			assert.True(t, bytes.HasPrefix(png, pngMagic), "output should be a PNG")
		})
	}
}

func TestValueRange(t *testing.T) {
	lo, hi := valueRange([]float64{0})
	assert.Equal(t, 0.0, lo)
	assert.Greater(t, hi, lo)

	lo, hi = valueRange([]float64{10, 20})
	assert.Equal(t, 0.0, lo)
	assert.InDelta(t, 22.0, hi, 1e-9)

	lo, hi = valueRange([]float64{-10, 10})
	assert.Less(t, lo, -10.0)
	assert.Greater(t, hi, 10.0)
}

func TestBarWidth(t *testing.T) {
	assert.Equal(t, 60, barWidth(1))
	assert.Equal(t, 44, barWidth(10))
	assert.Equal(t, 8, barWidth(500))
}

func TestPDFWriter_Write(t *testing.T) {
	png, err := NewChartRenderer().RenderBar(report.BarChart{
		Title: "Top 10 Products by Number of Orders",
		Items: []domain.ItemCount{{Item: "CAFÉ SET", Count: 3}},
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	err = NewPDFWriter().Write(&buf, report.Document{
		Title:       "Starter Package - Basic Data Analysis Report",
		GeneratedAt: time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC),
		Lines: []report.Line{
			{Label: "Average Sale Value", Value: "10.33"},
			{Label: "Total Quantity Sold", Value: "7"},
		},
		Figures: []report.Figure{
			{Heading: "Top Products by Orders:", Name: "bar_chart.png", PNG: png},
			{Heading: "Monthly Sales Trend:", Name: "line_chart.png", PNG: png},
		},
	})

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")), "output should be a PDF")
	assert.Greater(t, buf.Len(), len(png))
}

func TestPDFWriter_InvalidImage(t *testing.T) {
	var buf bytes.Buffer
	err := NewPDFWriter().Write(&buf, report.Document{
		Title:   "Broken",
		Figures: []report.Figure{{Heading: "Broken:", Name: "broken.png", PNG: []byte("not a png")}},
	})

	assert.Error(t, err)
}
