package render

import (
	"bytes"
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/simaogato/salesdash-backend/internal/usecase/report"
)

const (
	chartWidth  = 1024
	chartHeight = 576
	noDataLabel = "(no data)"
)

var (
	barColor  = drawing.ColorFromHex("00B5E2")
	lineColor = drawing.ColorFromHex("1F77B4")
)

// ChartRenderer implements report.ChartRenderer with go-chart PNG output
type ChartRenderer struct{}

// NewChartRenderer creates a new ChartRenderer
func NewChartRenderer() *ChartRenderer {
	return &ChartRenderer{}
}

// RenderBar renders the item-frequency bar chart.
// An empty series renders a single zero bar labelled "(no data)".
func (r *ChartRenderer) RenderBar(c report.BarChart) ([]byte, error) {
	bars := make([]chart.Value, 0, len(c.Items))
	maxCount := 0
	for _, item := range c.Items {
		bars = append(bars, chart.Value{
			Label: item.Item,
			Value: float64(item.Count),
			Style: chart.Style{FillColor: barColor, StrokeColor: barColor},
		})
		if item.Count > maxCount {
			maxCount = item.Count
		}
	}
	if len(bars) == 0 {
		bars = append(bars, chart.Value{Label: noDataLabel, Value: 0})
	}

	graph := chart.BarChart{
		Title:      c.Title,
		Width:      chartWidth,
		Height:     chartHeight,
		BarWidth:   barWidth(len(bars)),
		Background: chart.Style{Padding: chart.Box{Top: 48, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      chart.Style{TextRotationDegrees: 45.0, FontSize: 8},
		YAxis: chart.YAxis{
			Name:  c.YLabel,
			Range: &chart.ContinuousRange{Min: 0, Max: math.Max(1, float64(maxCount)*1.1)},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return humanize.Comma(int64(math.Round(f)))
				}
				return ""
			},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render bar chart %q: %w", c.Title, err)
	}
	return buf.Bytes(), nil
}

// RenderLine renders the period-total line chart with one tick per period.
// An empty series renders a single zero point labelled "(no data)".
func (r *ChartRenderer) RenderLine(c report.LineChart) ([]byte, error) {
	xs := make([]float64, 0, len(c.Points))
	ys := make([]float64, 0, len(c.Points))
	ticks := make([]chart.Tick, 0, len(c.Points))
	for i, p := range c.Points {
		xs = append(xs, float64(i))
		ys = append(ys, p.Total.InexactFloat64())
		ticks = append(ticks, chart.Tick{Value: float64(i), Label: p.Period.String()})
	}
	if len(xs) == 0 {
		xs = append(xs, 0)
		ys = append(ys, 0)
		ticks = append(ticks, chart.Tick{Value: 0, Label: noDataLabel})
	}

	lo, hi := valueRange(ys)

	graph := chart.Chart{
		Title:      c.Title,
		Width:      chartWidth,
		Height:     chartHeight,
		Background: chart.Style{Padding: chart.Box{Top: 48, Left: 16, Right: 16, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:  c.XLabel,
			Style: chart.Style{TextRotationDegrees: 45.0},
			Range: &chart.ContinuousRange{Min: -0.5, Max: float64(len(xs)) - 0.5},
			Ticks: ticks,
		},
		YAxis: chart.YAxis{
			Name:  c.YLabel,
			Range: &chart.ContinuousRange{Min: lo, Max: hi},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return humanize.FormatFloat("#,###.", f)
				}
				return ""
			},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    c.YLabel,
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: lineColor,
					StrokeWidth: 2,
					DotColor:    lineColor,
					DotWidth:    4,
				},
			},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render line chart %q: %w", c.Title, err)
	}
	return buf.Bytes(), nil
}

// valueRange returns a non-degenerate y range that includes zero
func valueRange(values []float64) (float64, float64) {
	lo, hi := 0.0, 0.0
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if hi == lo {
		hi = lo + 1
	}
	pad := (hi - lo) * 0.1
	if lo < 0 {
		lo -= pad
	}
	return lo, hi + pad
}

func barWidth(n int) int {
	w := (chartWidth - 128) / (n * 2)
	if w > 60 {
		return 60
	}
	if w < 8 {
		return 8
	}
	return w
}
