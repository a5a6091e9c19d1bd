// Package presenter formats dashboard views for the HTTP, websocket and gRPC surfaces.
package presenter

import (
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"github.com/simaogato/salesdash-backend/internal/domain"
	"github.com/simaogato/salesdash-backend/internal/usecase/dashboard"
)

// Card titles
const (
	CardTotalRevenue = "Total Revenue"
	CardAverageSale  = "Average Sale"
	CardTotalOrders  = "Total Orders"
)

// Chart titles
const (
	TopItemsTitle     = "Top 10 Products by Orders"
	PeriodTotalsTitle = "Monthly Sales Trend"
)

// Card is one KPI card
type Card struct {
	Title string `json:"title"`
	Value string `json:"value"`
}

// Bar is one item-frequency bar
type Bar struct {
	Item  string `json:"item"`
	Count int    `json:"count"`
}

// Point is one period-total point; Total is an exact decimal string
type Point struct {
	Period string `json:"period"`
	Total  string `json:"total"`
}

// Metrics carries the raw snapshot values as exact strings and integers
type Metrics struct {
	TotalRevenue  string `json:"totalRevenue"`
	AverageValue  string `json:"averageValue"`
	OrderCount    int    `json:"orderCount"`
	RecordCount   int    `json:"recordCount"`
	TotalQuantity int64  `json:"totalQuantity"`
}

// Dashboard is the presented form of a dashboard.View
type Dashboard struct {
	Selection    []string `json:"selection"`
	Cards        []Card   `json:"cards"`
	Metrics      Metrics  `json:"metrics"`
	TopItems     []Bar    `json:"topItems"`
	PeriodTotals []Point  `json:"periodTotals"`
}

// FromView builds the presented dashboard for a view
func FromView(v dashboard.View) Dashboard {
	return Dashboard{
		Selection:    PeriodStrings(v.Selection.Periods()),
		Cards:        Cards(v.Metrics),
		Metrics:      FromSnapshot(v.Metrics),
		TopItems:     Bars(v.Aggregates.TopItems),
		PeriodTotals: Points(v.Aggregates.PeriodTotals),
	}
}

// Cards renders the three KPI cards
func Cards(m domain.MetricsSnapshot) []Card {
	return []Card{
		{Title: CardTotalRevenue, Value: Currency(m.TotalRevenue)},
		{Title: CardAverageSale, Value: Currency(m.AverageValue)},
		{Title: CardTotalOrders, Value: humanize.Comma(int64(m.OrderCount))},
	}
}

// FromSnapshot copies the snapshot into its exact presented form
func FromSnapshot(m domain.MetricsSnapshot) Metrics {
	return Metrics{
		TotalRevenue:  m.TotalRevenue.StringFixed(2),
		AverageValue:  m.AverageValue.StringFixed(2),
		OrderCount:    m.OrderCount,
		RecordCount:   m.RecordCount,
		TotalQuantity: m.TotalQuantity,
	}
}

// Bars converts the item-frequency series
func Bars(items []domain.ItemCount) []Bar {
	out := make([]Bar, 0, len(items))
	for _, it := range items {
		out = append(out, Bar{Item: it.Item, Count: it.Count})
	}
	return out
}

// Points converts the period-total series
func Points(totals []domain.PeriodTotal) []Point {
	out := make([]Point, 0, len(totals))
	for _, pt := range totals {
		out = append(out, Point{Period: pt.Period.String(), Total: pt.Total.StringFixed(2)})
	}
	return out
}

// PeriodStrings converts periods to their "YYYY-MM" form
func PeriodStrings(periods []domain.Period) []string {
	out := make([]string, 0, len(periods))
	for _, p := range periods {
		out = append(out, p.String())
	}
	return out
}

// ToPeriods converts "YYYY-MM" strings into periods.
// Values are taken as-is; unknown periods simply match no record.
func ToPeriods(values []string) []domain.Period {
	out := make([]domain.Period, 0, len(values))
	for _, v := range values {
		out = append(out, domain.Period(v))
	}
	return out
}

// Currency formats an amount as "$1,234.57" without leaving decimal arithmetic
func Currency(d decimal.Decimal) string {
	rounded := d.Round(2)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Neg()
	}

	fixed := rounded.StringFixed(2)
	fraction := fixed[strings.IndexByte(fixed, '.'):]
	return sign + "$" + humanize.BigComma(rounded.BigInt()) + fraction
}

// AsMap converts the dashboard into the generic form accepted by structpb
func (d Dashboard) AsMap() map[string]interface{} {
	selection := make([]interface{}, 0, len(d.Selection))
	for _, p := range d.Selection {
		selection = append(selection, p)
	}
	cards := make([]interface{}, 0, len(d.Cards))
	for _, c := range d.Cards {
		cards = append(cards, map[string]interface{}{"title": c.Title, "value": c.Value})
	}
	bars := make([]interface{}, 0, len(d.TopItems))
	for _, b := range d.TopItems {
		bars = append(bars, map[string]interface{}{"item": b.Item, "count": b.Count})
	}
	points := make([]interface{}, 0, len(d.PeriodTotals))
	for _, p := range d.PeriodTotals {
		points = append(points, map[string]interface{}{"period": p.Period, "total": p.Total})
	}

	return map[string]interface{}{
		"selection":    selection,
		"cards":        cards,
		"metrics":      d.Metrics.AsMap(),
		"topItems":     bars,
		"periodTotals": points,
	}
}

// AsMap converts the metrics into the generic form accepted by structpb
func (m Metrics) AsMap() map[string]interface{} {
	return map[string]interface{}{
		"totalRevenue":  m.TotalRevenue,
		"averageValue":  m.AverageValue,
		"orderCount":    m.OrderCount,
		"recordCount":   m.RecordCount,
		"totalQuantity": m.TotalQuantity,
	}
}
