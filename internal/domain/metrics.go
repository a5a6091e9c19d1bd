package domain

import "github.com/shopspring/decimal"

// TopItemsLimit caps the length of AggregateSet.TopItems
const TopItemsLimit = 10

// MetricsSnapshot holds the headline metrics of one subset.
// It is derived, never stored: every selection change computes a new one.
type MetricsSnapshot struct {
	TotalRevenue  decimal.Decimal
	AverageValue  decimal.Decimal // TotalRevenue / RecordCount (per line, not per order)
	OrderCount    int             // Distinct order identifiers
	RecordCount   int
	TotalQuantity int64
}

// ItemCount is one bar of the item-frequency chart
type ItemCount struct {
	Item  string
	Count int
}

// PeriodTotal is one point of the period-total chart
type PeriodTotal struct {
	Period Period
	Total  decimal.Decimal
}

// AggregateSet holds the chart-ready aggregates of one subset
type AggregateSet struct {
	TopItems     []ItemCount   // Descending by count, first-seen order on ties, at most TopItemsLimit
	PeriodTotals []PeriodTotal // One per distinct period, ascending
}
