package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// PeriodLayout is the calendar-month key format. It is zero-padded, so
// lexicographic order equals chronological order.
const PeriodLayout = "2006-01"

// Period represents a calendar-month bucket such as "2010-12"
type Period string

// PeriodOf truncates a timestamp to its calendar month
func PeriodOf(t time.Time) Period {
	return Period(t.Format(PeriodLayout))
}

// String returns the period key
func (p Period) String() string {
	return string(p)
}

// RawRecord represents one transaction line as loaded from the source.
// All fields are present and parsed; the timestamp is still in source form.
type RawRecord struct {
	OrderID      string
	StockCode    string
	Description  string
	Quantity     int64           // Negative for returns
	UnitPrice    decimal.Decimal // Never negative
	RawTimestamp string
	CustomerID   string
	Country      string
}

// Record represents a transaction line after feature derivation.
// Adheres to the data model: Timestamp and Period are always set.
type Record struct {
	RawRecord

	Timestamp time.Time
	LineTotal decimal.Decimal // Quantity * UnitPrice
	Period    Period
}

// RecordTable is the ordered, read-only collection of derived records.
// Only the feature deriver builds one; nothing mutates it afterwards.
type RecordTable struct {
	records []Record
	periods []Period
}

// NewRecordTable creates a table from derived records.
// The slice is copied so later changes by the caller are not visible.
func NewRecordTable(records []Record) *RecordTable {
	owned := make([]Record, len(records))
	copy(owned, records)

	seen := make(map[Period]struct{})
	periods := make([]Period, 0)
	for _, r := range owned {
		if _, exists := seen[r.Period]; !exists {
			seen[r.Period] = struct{}{}
			periods = append(periods, r.Period)
		}
	}
	sort.Slice(periods, func(i, j int) bool { return periods[i] < periods[j] })

	return &RecordTable{records: owned, periods: periods}
}

// Len returns the number of records
func (t *RecordTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.records)
}

// At returns a copy of the record at index i
func (t *RecordTable) At(i int) Record {
	return t.records[i]
}

// Periods returns the distinct periods present in the table, ascending
func (t *RecordTable) Periods() []Period {
	if t == nil {
		return []Period{}
	}
	out := make([]Period, len(t.periods))
	copy(out, t.periods)
	return out
}

// All returns a subset containing every record in table order
func (t *RecordTable) All() Subset {
	indices := make([]int, t.Len())
	for i := range indices {
		indices[i] = i
	}
	return Subset{table: t, indices: indices}
}

// Filter returns the subset of records whose period is in the selection.
// Single pass, table order preserved.
func (t *RecordTable) Filter(selection FilterSelection) Subset {
	indices := make([]int, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		if selection.Contains(t.records[i].Period) {
			indices = append(indices, i)
		}
	}
	return Subset{table: t, indices: indices}
}

// Subset is a view of a RecordTable defined by an index list.
// The zero value is the empty subset.
type Subset struct {
	table   *RecordTable
	indices []int
}

// Len returns the number of records in the subset
func (s Subset) Len() int {
	return len(s.indices)
}

// At returns a copy of the i-th record of the subset
func (s Subset) At(i int) Record {
	return s.table.records[s.indices[i]]
}
