package loader

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/simaogato/salesdash-backend/internal/domain"
)

// Stats reports how many rows the cleaning policy dropped.
// Dropped rows are not errors; these counters are their only trace.
type Stats struct {
	RowsRead   int // Rows returned by the source, including malformed ones
	Duplicates int // Byte-identical to an earlier row
	Incomplete int // At least one empty field
	Malformed  int // Wrong field count, unparseable quantity or price, negative price
	Kept       int
}

// Dropped returns the total number of rows excluded from the table
func (s Stats) Dropped() int {
	return s.Duplicates + s.Incomplete + s.Malformed
}

// DropRecorder receives dropped-row counts, keyed by reason
type DropRecorder interface {
	RecordsLoaded(n int)
	RowsDropped(reason string, n int)
}

// Loader reads a record source and applies the cleaning policy
type Loader struct {
	logger   *slog.Logger
	recorder DropRecorder
}

// NewLoader creates a new Loader instance.
// recorder may be nil.
func NewLoader(logger *slog.Logger, recorder DropRecorder) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger, recorder: recorder}
}

// Load reads every row of the source and returns the cleaned records.
// Logic:
//  1. Read all rows from the source (fatal on ErrSourceUnavailable)
//  2. Resolve required columns from the header (fatal on ErrMissingColumn)
//  3. Drop rows identical to an earlier row across all fields
//  4. Drop rows with any empty field
//  5. Parse quantity and unit price; drop rows that do not parse
func (l *Loader) Load(ctx context.Context, source domain.RecordSource) ([]domain.RawRecord, Stats, error) {
	rows, err := source.ReadAll(ctx)
	if err != nil {
		return nil, Stats{}, err
	}

	cols, err := resolveColumns(rows.Header)
	if err != nil {
		return nil, Stats{}, err
	}

	stats := Stats{
		RowsRead:  len(rows.Rows) + rows.Malformed,
		Malformed: rows.Malformed,
	}

	seen := make(map[string]struct{}, len(rows.Rows))
	records := make([]domain.RawRecord, 0, len(rows.Rows))

	for _, row := range rows.Rows {
		if len(row) != len(rows.Header) {
			stats.Malformed++
			continue
		}

		key := strings.Join(row, "\x1f")
		if _, dup := seen[key]; dup {
			stats.Duplicates++
			continue
		}
		seen[key] = struct{}{}

		if hasEmptyField(row) {
			stats.Incomplete++
			continue
		}

		record, ok := cols.parse(row)
		if !ok {
			stats.Malformed++
			continue
		}
		records = append(records, record)
	}

	stats.Kept = len(records)

	l.logger.Info("Records loaded",
		"rowsRead", stats.RowsRead,
		"kept", stats.Kept,
		"duplicates", stats.Duplicates,
		"incomplete", stats.Incomplete,
		"malformed", stats.Malformed,
	)
	if l.recorder != nil {
		l.recorder.RecordsLoaded(stats.Kept)
		l.recorder.RowsDropped("duplicate", stats.Duplicates)
		l.recorder.RowsDropped("incomplete", stats.Incomplete)
		l.recorder.RowsDropped("malformed", stats.Malformed)
	}

	return records, stats, nil
}

// columns maps each record attribute to its position in a row; -1 if absent
type columns struct {
	orderID, stockCode, description, quantity, timestamp, unitPrice, customerID, country int
}

func resolveColumns(header []string) (columns, error) {
	index := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(h))
		if _, exists := index[name]; !exists {
			index[name] = i
		}
	}

	for _, required := range domain.RequiredColumns {
		if _, ok := index[strings.ToLower(required)]; !ok {
			return columns{}, fmt.Errorf("%w: %s", domain.ErrMissingColumn, required)
		}
	}

	lookup := func(name string) int {
		if i, ok := index[strings.ToLower(name)]; ok {
			return i
		}
		return -1
	}

	return columns{
		orderID:     lookup(domain.ColumnOrderID),
		stockCode:   lookup(domain.ColumnStockCode),
		description: lookup(domain.ColumnDescription),
		quantity:    lookup(domain.ColumnQuantity),
		timestamp:   lookup(domain.ColumnTimestamp),
		unitPrice:   lookup(domain.ColumnUnitPrice),
		customerID:  lookup(domain.ColumnCustomerID),
		country:     lookup(domain.ColumnCountry),
	}, nil
}

// parse converts a complete row into a RawRecord.
// Returns false if quantity or unit price is not a valid number.
func (c columns) parse(row []string) (domain.RawRecord, bool) {
	quantity, err := strconv.ParseInt(strings.TrimSpace(row[c.quantity]), 10, 64)
	if err != nil {
		return domain.RawRecord{}, false
	}

	unitPrice, err := decimal.NewFromString(strings.TrimSpace(row[c.unitPrice]))
	if err != nil || unitPrice.IsNegative() {
		return domain.RawRecord{}, false
	}

	return domain.RawRecord{
		OrderID:      row[c.orderID],
		StockCode:    field(row, c.stockCode),
		Description:  row[c.description],
		Quantity:     quantity,
		UnitPrice:    unitPrice,
		RawTimestamp: strings.TrimSpace(row[c.timestamp]),
		CustomerID:   field(row, c.customerID),
		Country:      field(row, c.country),
	}, true
}

func field(row []string, i int) string {
	if i < 0 {
		return ""
	}
	return row[i]
}

func hasEmptyField(row []string) bool {
	for _, v := range row {
		if v == "" {
			return true
		}
	}
	return false
}
