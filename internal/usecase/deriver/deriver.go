package deriver

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/simaogato/salesdash-backend/internal/domain"
)

// DefaultLayouts are the timestamp layouts tried in order.
// The first matches the source export ("12/1/2010 8:26").
var DefaultLayouts = []string{
	"1/2/2006 15:04",
	"1/2/2006 15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05-07",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// Deriver attaches computed fields to loaded records
type Deriver struct {
	layouts  []string
	location *time.Location
}

// NewDeriver creates a Deriver using the given layouts, or DefaultLayouts if none.
// The layouts are copied; later edits to the argument or DefaultLayouts are not seen.
func NewDeriver(layouts ...string) *Deriver {
	if len(layouts) == 0 {
		layouts = DefaultLayouts
	}
	owned := make([]string, len(layouts))
	copy(owned, layouts)
	return &Deriver{layouts: owned, location: time.UTC}
}

// Derive builds the record table.
// For each record:
//   - Timestamp: parsed from RawTimestamp (ErrInvalidTimestamp aborts the whole run)
//   - LineTotal: Quantity * UnitPrice, exact
//   - Period: Timestamp truncated to its calendar month
//
// The input slice is not modified.
func (d *Deriver) Derive(raw []domain.RawRecord) (*domain.RecordTable, error) {
	records := make([]domain.Record, 0, len(raw))

	for i, r := range raw {
		ts, err := d.parseTimestamp(r.RawTimestamp)
		if err != nil {
			return nil, fmt.Errorf("%w: record %d (order %s): %q", domain.ErrInvalidTimestamp, i, r.OrderID, r.RawTimestamp)
		}

		records = append(records, domain.Record{
			RawRecord: r,
			Timestamp: ts,
			LineTotal: LineTotal(r.Quantity, r.UnitPrice),
			Period:    domain.PeriodOf(ts),
		})
	}

	return domain.NewRecordTable(records), nil
}

// LineTotal computes quantity * unit price without rounding
func LineTotal(quantity int64, unitPrice decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(quantity))
}

func (d *Deriver) parseTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, domain.ErrInvalidTimestamp
	}

	for _, layout := range d.layouts {
		if ts, err := time.ParseInLocation(layout, value, d.location); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, domain.ErrInvalidTimestamp
}
