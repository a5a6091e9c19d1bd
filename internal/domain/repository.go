package domain

import "context"

// Column names of the flat record table. Matching is case-insensitive.
const (
	ColumnOrderID     = "InvoiceNo"
	ColumnStockCode   = "StockCode"
	ColumnDescription = "Description"
	ColumnQuantity    = "Quantity"
	ColumnTimestamp   = "InvoiceDate"
	ColumnUnitPrice   = "UnitPrice"
	ColumnCustomerID  = "CustomerID"
	ColumnCountry     = "Country"
)

// RequiredColumns must be present in every source
var RequiredColumns = []string{
	ColumnOrderID,
	ColumnDescription,
	ColumnQuantity,
	ColumnUnitPrice,
	ColumnTimestamp,
}

// SourceRows is the uniform, untyped result of reading a record source
type SourceRows struct {
	Header []string
	Rows   [][]string

	// Malformed counts rows the source could not split into Header fields
	Malformed int
}

// RecordSource defines the interface for reading the flat record table
type RecordSource interface {
	// ReadAll reads every row of the source.
	// Returns an error wrapping ErrSourceUnavailable if the source cannot be read.
	ReadAll(ctx context.Context) (*SourceRows, error)
}

// RecordSink defines the interface for persisting cleaned records
type RecordSink interface {
	// Count returns the number of rows already stored
	Count(ctx context.Context) (int, error)

	// InsertRecords stores all records atomically
	InsertRecords(ctx context.Context, records []Record) error
}
