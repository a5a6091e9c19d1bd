package postgres

import (
	"context"
	"fmt"

	"github.com/lib/pq"

	"github.com/simaogato/salesdash-backend/internal/domain"
)

// recordSink implements domain.RecordSink over the flat Postgres table
type recordSink struct {
	db    *DB
	table string
}

// NewRecordSink creates a record sink writing into table
func NewRecordSink(db *DB, table string) domain.RecordSink {
	if table == "" {
		table = DefaultTable
	}
	return &recordSink{db: db, table: table}
}

// Count returns the number of rows in the table
func (r *recordSink) Count(ctx context.Context) (int, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, pq.QuoteIdentifier(r.table))

	var count int
	if err := r.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", r.table, err)
	}
	return count, nil
}

// InsertRecords bulk-loads records with COPY inside a single database transaction
func (r *recordSink) InsertRecords(ctx context.Context, records []domain.Record) error {
	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer dbTx.Rollback()

	stmt, err := dbTx.PrepareContext(ctx, pq.CopyIn(r.table,
		"invoice_no", "stock_code", "description", "quantity",
		"invoice_date", "unit_price", "customer_id", "country",
	))
	if err != nil {
		return fmt.Errorf("failed to prepare copy: %w", err)
	}

	for _, rec := range records {
		_, err = stmt.ExecContext(ctx,
			rec.OrderID,
			rec.StockCode,
			rec.Description,
			rec.Quantity,
			rec.Timestamp,
			rec.UnitPrice.String(),
			rec.CustomerID,
			rec.Country,
		)
		if err != nil {
			stmt.Close()
			return fmt.Errorf("failed to copy sales record %s: %w", rec.OrderID, err)
		}
	}

	// Flush buffered rows
	if _, err := stmt.ExecContext(ctx); err != nil {
		stmt.Close()
		return fmt.Errorf("failed to flush copy: %w", err)
	}
	if err := stmt.Close(); err != nil {
		return fmt.Errorf("failed to close copy: %w", err)
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
