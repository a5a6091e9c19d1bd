package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/simaogato/salesdash-backend/internal/domain"
)

// DefaultTable is the flat record table read by the source
const DefaultTable = "sales_records"

// recordSource implements domain.RecordSource over a flat Postgres table
type recordSource struct {
	db    *DB
	table string
}

// NewRecordSource creates a record source reading every row of table
func NewRecordSource(db *DB, table string) domain.RecordSource {
	if table == "" {
		table = DefaultTable
	}
	return &recordSource{db: db, table: table}
}

// ReadAll reads every row of the table in insertion order.
// NULL columns become empty fields so the loader drops them as incomplete.
func (r *recordSource) ReadAll(ctx context.Context) (*domain.SourceRows, error) {
	query := fmt.Sprintf(`
		SELECT invoice_no, stock_code, description, quantity::text,
		       invoice_date::text, unit_price::text, customer_id, country
		FROM %s
		ORDER BY id
	`, pq.QuoteIdentifier(r.table))

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query %s: %v", domain.ErrSourceUnavailable, r.table, err)
	}
	defer rows.Close()

	result := &domain.SourceRows{
		Header: []string{
			domain.ColumnOrderID,
			domain.ColumnStockCode,
			domain.ColumnDescription,
			domain.ColumnQuantity,
			domain.ColumnTimestamp,
			domain.ColumnUnitPrice,
			domain.ColumnCustomerID,
			domain.ColumnCountry,
		},
	}

	for rows.Next() {
		fields := make([]sql.NullString, len(result.Header))
		dest := make([]interface{}, len(fields))
		for i := range fields {
			dest[i] = &fields[i]
		}

		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan sales record: %w", err)
		}

		row := make([]string, len(fields))
		for i, f := range fields {
			if f.Valid {
				row[i] = f.String
			}
		}
		result.Rows = append(result.Rows, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to iterate %s: %v", domain.ErrSourceUnavailable, r.table, err)
	}

	return result, nil
}
