package seeder

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/simaogato/salesdash-backend/internal/domain"
)

// Result describes what a Seed call did
type Result struct {
	Existing int
	Inserted int
	Skipped  bool
}

// RecordSeeder copies a cleaned record table into a sink
type RecordSeeder struct {
	sink   domain.RecordSink
	logger *slog.Logger
}

// NewRecordSeeder creates a new RecordSeeder instance
func NewRecordSeeder(sink domain.RecordSink, logger *slog.Logger) *RecordSeeder {
	if logger == nil {
		logger = slog.Default()
	}
	return &RecordSeeder{sink: sink, logger: logger}
}

// Seed ensures the sink holds the table's records.
// Logic:
//  1. Count existing rows; a non-empty sink is left untouched unless force is set
//  2. Insert every record of the table in one batch
func (s *RecordSeeder) Seed(ctx context.Context, table *domain.RecordTable, force bool) (Result, error) {
	existing, err := s.sink.Count(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("failed to check existing records: %w", err)
	}

	result := Result{Existing: existing}
	if existing > 0 && !force {
		s.logger.Info("Sink already seeded", "existing", existing)
		result.Skipped = true
		return result, nil
	}

	if table.Len() == 0 {
		return result, nil
	}

	records := make([]domain.Record, table.Len())
	for i := range records {
		records[i] = table.At(i)
	}

	if err := s.sink.InsertRecords(ctx, records); err != nil {
		return result, fmt.Errorf("failed to insert records: %w", err)
	}
	result.Inserted = len(records)

	s.logger.Info("Records seeded", "inserted", result.Inserted, "existing", existing)
	return result, nil
}
