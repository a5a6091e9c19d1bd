// Package bootstrap builds the record table both binaries start from.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/simaogato/salesdash-backend/internal/adapter/repository/csvfile"
	"github.com/simaogato/salesdash-backend/internal/adapter/repository/postgres"
	"github.com/simaogato/salesdash-backend/internal/config"
	"github.com/simaogato/salesdash-backend/internal/domain"
	"github.com/simaogato/salesdash-backend/internal/usecase/deriver"
	"github.com/simaogato/salesdash-backend/internal/usecase/loader"
)

// OpenSource picks the record source from config: Postgres when DatabaseURL
// is set, otherwise the CSV file at DataPath. The returned close func is never nil.
func OpenSource(ctx context.Context, cfg *config.AppConfig, logger *slog.Logger) (domain.RecordSource, func(), error) {
	if cfg.DatabaseURL == "" {
		logger.Info("Using CSV record source", "path", cfg.DataPath)
		return csvfile.NewRecordSource(cfg.DataPath), func() {}, nil
	}

	db, err := postgres.NewDB(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, func() {}, fmt.Errorf("%w: %v", domain.ErrSourceUnavailable, err)
	}
	logger.Info("Using Postgres record source", "table", cfg.SourceTable)

	closeFn := func() {
		if err := db.Close(); err != nil {
			logger.Warn("Failed to close database", "error", err)
		}
	}
	return postgres.NewRecordSource(db, cfg.SourceTable), closeFn, nil
}

// BuildTable loads, cleans and derives the record table.
// Logic:
//  1. Load rows from the source and apply the cleaning policy
//  2. Derive timestamp, line total and period for each record
//
// Any error aborts the run; no partial table is returned.
func BuildTable(ctx context.Context, source domain.RecordSource, logger *slog.Logger, recorder loader.DropRecorder) (*domain.RecordTable, loader.Stats, error) {
	records, stats, err := loader.NewLoader(logger, recorder).Load(ctx, source)
	if err != nil {
		return nil, stats, fmt.Errorf("failed to load records: %w", err)
	}

	table, err := deriver.NewDeriver().Derive(records)
	if err != nil {
		return nil, stats, fmt.Errorf("failed to derive features: %w", err)
	}

	logger.Info("Record table ready",
		"records", table.Len(),
		"periods", len(table.Periods()),
	)
	return table, stats, nil
}
