// Command seed loads the sales CSV, cleans it, and copies the records into
// the Postgres table the server reads when DATABASE_URL is set.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/simaogato/salesdash-backend/internal/adapter/repository/csvfile"
	"github.com/simaogato/salesdash-backend/internal/adapter/repository/postgres"
	"github.com/simaogato/salesdash-backend/internal/bootstrap"
	"github.com/simaogato/salesdash-backend/internal/config"
	"github.com/simaogato/salesdash-backend/internal/logger"
	"github.com/simaogato/salesdash-backend/internal/usecase/seeder"
)

func main() {
	cfg := config.Load()

	var force bool
	flag.StringVar(&cfg.DataPath, "data", cfg.DataPath, "path to the sales CSV file")
	flag.StringVar(&cfg.SourceTable, "table", cfg.SourceTable, "destination table")
	flag.BoolVar(&force, "force", false, "insert even if the table already has rows")
	flag.Parse()

	if err := run(cfg, force); err != nil {
		log.Printf("Seed failed: %v", err)
		os.Exit(1)
	}
}

func run(cfg *config.AppConfig, force bool) error {
	l := logger.Init(cfg.LogLevel)

	if cfg.DatabaseURL == "" {
		return errors.New("DATABASE_URL is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	table, stats, err := bootstrap.BuildTable(ctx, csvfile.NewRecordSource(cfg.DataPath), l, nil)
	if err != nil {
		return fmt.Errorf("failed to build record table: %w", err)
	}

	db, err := postgres.NewDB(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	result, err := seeder.NewRecordSeeder(postgres.NewRecordSink(db, cfg.SourceTable), l).Seed(ctx, table, force)
	if err != nil {
		return fmt.Errorf("failed to seed records: %w", err)
	}

	l.Info("Seed complete",
		"rowsRead", stats.RowsRead,
		"inserted", result.Inserted,
		"skipped", result.Skipped,
	)
	return nil
}
