package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/salesdash-backend/internal/config"
	"github.com/simaogato/salesdash-backend/internal/domain"
)

const sample = `InvoiceNo,StockCode,Description,Quantity,InvoiceDate,UnitPrice,CustomerID,Country
536365,85123A,WHITE HANGING HEART,2,12/1/2010 8:26,5.50,17850,United Kingdom
536366,22633,HAND WARMER UNION JACK,4,1/4/2011 10:00,5.00,17850,United Kingdom
`

func TestRun_WritesReport(t *testing.T) {
	dir := t.TempDir()
	dataPath := filepath.Join(dir, "data.csv")
	require.NoError(t, os.WriteFile(dataPath, []byte(sample), 0o644))
	outDir := filepath.Join(dir, "out")

	err := run(&config.AppConfig{
		LogLevel:   "error",
		DataPath:   dataPath,
		ReportDir:  outDir,
		ReportFile: "report.pdf",
	})

	require.NoError(t, err)
	for _, name := range []string{"report.pdf", "bar_chart.png", "line_chart.png"} {
		_, statErr := os.Stat(filepath.Join(outDir, name))
		assert.NoError(t, statErr, name)
	}
}

func TestRun_ReturnsErrorInsteadOfExiting(t *testing.T) {
	dir := t.TempDir()

	err := run(&config.AppConfig{
		LogLevel:   "error",
		DataPath:   filepath.Join(dir, "missing.csv"),
		ReportDir:  dir,
		ReportFile: "report.pdf",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSourceUnavailable)
	assert.Contains(t, err.Error(), "failed to build record table")
}

func TestRun_UnreachableDatabase(t *testing.T) {
	err := run(&config.AppConfig{
		LogLevel:    "error",
		DatabaseURL: "host=127.0.0.1 port=1 user=test password=test dbname=test sslmode=disable connect_timeout=1",
		SourceTable: "sales_records",
		ReportDir:   t.TempDir(),
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSourceUnavailable)
}
