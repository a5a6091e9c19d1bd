package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	// Empty values fall back for typed settings
	for _, key := range []string{"SHUTDOWN_TIMEOUT", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "REPORT_CACHE_TTL"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 20, cfg.RateLimitRPS)
	assert.Equal(t, 40, cfg.RateLimitBurst)
	assert.Equal(t, time.Hour, cfg.ReportCacheTTL)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("DATA_PATH", "/data/online_retail.csv")
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/sales?sslmode=disable")
	t.Setenv("SOURCE_TABLE", "retail_lines")
	t.Setenv("REPORT_DIR", "/reports")
	t.Setenv("REPORT_FILE", "report.pdf")
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("GRPC_PORT", "9999")
	t.Setenv("API_TOKEN", "secret")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")
	t.Setenv("RATE_LIMIT_RPS", "5")
	t.Setenv("REPORT_CACHE_TTL", "15m")

	cfg := Load()

	assert.Equal(t, "/data/online_retail.csv", cfg.DataPath)
	assert.Equal(t, "postgres://u:p@localhost:5432/sales?sslmode=disable", cfg.DatabaseURL)
	assert.Equal(t, "retail_lines", cfg.SourceTable)
	assert.Equal(t, "/reports", cfg.ReportDir)
	assert.Equal(t, "report.pdf", cfg.ReportFile)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "9999", cfg.GRPCPort)
	assert.Equal(t, "secret", cfg.APIToken)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 5, cfg.RateLimitRPS)
	assert.Equal(t, 15*time.Minute, cfg.ReportCacheTTL)
}

func TestGetEnvAsInt_InvalidFallsBack(t *testing.T) {
	t.Setenv("RATE_LIMIT_RPS", "lots")
	assert.Equal(t, 20, getEnvAsInt("RATE_LIMIT_RPS", 20))
}

func TestGetEnvAsDuration_InvalidFallsBack(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "soon")
	assert.Equal(t, 10*time.Second, getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second))
}

func TestGetEnv_Fallback(t *testing.T) {
	assert.Equal(t, "fallback", getEnv("SALESDASH_TEST_UNSET_KEY", "fallback"))
}
