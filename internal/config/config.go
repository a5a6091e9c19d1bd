package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig holds all configuration for the application.
// The values are loaded from environment variables; defaults reproduce the
// fixed paths of the batch report (data.csv in, report files in ".").
type AppConfig struct {
	// Core settings
	LogLevel string

	// Record source
	DataPath    string
	DatabaseURL string // When set, records are read from Postgres instead of DataPath
	SourceTable string

	// Report output
	ReportDir  string
	ReportFile string

	// Dashboard servers
	HTTPPort        string
	GRPCPort        string
	APIToken        string
	ShutdownTimeout time.Duration
	RateLimitRPS    int
	RateLimitBurst  int

	// Report cache (serves GET /api/report without re-rendering)
	ReportCacheTTL time.Duration
}

// Load loads configuration from environment variables or a .env file.
func Load() *AppConfig {
	if err := godotenv.Load(); err != nil {
		if os.IsNotExist(err) {
			log.Println("Info: No .env file found. Relying on OS environment variables.")
		} else {
			log.Printf("Warning: Error loading .env file: %v. Relying on OS environment variables.", err)
		}
	}

	return &AppConfig{
		LogLevel: getEnv("LOG_LEVEL", "info"),

		DataPath:    getEnv("DATA_PATH", "data.csv"),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		SourceTable: getEnv("SOURCE_TABLE", "sales_records"),

		ReportDir:  getEnv("REPORT_DIR", "."),
		ReportFile: getEnv("REPORT_FILE", "Starter_Package_Report.pdf"),

		HTTPPort:        getEnv("HTTP_PORT", "8050"),
		GRPCPort:        getEnv("GRPC_PORT", "9090"),
		APIToken:        getEnv("API_TOKEN", "dev-token"),
		ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		RateLimitRPS:    getEnvAsInt("RATE_LIMIT_RPS", 20),
		RateLimitBurst:  getEnvAsInt("RATE_LIMIT_BURST", 40),

		ReportCacheTTL: getEnvAsDuration("REPORT_CACHE_TTL", time.Hour),
	}
}

// getEnv retrieves an environment variable or returns a fallback value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvAsInt retrieves an environment variable as an integer or returns a fallback.
func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	log.Printf("Invalid integer value for %s ('%s'), using default: %d", key, valueStr, fallback)
	return fallback
}

// getEnvAsDuration retrieves an environment variable as a time.Duration or returns a fallback.
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	log.Printf("Invalid duration value for %s ('%s'), using default: %s", key, valueStr, fallback.String())
	return fallback
}
