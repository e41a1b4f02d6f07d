package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
// 所有環境變數只在這裡讀取。
type Config struct {
	Env string // development, staging, production

	// HTTP API
	Port string

	// Venues
	TWSE VenueConfig
	TPEX VenueConfig

	// HTTP client
	HTTPTimeout time.Duration

	// Analysis
	Days int // caller-facing window of distinct trading dates

	// Artifacts
	OutputDir   string
	RecordsFile string

	// Scheduler
	CronSpec string

	// Logging
	LogLevel  string
	LogFormat string
}

// VenueConfig holds one exchange venue's endpoint configuration.
type VenueConfig struct {
	BaseURL string
}

// Load reads configuration from environment variables.
// 只有這個函式會呼叫 os.Getenv()。
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Env:  getEnv("ENV", "development"),
		Port: getEnv("PORT", "8089"),

		TWSE: VenueConfig{
			BaseURL: getEnv("TWSE_BASE_URL", "https://www.twse.com.tw"),
		},
		TPEX: VenueConfig{
			BaseURL: getEnv("TPEX_BASE_URL", "https://www.tpex.org.tw"),
		},

		HTTPTimeout: getEnvAsDuration("HTTP_TIMEOUT", "15s"),

		Days: getEnvAsInt("ATTENTION_DAYS", 6),

		OutputDir:   getEnv("OUTPUT_DIR", "output"),
		RecordsFile: getEnv("RECORDS_FILE", filepath.Join("data", "earnings_records.csv")),

		CronSpec: getEnv("CRON_SPEC", "0 0 15 * * 1-5"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "console"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are sane
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if c.Days <= 0 {
		return fmt.Errorf("ATTENTION_DAYS must be a positive integer")
	}

	if c.TWSE.BaseURL == "" || c.TPEX.BaseURL == "" {
		return fmt.Errorf("venue base URLs must not be empty")
	}

	return nil
}

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{
		".env",
	}

	// Also try relative to executable
	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}
