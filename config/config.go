package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"auctionpulse/internal/adapters/logger" // Import the logger package for LogLevel
)

// Config holds all application configuration.
type Config struct {
	// Upstream API
	BaseURL     string
	HTTPTimeout time.Duration

	// Item selection
	Server        string // Server/faction slug, e.g. "gehennas-horde"
	ItemSlug      string // Item slug, e.g. "black-lotus"
	TimerangeDays int    // History window requested from the API

	// Pipeline Parameters
	BlockHours      int // Block size for density reduction, in hours
	MAShortSamples  int // Trailing window sizes, in post-averaging samples
	MAMediumSamples int //   (e.g. 2/6/12 samples = 4h/12h/24h at 2h blocks)
	MALongSamples   int
	JitterSeed      int64 // 0 means time-seeded gap-repair jitter

	// Display
	Location *time.Location // Timezone applied to scan timestamps

	// Database
	DBPath string

	// Logging
	LogLevel logger.LogLevel
}

// LoadConfig loads configuration from environment variables (.env file).
func LoadConfig() (*Config, error) {
	// Load .env file, but don't fail if it doesn't exist (allow pure env vars)
	_ = godotenv.Load()

	cfg := &Config{}
	var err error
	var errs []string // Collect validation errors

	// Upstream API
	cfg.BaseURL = getEnv("NEXUSHUB_BASE_URL", "https://api.nexushub.co")
	if cfg.BaseURL == "" {
		errs = append(errs, "NEXUSHUB_BASE_URL must be set")
	}

	timeoutSeconds := getEnvAsInt("HTTP_TIMEOUT_SECONDS", 30)
	if timeoutSeconds <= 0 {
		errs = append(errs, "HTTP_TIMEOUT_SECONDS must be positive")
	}
	cfg.HTTPTimeout = time.Duration(timeoutSeconds) * time.Second

	// Item selection
	cfg.Server = getEnv("AH_SERVER", "gehennas-horde")
	if cfg.Server == "" {
		errs = append(errs, "AH_SERVER must be set")
	}
	cfg.ItemSlug = getEnv("AH_ITEM", "black-lotus")
	if cfg.ItemSlug == "" {
		errs = append(errs, "AH_ITEM must be set")
	}

	cfg.TimerangeDays, err = getEnvAsIntRequired("TIMERANGE_DAYS", 30)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid TIMERANGE_DAYS: %v", err))
	} else if cfg.TimerangeDays <= 0 {
		errs = append(errs, "TIMERANGE_DAYS must be positive")
	}

	// Pipeline Parameters
	cfg.BlockHours, err = getEnvAsIntRequired("BLOCK_HOURS", 2)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid BLOCK_HOURS: %v", err))
	} else if cfg.BlockHours <= 0 {
		errs = append(errs, "BLOCK_HOURS must be positive")
	}

	cfg.MAShortSamples = getEnvAsInt("MA_SHORT_SAMPLES", 2)
	cfg.MAMediumSamples = getEnvAsInt("MA_MEDIUM_SAMPLES", 6)
	cfg.MALongSamples = getEnvAsInt("MA_LONG_SAMPLES", 12)
	if cfg.MAShortSamples <= 0 || cfg.MAMediumSamples <= 0 || cfg.MALongSamples <= 0 {
		errs = append(errs, "moving average windows must be positive")
	}
	if cfg.MAShortSamples >= cfg.MAMediumSamples || cfg.MAMediumSamples >= cfg.MALongSamples {
		errs = append(errs, "moving average windows must be strictly increasing (short < medium < long)")
	}

	seed := getEnvAsInt("JITTER_SEED", 0)
	cfg.JitterSeed = int64(seed)

	// Display timezone
	tzName := getEnv("DISPLAY_TZ", "Europe/Paris")
	cfg.Location, err = time.LoadLocation(tzName)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid DISPLAY_TZ '%s': %v", tzName, err))
	}

	// Database
	cfg.DBPath = getEnv("DB_PATH", "./data/auctionpulse.db")
	if cfg.DBPath == "" {
		errs = append(errs, "DB_PATH must be set")
	}

	// Logging
	logLevelStr := getEnv("LOG_LEVEL", "INFO")
	cfg.LogLevel = logger.ParseLevel(logLevelStr) // Use the parser from the logger package

	// Combine validation errors
	if len(errs) > 0 {
		return nil, fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}

	return cfg, nil
}

// --- Env Var Helpers ---

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
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

func getEnvAsIntRequired(key string, defaultValue int) (int, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		// Use default if env var is not set at all
		return defaultValue, nil
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		// Return error if env var is set but invalid
		return 0, fmt.Errorf("invalid integer value '%s' for key %s: %w", valueStr, key, err)
	}
	return value, nil
}
