package common

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	Database  DatabaseConfig
	Trainer   TrainerConfig
	Extractor ExtractorConfig
	Lexicon   LexiconConfig
	Ingest    IngestConfig
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	DSN              string
	MaxConns         int32
	MinConns         int32
	MaxConnLifetime  time.Duration
	MaxConnIdleTime  time.Duration
	DialTimeout      time.Duration
	StatementTimeout time.Duration
}

// TrainerConfig holds the external weight-trainer endpoint and cache policy.
type TrainerConfig struct {
	URL      string
	Timeout  time.Duration
	CacheTTL time.Duration
}

// ExtractorConfig holds extraction thresholds.
type ExtractorConfig struct {
	MaxCandidates         int
	MinConfidence         float64
	FastPathMinConfidence float64
}

// LexiconConfig holds lexicon-related configuration.
type LexiconConfig struct {
	// Path overrides the embedded lexicon resource when set.
	Path string
}

// IngestConfig holds inbox-watcher configuration for the daemon.
type IngestConfig struct {
	InboxDirs []string
	Debounce  time.Duration
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			DSN:              getEnv("DB_URL", ""),
			MaxConns:         getEnvAsInt32("DB_MAX_CONNS", 20),
			MinConns:         getEnvAsInt32("DB_MIN_CONNS", 5),
			MaxConnLifetime:  getEnvAsDuration("DB_MAX_CONN_LIFETIME", 30*time.Minute),
			MaxConnIdleTime:  getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", 5*time.Minute),
			DialTimeout:      getEnvAsDuration("DB_DIAL_TIMEOUT", 3*time.Second),
			StatementTimeout: getEnvAsDuration("DB_STATEMENT_TIMEOUT", 0),
		},
		Trainer: TrainerConfig{
			URL:      getEnv("TRAINER_URL", ""),
			Timeout:  getEnvAsDuration("TRAINER_TIMEOUT", 10*time.Second),
			CacheTTL: getEnvAsDuration("WEIGHTS_CACHE_TTL", 5*time.Minute),
		},
		Extractor: ExtractorConfig{
			MaxCandidates:         getEnvAsInt("MAX_CANDIDATES", 10),
			MinConfidence:         getEnvAsFloat64("MIN_CONFIDENCE", 0.03),
			FastPathMinConfidence: getEnvAsFloat64("FASTPATH_MIN_CONFIDENCE", 0.1),
		},
		Lexicon: LexiconConfig{
			Path: getEnv("LEXICON_PATH", ""),
		},
		Ingest: IngestConfig{
			InboxDirs: splitList(getEnv("INBOX_DIRS", "")),
			Debounce:  getEnvAsDuration("INBOX_DEBOUNCE", 500*time.Millisecond),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsInt32(key string, defaultValue int32) int32 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 32); err == nil {
			return int32(intVal)
		}
	}
	return defaultValue
}

func getEnvAsFloat64(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// ValidateDaemon checks the configuration the daemon requires. The CLI runs
// without a database (sqlite dictionary only), so validation is split by
// entrypoint rather than applied globally.
func (c *Config) ValidateDaemon() error {
	if c.Database.DSN == "" {
		return NewAppError("CONFIG_ERROR", "DB_URL is required", ErrInvalidInput)
	}
	if len(c.Ingest.InboxDirs) == 0 {
		return NewAppError("CONFIG_ERROR", "INBOX_DIRS is required", ErrInvalidInput)
	}
	return nil
}
