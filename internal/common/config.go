package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Archive ArchiveConfig
	Batch   BatchConfig
	Watch   WatchConfig
}

// ArchiveConfig holds archive-store configuration. An empty DSN disables
// archiving.
type ArchiveConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	DialTimeout     time.Duration
}

// BatchConfig holds directory batch-processing configuration
type BatchConfig struct {
	Workers        int
	QueueSize      int
	ProcessTimeout time.Duration
}

// WatchConfig holds watch-mode configuration
type WatchConfig struct {
	Debounce    time.Duration
	InitialScan bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Archive: ArchiveConfig{
			DSN:             getEnv("ARCHIVE_DB_URL", ""),
			MaxOpenConns:    getEnvAsInt("ARCHIVE_DB_MAX_CONNS", 10),
			MaxIdleConns:    getEnvAsInt("ARCHIVE_DB_IDLE_CONNS", 2),
			ConnMaxLifetime: getEnvAsDuration("ARCHIVE_DB_CONN_LIFETIME", 30*time.Minute),
			DialTimeout:     getEnvAsDuration("ARCHIVE_DB_DIAL_TIMEOUT", 3*time.Second),
		},
		Batch: BatchConfig{
			Workers:        getEnvAsInt("BATCH_WORKERS", 4),
			QueueSize:      getEnvAsInt("BATCH_QUEUE_SIZE", 256),
			ProcessTimeout: getEnvAsDuration("BATCH_PROCESS_TIMEOUT", time.Minute),
		},
		Watch: WatchConfig{
			Debounce:    getEnvAsDuration("WATCH_DEBOUNCE", 500*time.Millisecond),
			InitialScan: getEnvAsBool("WATCH_INITIAL_SCAN", true),
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

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
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

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.Batch.Workers <= 0 {
		return NewAppError("CONFIG_ERROR", "BATCH_WORKERS must be positive", ErrInvalidInput)
	}
	if c.Batch.QueueSize <= 0 {
		return NewAppError("CONFIG_ERROR", "BATCH_QUEUE_SIZE must be positive", ErrInvalidInput)
	}
	if c.Watch.Debounce < 0 {
		return NewAppError("CONFIG_ERROR", "WATCH_DEBOUNCE must not be negative", ErrInvalidInput)
	}
	return nil
}
