package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Storage drivers accepted by STORAGE_DRIVER.
const (
	StorageSQLite  = "sqlite"
	StorageMongoDB = "mongodb"
	StorageMemory  = "memory"
)

// Config represents the full application configuration surface.
type Config struct {
	Server    ServerConfig
	Log       LogConfig
	Storage   StorageConfig
	MongoDB   MongoDBConfig
	Cache     CacheConfig
	Sheets    SheetsConfig
	Reporting ReportingConfig
	Engine    EngineConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// LogConfig selects the minimum zap level.
type LogConfig struct {
	Level string
}

// StorageConfig selects where scenarios are persisted.
type StorageConfig struct {
	Driver     string
	SQLitePath string
}

// MongoDBConfig holds settings for MongoDB.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// CacheConfig configures the calculation cache. An empty RedisAddr keeps the
// cache in process.
type CacheConfig struct {
	RedisAddr string
	TTL       time.Duration
}

// SheetsConfig contains configuration required to export to Google Sheets.
// Export is disabled when both fields are empty.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
}

// Enabled reports whether Google Sheets export is configured.
func (s SheetsConfig) Enabled() bool {
	return s.CredentialsPath != "" && s.SpreadsheetID != ""
}

// ReportingConfig holds scheduler-related settings.
type ReportingConfig struct {
	CronSchedule string
	Timezone     string
}

// EngineConfig tunes the break-even search.
type EngineConfig struct {
	BreakevenHorizonYears float64
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	ttl, err := time.ParseDuration(getenvWithDefault("CACHE_TTL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("parse CACHE_TTL: %w", err)
	}

	horizon, err := strconv.ParseFloat(getenvWithDefault("BREAKEVEN_HORIZON_YEARS", "100"), 64)
	if err != nil {
		return nil, fmt.Errorf("parse BREAKEVEN_HORIZON_YEARS: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		Log: LogConfig{
			Level: getenvWithDefault("LOG_LEVEL", "info"),
		},
		Storage: StorageConfig{
			Driver:     getenvWithDefault("STORAGE_DRIVER", StorageSQLite),
			SQLitePath: getenvWithDefault("SQLITE_PATH", "./data/tco.db"),
		},
		MongoDB: MongoDBConfig{
			URI:    os.Getenv("MONGODB_URI"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "tco"),
		},
		Cache: CacheConfig{
			RedisAddr: os.Getenv("REDIS_ADDR"),
			TTL:       ttl,
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_DATABASE_ID"),
		},
		Reporting: ReportingConfig{
			CronSchedule: getenvWithDefault("REPORT_CRON_SCHEDULE", "0 20 * * *"),
			Timezone:     getenvWithDefault("TIMEZONE", "UTC"),
		},
		Engine: EngineConfig{
			BreakevenHorizonYears: horizon,
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	switch c.Storage.Driver {
	case StorageSQLite:
		if c.Storage.SQLitePath == "" {
			return errors.New("SQLITE_PATH must be provided")
		}
	case StorageMongoDB:
		if c.MongoDB.URI == "" {
			return errors.New("MONGODB_URI must be provided")
		}
		if c.MongoDB.DBName == "" {
			return errors.New("MONGODB_DB_NAME must not be empty")
		}
	case StorageMemory:
	default:
		return fmt.Errorf("unsupported STORAGE_DRIVER %q", c.Storage.Driver)
	}

	if c.Cache.TTL < 0 {
		return errors.New("CACHE_TTL must not be negative")
	}

	if (c.Sheets.CredentialsPath == "") != (c.Sheets.SpreadsheetID == "") {
		return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH and GOOGLE_SHEET_DATABASE_ID must be provided together")
	}

	if c.Reporting.CronSchedule == "" {
		return errors.New("REPORT_CRON_SCHEDULE must be provided")
	}

	if c.Reporting.Timezone == "" {
		return errors.New("TIMEZONE must be provided")
	}
	if _, err := time.LoadLocation(c.Reporting.Timezone); err != nil {
		return fmt.Errorf("invalid TIMEZONE %q: %w", c.Reporting.Timezone, err)
	}

	if c.Engine.BreakevenHorizonYears <= 0 || c.Engine.BreakevenHorizonYears > 1000 {
		return errors.New("BREAKEVEN_HORIZON_YEARS must be in (0, 1000]")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
