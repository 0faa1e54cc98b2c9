package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Defaults match the historical migration scripts so an unconfigured run
// points at the same databases they did.
const (
	DefaultSQLitePath = "database-8765.sqlite"
	DefaultPGHost     = "localhost"
	DefaultPGPort     = 5432
	DefaultPGUser     = "safecast"
	DefaultPGDatabase = "safecast"
	DefaultBatchSize  = 10000
)

// Config holds everything a migration run needs. It is built once at the
// process boundary and passed down explicitly; nothing below the cmd layer
// reads the environment.
type Config struct {
	SQLitePath string
	PGHost     string
	PGPort     int
	PGUser     string
	PGDatabase string
	PGPassword string
	BatchSize  int
}

// LoadEnv loads environment variables from a .env file if one exists.
// Missing files are not an error; system-wide environment variables are
// just as valid.
func LoadEnv() error {
	envPaths := []string{
		".env",
		".env.local",
		"../.env",
		"../../.env",
	}

	for _, envPath := range envPaths {
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				return fmt.Errorf("error loading %s file: %w", envPath, err)
			}
			break
		}
	}

	return nil
}

// FromEnv builds a Config from SQLITE_DB, PG_HOST, PG_PORT, PG_USER, PG_DB,
// PG_PASSWORD and BATCH_SIZE, falling back to the documented defaults.
func FromEnv() (Config, error) {
	cfg := Config{
		SQLitePath: getenvDefault("SQLITE_DB", DefaultSQLitePath),
		PGHost:     getenvDefault("PG_HOST", DefaultPGHost),
		PGPort:     DefaultPGPort,
		PGUser:     getenvDefault("PG_USER", DefaultPGUser),
		PGDatabase: getenvDefault("PG_DB", DefaultPGDatabase),
		PGPassword: os.Getenv("PG_PASSWORD"),
		BatchSize:  DefaultBatchSize,
	}

	if raw := strings.TrimSpace(os.Getenv("PG_PORT")); raw != "" {
		port, err := strconv.Atoi(raw)
		if err != nil {
			return Config{}, fmt.Errorf("invalid PG_PORT %q: %w", raw, err)
		}
		cfg.PGPort = port
	}

	if raw := strings.TrimSpace(os.Getenv("BATCH_SIZE")); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil {
			return Config{}, fmt.Errorf("invalid BATCH_SIZE %q: %w", raw, err)
		}
		cfg.BatchSize = size
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// PGConnString builds the lib/pq keyword/value connection string.
func (c Config) PGConnString() string {
	parts := []string{
		"host=" + c.PGHost,
		fmt.Sprintf("port=%d", c.PGPort),
		"user=" + c.PGUser,
		"dbname=" + c.PGDatabase,
		"sslmode=disable",
	}
	if c.PGPassword != "" {
		parts = append(parts, "password="+c.PGPassword)
	}
	return strings.Join(parts, " ")
}

func getenvDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
