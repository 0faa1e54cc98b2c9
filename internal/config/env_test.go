package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"SQLITE_DB", "PG_HOST", "PG_PORT", "PG_USER", "PG_DB", "PG_PASSWORD", "BATCH_SIZE"} {
		t.Setenv(key, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, DefaultSQLitePath, cfg.SQLitePath)
	assert.Equal(t, DefaultPGHost, cfg.PGHost)
	assert.Equal(t, DefaultPGPort, cfg.PGPort)
	assert.Equal(t, DefaultPGUser, cfg.PGUser)
	assert.Equal(t, DefaultPGDatabase, cfg.PGDatabase)
	assert.Empty(t, cfg.PGPassword)
	assert.Equal(t, DefaultBatchSize, cfg.BatchSize)
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("SQLITE_DB", "/data/source.sqlite")
	t.Setenv("PG_HOST", "db.internal")
	t.Setenv("PG_PORT", "15432")
	t.Setenv("PG_USER", "migrator")
	t.Setenv("PG_DB", "radiation")
	t.Setenv("PG_PASSWORD", "secret")
	t.Setenv("BATCH_SIZE", "500")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "/data/source.sqlite", cfg.SQLitePath)
	assert.Equal(t, "db.internal", cfg.PGHost)
	assert.Equal(t, 15432, cfg.PGPort)
	assert.Equal(t, "migrator", cfg.PGUser)
	assert.Equal(t, "radiation", cfg.PGDatabase)
	assert.Equal(t, "secret", cfg.PGPassword)
	assert.Equal(t, 500, cfg.BatchSize)
}

func TestFromEnv_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"non_numeric_port", "PG_PORT", "abc"},
		{"port_out_of_range", "PG_PORT", "70000"},
		{"non_numeric_batch_size", "BATCH_SIZE", "many"},
		{"zero_batch_size", "BATCH_SIZE", "0"},
		{"negative_batch_size", "BATCH_SIZE", "-10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := FromEnv()
			assert.Error(t, err)
		})
	}
}

func TestPGConnString(t *testing.T) {
	cfg := Config{
		PGHost:     "localhost",
		PGPort:     5432,
		PGUser:     "safecast",
		PGDatabase: "safecast",
		BatchSize:  DefaultBatchSize,
		SQLitePath: DefaultSQLitePath,
	}

	assert.Equal(t,
		"host=localhost port=5432 user=safecast dbname=safecast sslmode=disable",
		cfg.PGConnString())

	cfg.PGPassword = "hunter2"
	assert.Equal(t,
		"host=localhost port=5432 user=safecast dbname=safecast sslmode=disable password=hunter2",
		cfg.PGConnString())
}

func TestValidate(t *testing.T) {
	valid := Config{
		SQLitePath: "db.sqlite",
		PGHost:     "localhost",
		PGPort:     5432,
		PGUser:     "safecast",
		PGDatabase: "safecast",
		BatchSize:  1000,
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty_sqlite_path", func(c *Config) { c.SQLitePath = " " }},
		{"empty_host", func(c *Config) { c.PGHost = "" }},
		{"bad_port", func(c *Config) { c.PGPort = 0 }},
		{"empty_user", func(c *Config) { c.PGUser = "" }},
		{"empty_database", func(c *Config) { c.PGDatabase = "" }},
		{"bad_batch_size", func(c *Config) { c.BatchSize = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
