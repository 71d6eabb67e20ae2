package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envOf(values map[string]string) func(string) string {
	return func(key string) string {
		return values[key]
	}
}

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := Load(envOf(nil))
		require.NoError(t, err)
		assert.Equal(t, ":8080", cfg.ServerAddress)
		assert.Equal(t, StorageMemory, cfg.Storage)
		assert.Equal(t, "file://migrations/ledger", cfg.MigrationsSource)
		assert.Equal(t, 100, cfg.MaxBidsPerProject)
		assert.Equal(t, "contract", cfg.HoldingAccount)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Empty(t, cfg.Authority)
	})

	t.Run("overrides", func(t *testing.T) {
		cfg, err := Load(envOf(map[string]string{
			"SERVER_ADDRESS":       ":9000",
			"LEDGER_STORAGE":       "Postgres",
			"POSTGRES_CONN":        "postgres://ledger@localhost/ledger",
			"MAX_BIDS_PER_PROJECT": "7",
			"HOLDING_ACCOUNT":      "escrow",
			"LEDGER_AUTHORITY":     "ST1ADMIN",
		}))
		require.NoError(t, err)
		assert.Equal(t, StoragePostgres, cfg.Storage)
		assert.Equal(t, 7, cfg.MaxBidsPerProject)
		assert.Equal(t, "escrow", cfg.HoldingAccount)
		assert.Equal(t, "ST1ADMIN", cfg.Authority)
	})

	t.Run("invalid values", func(t *testing.T) {
		for name, env := range map[string]map[string]string{
			"non numeric max bids": {"MAX_BIDS_PER_PROJECT": "lots"},
			"zero max bids":        {"MAX_BIDS_PER_PROJECT": "0"},
			"unknown storage":      {"LEDGER_STORAGE": "redis"},
			"postgres without dsn": {"LEDGER_STORAGE": "postgres"},
		} {
			t.Run(name, func(t *testing.T) {
				_, err := Load(envOf(env))
				assert.Error(t, err)
			})
		}
	})
}
