package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"bid-ledger-api/internal/common"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

type Config struct {
	ServerAddress string

	Storage          string
	PostgresConn     string
	PostgresDatabase string
	MigrationsSource string
	RegistrySeedFile string

	MaxBidsPerProject int
	HoldingAccount    string
	Authority         string

	LogLevel string
}

// FromEnv reads the configuration from the process environment.
func FromEnv() (*Config, error) {
	return Load(os.Getenv)
}

// Load builds the configuration from a lookup function, filling defaults for unset keys.
func Load(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		ServerAddress:     valueOr(getenv("SERVER_ADDRESS"), ":8080"),
		Storage:           strings.ToLower(valueOr(getenv("LEDGER_STORAGE"), StorageMemory)),
		PostgresConn:      getenv("POSTGRES_CONN"),
		PostgresDatabase:  getenv("POSTGRES_DATABASE"),
		MigrationsSource:  valueOr(getenv("MIGRATIONS_SOURCE"), "file://migrations/ledger"),
		RegistrySeedFile:  getenv("REGISTRY_SEED_FILE"),
		MaxBidsPerProject: common.DefaultMaxBidsPerProject,
		HoldingAccount:    valueOr(getenv("HOLDING_ACCOUNT"), common.DefaultHoldingAccount),
		Authority:         getenv("LEDGER_AUTHORITY"),
		LogLevel:          valueOr(getenv("LOG_LEVEL"), "info"),
	}

	if raw := getenv("MAX_BIDS_PER_PROJECT"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("MAX_BIDS_PER_PROJECT: %w", err)
		}
		if n < 1 {
			return nil, fmt.Errorf("MAX_BIDS_PER_PROJECT must be positive, got %d", n)
		}
		cfg.MaxBidsPerProject = n
	}

	switch cfg.Storage {
	case StorageMemory:
	case StoragePostgres:
		if cfg.PostgresConn == "" {
			return nil, fmt.Errorf("POSTGRES_CONN is required for %s storage", StoragePostgres)
		}
	default:
		return nil, fmt.Errorf("LEDGER_STORAGE: unknown storage %q", cfg.Storage)
	}

	return cfg, nil
}

func valueOr(value, fallback string) string {
	if value == "" {
		return fallback
	}

	return value
}
