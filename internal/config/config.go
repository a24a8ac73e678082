// Package config reads process settings from CASEPROGRESS_* environment
// variables.
package config

import (
	"os"
	"path/filepath"
	"strconv"
)

type Config struct {
	// DBPath is the SQLite file holding cases and service records.
	DBPath string
	// CatalogPath optionally points at a YAML file overriding the built-in
	// service catalog.
	CatalogPath string
	// LogDir enables a rotating log file in this directory.
	LogDir      string
	LogJSON     bool
	Debug       bool
	LogUseCases bool
}

// DefaultConfig stores data under ~/.caseprogress, falling back to the
// working directory when no home directory is available.
func DefaultConfig() Config {
	base := ".caseprogress"
	if home, err := os.UserHomeDir(); err == nil {
		base = filepath.Join(home, ".caseprogress")
	}
	return Config{
		DBPath: filepath.Join(base, "caseprogress.db"),
	}
}

// LoadConfig reads configuration from environment variables,
// falling back to defaults for any unset values.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("CASEPROGRESS_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("CASEPROGRESS_CATALOG"); v != "" {
		cfg.CatalogPath = v
	}
	if v := os.Getenv("CASEPROGRESS_LOG_DIR"); v != "" {
		cfg.LogDir = v
	}
	applyBoolEnv(&cfg.LogJSON, "CASEPROGRESS_LOG_JSON")
	applyBoolEnv(&cfg.Debug, "CASEPROGRESS_DEBUG")
	applyBoolEnv(&cfg.LogUseCases, "CASEPROGRESS_LOG_USE_CASES")

	return cfg
}

func applyBoolEnv(dst *bool, envName string) {
	v := os.Getenv(envName)
	if v == "" {
		return
	}
	if b, err := strconv.ParseBool(v); err == nil {
		*dst = b
	}
}
