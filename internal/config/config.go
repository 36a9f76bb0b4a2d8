// Package config loads the loader's runtime configuration from environment
// variables. Values arrive via the process environment or a .env file
// loaded by the command entry point.
package config

import (
	"os"
	"strconv"

	"primed/domain/core"
)

// Config represents the complete application configuration
type Config struct {
	Data DataConfig
}

// DataConfig holds data ingestion settings
type DataConfig struct {
	// RootDir is the folder containing the raw test campaign data
	RootDir string

	// StrictMetadata makes the impedance reader fail on files missing
	// optional metadata (date, time, open-circuit voltage) instead of
	// leaving zero values
	StrictMetadata bool

	// Nominal ratings of the cells under test, used for SOH/SOE
	NominalCapacityAh float64
	NominalEnergyWh   float64
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	cfg := &Config{
		Data: DataConfig{
			RootDir:           getEnv("PRIMED_DATA_DIR", "."),
			StrictMetadata:    getEnvBool("PRIMED_STRICT_METADATA", false),
			NominalCapacityAh: 0,
			NominalEnergyWh:   0,
		},
	}

	var err error
	if cfg.Data.NominalCapacityAh, err = getEnvFloat("PRIMED_NOMINAL_CAPACITY_AH", 0); err != nil {
		return nil, err
	}
	if cfg.Data.NominalEnergyWh, err = getEnvFloat("PRIMED_NOMINAL_ENERGY_WH", 0); err != nil {
		return nil, err
	}
	if cfg.Data.NominalCapacityAh < 0 {
		return nil, core.NewConfigError("PRIMED_NOMINAL_CAPACITY_AH must not be negative")
	}
	if cfg.Data.NominalEnergyWh < 0 {
		return nil, core.NewConfigError("PRIMED_NOMINAL_ENERGY_WH must not be negative")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func getEnvFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, core.NewConfigError(key + " must be a number")
	}
	return f, nil
}
