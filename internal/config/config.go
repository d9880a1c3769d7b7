package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"uqgo/domain/core"
	"uqgo/domain/gsa"
)

// Config holds run settings for the uqrun entrypoint, sourced from the
// environment on top of the engine defaults.
type Config struct {
	GSA      gsa.Options
	LogLevel string
}

// Load reads configuration from environment variables, honoring a .env file
// when present, and validates the result.
func Load() (*Config, error) {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	cfg := &Config{
		GSA:      gsa.DefaultOptions(),
		LogLevel: getEnv("LOG_LEVEL", "INFO"),
	}

	var err error
	if cfg.GSA.RunSobol, err = getBool("UQ_RUN_SOBOL", cfg.GSA.RunSobol); err != nil {
		return nil, err
	}
	if cfg.GSA.RunMorris, err = getBool("UQ_RUN_MORRIS", cfg.GSA.RunMorris); err != nil {
		return nil, err
	}
	if cfg.GSA.NSampSobol, err = getInt("UQ_N_SAMP_SOBOL", cfg.GSA.NSampSobol); err != nil {
		return nil, err
	}
	if cfg.GSA.NSampMorris, err = getInt("UQ_N_SAMP_MORRIS", cfg.GSA.NSampMorris); err != nil {
		return nil, err
	}
	if cfg.GSA.LMorris, err = getInt("UQ_L_MORRIS", cfg.GSA.LMorris); err != nil {
		return nil, err
	}
	if cfg.GSA.Workers, err = getInt("UQ_WORKERS", cfg.GSA.Workers); err != nil {
		return nil, err
	}
	seed, err := getInt("UQ_SEED", 0)
	if err != nil {
		return nil, err
	}
	if seed < 0 {
		return nil, core.NewConfigurationError("UQ_SEED", "must be non-negative")
	}
	cfg.GSA.Seed = uint64(seed)

	if err := cfg.GSA.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return false, core.NewConfigurationError(key, fmt.Sprintf("invalid boolean %q", v))
	}
	return parsed, nil
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return 0, core.NewConfigurationError(key, fmt.Sprintf("invalid integer %q", v))
	}
	return parsed, nil
}
