package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const envPrefix = "JOBSCRAPE_"

// LoadEnvFile loads a .env file into the process environment. A missing file
// is not an error; variables already set win.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides cfg from JOBSCRAPE_* variables.
func ApplyEnv(cfg *Config) error {
	if v := getEnv("USER_AGENT"); v != "" {
		cfg.App.UserAgent = v
	}
	if v := getEnv("OUTPUT"); v != "" {
		cfg.App.Output = v
	}
	if v := getEnv("FORMAT"); v != "" {
		cfg.App.Format = v
	}
	if err := envDuration("TIMEOUT", &cfg.App.Timeout); err != nil {
		return err
	}
	if err := envDuration("LISTING_DELAY", &cfg.Polite.ListingDelay); err != nil {
		return err
	}
	if err := envDuration("DETAIL_DELAY", &cfg.Polite.DetailDelay); err != nil {
		return err
	}
	if err := envInt("CONCURRENCY", &cfg.App.Concurrency); err != nil {
		return err
	}
	if err := envInt("MAX_ATTEMPTS", &cfg.App.MaxAttempts); err != nil {
		return err
	}
	if v := getEnv("DETAIL"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sDETAIL: %w", envPrefix, err)
		}
		cfg.Detail.Enabled = b
	}
	return nil
}

func getEnv(key string) string {
	return os.Getenv(envPrefix + key)
}

func envDuration(key string, dst *time.Duration) error {
	v := getEnv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s%s: %w", envPrefix, key, err)
	}
	*dst = d
	return nil
}

func envInt(key string, dst *int) error {
	v := getEnv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s%s: %w", envPrefix, key, err)
	}
	*dst = n
	return nil
}
