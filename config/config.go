package config

import (
	"catalog-scraper/utils"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	BaseURL        string
	Backends       []string
	Headless       bool
	ReadyTimeout   time.Duration
	RequestTimeout time.Duration
	MinDelay       time.Duration
	MaxDelay       time.Duration
	MaxRetries     int
	MaxPages       int
	OutputDir      string
	DatabaseURL    string
	TopN           int
	HistogramBins  int
}

func DefaultConfig() *Config {
	return &Config{
		BaseURL:        "https://www.jumia.com.gh",
		Backends:       []string{"chromedp", "rod"},
		Headless:       true,
		ReadyTimeout:   10 * time.Second,
		RequestTimeout: 60 * time.Second,
		MinDelay:       2 * time.Second,
		MaxDelay:       5 * time.Second,
		MaxRetries:     3,
		MaxPages:       0,
		OutputDir:      ".",
		DatabaseURL:    "",
		TopN:           10,
		HistogramBins:  20,
	}
}

// Load returns DefaultConfig overridden by environment variables.
// Explicit env files must exist; the default .env is read only when present.
func Load(envPath ...string) (*Config, error) {
	if len(envPath) > 0 {
		if err := godotenv.Load(envPath...); err != nil {
			return nil, fmt.Errorf("could not load .env file (path: %v): %w", envPath, err)
		}
	} else if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("could not load .env file: %w", err)
	}

	cfg := DefaultConfig()
	cfg.BaseURL = strings.TrimRight(getEnvAsString("SCRAPER_BASE_URL", cfg.BaseURL), "/")
	cfg.Backends = getEnvAsList("SCRAPER_BACKENDS", cfg.Backends)
	cfg.Headless = getEnvAsBool("SCRAPER_HEADLESS", cfg.Headless)
	cfg.ReadyTimeout = getEnvAsDuration("SCRAPER_READY_TIMEOUT", cfg.ReadyTimeout)
	cfg.RequestTimeout = getEnvAsDuration("SCRAPER_REQUEST_TIMEOUT", cfg.RequestTimeout)
	cfg.MinDelay = getEnvAsDuration("SCRAPER_MIN_DELAY", cfg.MinDelay)
	cfg.MaxDelay = getEnvAsDuration("SCRAPER_MAX_DELAY", cfg.MaxDelay)
	cfg.MaxRetries = getEnvAsInt("SCRAPER_MAX_RETRIES", cfg.MaxRetries)
	cfg.MaxPages = getEnvAsInt("SCRAPER_MAX_PAGES", cfg.MaxPages)
	cfg.OutputDir = getEnvAsString("SCRAPER_OUTPUT_DIR", cfg.OutputDir)
	cfg.DatabaseURL = getEnvAsString("DATABASE_URL", cfg.DatabaseURL)
	cfg.TopN = getEnvAsInt("SCRAPER_TOP_N", cfg.TopN)
	cfg.HistogramBins = getEnvAsInt("SCRAPER_HISTOGRAM_BINS", cfg.HistogramBins)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base URL is required")
	}
	if len(c.Backends) == 0 {
		return fmt.Errorf("at least one rendering backend is required")
	}
	if c.MinDelay < 0 || c.MaxDelay < c.MinDelay {
		return fmt.Errorf("invalid delay window %v-%v", c.MinDelay, c.MaxDelay)
	}
	if c.ReadyTimeout <= 0 {
		return fmt.Errorf("ready timeout must be positive, got %v", c.ReadyTimeout)
	}
	if c.MaxRetries < 1 {
		c.MaxRetries = 1
	}
	return nil
}

func getEnvAsString(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		utils.Warn("%s=%q is not an int: %v, using %d", key, valueStr, err, defaultValue)
		return defaultValue
	}
	return valueInt
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueBool, err := strconv.ParseBool(valueStr)
	if err != nil {
		utils.Warn("%s=%q is not a bool: %v, using %t", key, valueStr, err, defaultValue)
		return defaultValue
	}
	return valueBool
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	d, err := time.ParseDuration(valueStr)
	if err != nil {
		utils.Warn("%s=%q is not a duration: %v, using %v", key, valueStr, err, defaultValue)
		return defaultValue
	}
	return d
}

// getEnvAsList reads a comma separated list, dropping empty entries.
func getEnvAsList(key string, defaultValue []string) []string {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if p := strings.ToLower(strings.TrimSpace(part)); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
