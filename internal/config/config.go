package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// defaultDatasetURL is the OWID compiled dataset. A local file set via
// DATASET_PATH takes precedence so the analysis can run offline.
const defaultDatasetURL = "https://raw.githubusercontent.com/owid/covid-19-data/master/public/data/owid-covid-data.csv"

// defaultCountries is the comparison set the charts focus on. COUNTRIES
// overrides it; an explicit empty value keeps every country.
var defaultCountries = []string{
	"United States", "India", "Brazil", "United Kingdom", "Germany", "Japan", "Kenya",
}

// Config holds all run settings, populated from environment variables.
// Every field has a default, so the binary runs with no environment at all.
type Config struct {
	DatasetURL   string
	DatasetPath  string // non-empty selects the local-file source
	OutputDir    string
	FetchTimeout time.Duration
	Countries    []string
	TopN         int
	LogLevel     string
	LogFormat    string
}

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() (*Config, error) {
	fetchTimeout, err := parseFetchTimeout()
	if err != nil {
		return nil, err
	}

	topN, err := parseTopN()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		DatasetURL:   envOrDefault("DATASET_URL", defaultDatasetURL),
		DatasetPath:  os.Getenv("DATASET_PATH"),
		OutputDir:    envOrDefault("OUTPUT_DIR", "output"),
		FetchTimeout: fetchTimeout,
		Countries:    parseCountries(),
		TopN:         topN,
		LogLevel:     envOrDefault("LOG_LEVEL", "info"),
		LogFormat:    envOrDefault("LOG_FORMAT", "json"),
	}

	if cfg.DatasetURL == "" && cfg.DatasetPath == "" {
		return nil, errors.New("DATASET_URL or DATASET_PATH is required")
	}
	if cfg.OutputDir == "" {
		return nil, errors.New("OUTPUT_DIR must not be empty")
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseFetchTimeout() (time.Duration, error) {
	s := envOrDefault("FETCH_TIMEOUT", "60s")
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid FETCH_TIMEOUT %q", s)
	}
	return d, nil
}

func parseTopN() (int, error) {
	s := envOrDefault("TOP_N", "3")
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid TOP_N %q", s)
	}
	return n, nil
}

// parseCountries splits the COUNTRIES list on commas. Unset falls back to
// the default comparison set; an explicitly empty value disables the
// filter so every country is analyzed.
func parseCountries() []string {
	v, set := os.LookupEnv("COUNTRIES")
	if !set {
		return defaultCountries
	}
	var countries []string
	for _, c := range strings.Split(v, ",") {
		if c = strings.TrimSpace(c); c != "" {
			countries = append(countries, c)
		}
	}
	return countries
}
