package config

import (
	"fmt"
	"log"
	"slices"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"github.com/ulule/limiter/v3"
)

// RateFallbackPolicy decides what happens when a fresh rate snapshot cannot be used.
type RateFallbackPolicy string

const (
	// RateFallbackFail surfaces the error to the caller.
	RateFallbackFail RateFallbackPolicy = "fail"
	// RateFallbackLastKnownGood keeps serving the last validated snapshot.
	RateFallbackLastKnownGood RateFallbackPolicy = "last_known_good"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL     string
	Port            string
	IsProduction    bool
	EnableDBCheck   bool
	MigrationsPath  string
	FrontendBaseURL string
	RateLimit       string // ulule/limiter format, e.g. "100-M"

	PivotCurrency       string
	SupportedCurrencies []string
	DisplayCurrencies   []string
	DefaultRates        map[string]decimal.Decimal
	RatesFile           string // optional YAML/JSON/TOML file read on every refresh
	RateFallbackPolicy  RateFallbackPolicy
	RateFetchAttempts   int
	RateFetchBackoff    time.Duration // wait before the first retry, doubled per retry
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")
	v.SetDefault("RATE_LIMIT", "100-M")
	v.SetDefault("PIVOT_CURRENCY", "EGP")
	v.SetDefault("SUPPORTED_CURRENCIES", "EGP,USD,EUR,GBP,SAR,AED")
	v.SetDefault("DISPLAY_CURRENCIES", "EGP,USD")
	v.SetDefault("DEFAULT_RATES", "")
	v.SetDefault("RATES_FILE", "")
	v.SetDefault("RATE_FALLBACK_POLICY", string(RateFallbackFail))
	v.SetDefault("RATE_FETCH_ATTEMPTS", 1)
	v.SetDefault("RATE_FETCH_BACKOFF", "500ms")
	v.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:         v.GetString("PGSQL_URL"),
		Port:                v.GetString("PORT"),
		IsProduction:        v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:       v.GetBool("ENABLE_DB_CHECK"),
		MigrationsPath:      v.GetString("MIGRATIONS_PATH"),
		FrontendBaseURL:     v.GetString("FRONTEND_BASE_URL"),
		RateLimit:           v.GetString("RATE_LIMIT"),
		PivotCurrency:       strings.ToUpper(strings.TrimSpace(v.GetString("PIVOT_CURRENCY"))),
		SupportedCurrencies: splitCodes(v.GetString("SUPPORTED_CURRENCIES")),
		DisplayCurrencies:   splitCodes(v.GetString("DISPLAY_CURRENCIES")),
		RateFallbackPolicy:  RateFallbackPolicy(strings.ToLower(v.GetString("RATE_FALLBACK_POLICY"))),
		RateFetchAttempts:   v.GetInt("RATE_FETCH_ATTEMPTS"),
		RateFetchBackoff:    v.GetDuration("RATE_FETCH_BACKOFF"),
		RatesFile:           v.GetString("RATES_FILE"),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set. Using in-memory storage.")
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	rates, err := parseRates(v.GetString("DEFAULT_RATES"))
	if err != nil {
		return nil, err
	}
	cfg.DefaultRates = rates

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the currency settings are consistent with each other.
func (c *Config) Validate() error {
	if len(c.SupportedCurrencies) == 0 {
		return fmt.Errorf("SUPPORTED_CURRENCIES must list at least one currency")
	}
	if !slices.Contains(c.SupportedCurrencies, c.PivotCurrency) {
		return fmt.Errorf("PIVOT_CURRENCY '%s' is not in SUPPORTED_CURRENCIES", c.PivotCurrency)
	}
	for _, code := range c.DisplayCurrencies {
		if !slices.Contains(c.SupportedCurrencies, code) {
			return fmt.Errorf("DISPLAY_CURRENCIES entry '%s' is not in SUPPORTED_CURRENCIES", code)
		}
	}
	for code := range c.DefaultRates {
		if !slices.Contains(c.SupportedCurrencies, code) {
			return fmt.Errorf("DEFAULT_RATES entry '%s' is not in SUPPORTED_CURRENCIES", code)
		}
	}
	switch c.RateFallbackPolicy {
	case RateFallbackFail, RateFallbackLastKnownGood:
	default:
		return fmt.Errorf("RATE_FALLBACK_POLICY must be '%s' or '%s', got '%s'", RateFallbackFail, RateFallbackLastKnownGood, c.RateFallbackPolicy)
	}
	if c.RateFetchAttempts < 1 {
		return fmt.Errorf("RATE_FETCH_ATTEMPTS must be at least 1")
	}
	if c.RateFetchBackoff < 0 {
		return fmt.Errorf("RATE_FETCH_BACKOFF must not be negative")
	}
	if _, err := limiter.NewRateFromFormatted(c.RateLimit); err != nil {
		return fmt.Errorf("invalid RATE_LIMIT '%s': %w", c.RateLimit, err)
	}
	return nil
}

func splitCodes(raw string) []string {
	var codes []string
	for _, part := range strings.Split(raw, ",") {
		code := strings.ToUpper(strings.TrimSpace(part))
		if code != "" && !slices.Contains(codes, code) {
			codes = append(codes, code)
		}
	}
	return codes
}

// parseRates reads "USD=48.5,EUR=52.1" into a code to rate map.
// Rates are kept as written; positivity is checked when the table is built.
func parseRates(raw string) (map[string]decimal.Decimal, error) {
	rates := make(map[string]decimal.Decimal)
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		code, value, ok := strings.Cut(part, "=")
		if !ok {
			return nil, fmt.Errorf("invalid DEFAULT_RATES entry '%s': expected CODE=RATE", part)
		}
		rate, err := decimal.NewFromString(strings.TrimSpace(value))
		if err != nil {
			return nil, fmt.Errorf("invalid DEFAULT_RATES rate for '%s': %w", code, err)
		}
		rates[strings.ToUpper(strings.TrimSpace(code))] = rate
	}
	return rates, nil
}
