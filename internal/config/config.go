package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string
	Environment string

	// Defaults applied to simulation requests that leave them unset
	DefaultSeed         int64
	DefaultWeeks        int
	DefaultParticipants int

	ProjectionsDir  string
	ReportCacheSize int
	ReportCacheTTL  time.Duration

	// Zero disables periodic catalog reloads
	CatalogReload time.Duration

	// An empty APIKey disables authentication
	APIKey         string
	TrustedProxies []string
	RequestTimeout time.Duration
	RateLimit      int
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:            strings.ToLower(getEnv(EnvLogLevel, DefaultLogLevel)),
		LogFormat:           strings.ToLower(getEnv(EnvLogFormat, DefaultLogFormat)),
		Environment:         getEnv(EnvEnvironment, DefaultEnvironment),
		DefaultSeed:         getEnvAsInt64(EnvDefaultSeed, DefaultSeed),
		DefaultWeeks:        getEnvAsInt(EnvDefaultWeeks, DefaultWeeks),
		DefaultParticipants: getEnvAsInt(EnvDefaultParticipants, DefaultParticipants),
		ProjectionsDir:      getEnv(EnvProjectionsDir, ConfigPathProjections),
		ReportCacheSize:     getEnvAsInt(EnvReportCacheSize, DefaultReportCacheSize),
		ReportCacheTTL:      getEnvAsDuration(EnvReportCacheTTL, DefaultReportCacheTTL),
		APIKey:              getEnv(EnvAPIKey, ""),
		TrustedProxies:      getEnvAsList(EnvTrustedProxies),
		RequestTimeout:      getEnvAsDuration(EnvRequestTimeout, DefaultRequestTimeout),
		RateLimit:           getEnvAsInt(EnvRateLimit, DefaultRateLimit),
		CatalogReload:       getEnvAsDuration(EnvCatalogReload, DefaultCatalogReload),
	}

	port, err := strconv.Atoi(getEnv(EnvPort, DefaultPort))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that would make the service unusable
func (c *Config) Validate() error {
	var problems []string
	if c.Port < 0 || c.Port > 65535 {
		problems = append(problems, fmt.Sprintf("PORT %d out of range", c.Port))
	}
	if c.DefaultWeeks <= 0 {
		problems = append(problems, fmt.Sprintf("%s must be positive", EnvDefaultWeeks))
	}
	if c.DefaultParticipants <= 0 {
		problems = append(problems, fmt.Sprintf("%s must be positive", EnvDefaultParticipants))
	}
	if c.ReportCacheSize <= 0 {
		problems = append(problems, fmt.Sprintf("%s must be positive", EnvReportCacheSize))
	}
	if c.RequestTimeout <= 0 {
		problems = append(problems, fmt.Sprintf("%s must be positive", EnvRequestTimeout))
	}
	if c.CatalogReload < 0 {
		problems = append(problems, fmt.Sprintf("%s must not be negative", EnvCatalogReload))
	}
	if c.RateLimit <= 0 {
		problems = append(problems, fmt.Sprintf("%s must be positive", EnvRateLimit))
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, ", "))
	}
	return nil
}

// Addr returns the listen address for the HTTP server
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt parses an integer variable, falling back to the default when unset or invalid
func getEnvAsInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	value, err := strconv.ParseInt(os.Getenv(key), 10, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsDuration parses a Go duration variable, falling back to the default when unset or invalid
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsList splits a comma-separated variable, dropping blank entries
func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
