package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// ExpectedEnvSchemaVersion is the schema version that the application expects
const ExpectedEnvSchemaVersion = "1.0"

// IntegerEnvVars must parse as integers when set
var IntegerEnvVars = []string{
	EnvPort,
	EnvDefaultSeed,
	EnvDefaultWeeks,
	EnvDefaultParticipants,
	EnvReportCacheSize,
	EnvRateLimit,
}

// DurationEnvVars must parse as Go durations when set
var DurationEnvVars = []string{
	EnvReportCacheTTL,
	EnvRequestTimeout,
	EnvCatalogReload,
}

// ValidateEnv checks the schema version, if declared, and that every
// numeric variable that is set parses. Load falls back to defaults on bad
// values, so this is the place that reports them.
func ValidateEnv() error {
	if version, ok := os.LookupEnv(EnvSchemaVersion); ok && version != ExpectedEnvSchemaVersion {
		return fmt.Errorf("ENV_SCHEMA_VERSION mismatch: expected %s, got %s - your .env file may be outdated", ExpectedEnvSchemaVersion, version)
	}

	var invalid []string
	for _, key := range IntegerEnvVars {
		if value, ok := os.LookupEnv(key); ok {
			if _, err := strconv.ParseInt(value, 10, 64); err != nil {
				invalid = append(invalid, key)
			}
		}
	}
	for _, key := range DurationEnvVars {
		if value, ok := os.LookupEnv(key); ok {
			if _, err := time.ParseDuration(value); err != nil {
				invalid = append(invalid, key)
			}
		}
	}

	if len(invalid) > 0 {
		return fmt.Errorf("invalid environment variables: %s", strings.Join(invalid, ", "))
	}
	return nil
}

// ValidateEnvWithWarnings runs ValidateEnv and returns warnings for settings
// that work but are unsuitable for production
func ValidateEnvWithWarnings() ([]string, error) {
	if err := ValidateEnv(); err != nil {
		return nil, err
	}

	var warnings []string
	if os.Getenv(EnvEnvironment) != EnvironmentProduction {
		return warnings, nil
	}
	if !strings.EqualFold(os.Getenv(EnvLogFormat), "json") {
		warnings = append(warnings, "LOG_FORMAT should be json in production")
	}
	if os.Getenv(EnvAPIKey) == "" {
		warnings = append(warnings, "API_KEY is empty - the API is unauthenticated")
	}
	if strings.EqualFold(os.Getenv(EnvLogLevel), "debug") {
		warnings = append(warnings, "LOG_LEVEL debug logs every simulated week - use info or warn in production")
	}
	return warnings, nil
}
