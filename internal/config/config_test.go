package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoad tests configuration loading from environment
func TestLoad(t *testing.T) {
	t.Run("loads config with defaults when no env vars set", func(t *testing.T) {
		clearEnvVars(t)

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, 8080, cfg.Port, "Should use default port")
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, "text", cfg.LogFormat)
		assert.Equal(t, "dev", cfg.Environment)
		assert.Equal(t, int64(42), cfg.DefaultSeed)
		assert.Equal(t, 156, cfg.DefaultWeeks)
		assert.Equal(t, 50, cfg.DefaultParticipants)
		assert.Equal(t, ConfigPathProjections, cfg.ProjectionsDir)
		assert.Equal(t, 128, cfg.ReportCacheSize)
		assert.Equal(t, 30*time.Minute, cfg.ReportCacheTTL)
		assert.Equal(t, ":8080", cfg.Addr())
		assert.Empty(t, cfg.APIKey)
		assert.Nil(t, cfg.TrustedProxies)
		assert.Equal(t, DefaultRequestTimeout, cfg.RequestTimeout)
		assert.Equal(t, DefaultRateLimit, cfg.RateLimit)
		assert.Equal(t, DefaultCatalogReload, cfg.CatalogReload)
	})

	t.Run("loads config from environment variables", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("PORT", "3000")
		t.Setenv("LOG_LEVEL", "DEBUG")
		t.Setenv("LOG_FORMAT", "json")
		t.Setenv("ENVIRONMENT", "prod")
		t.Setenv("SIM_DEFAULT_SEED", "7")
		t.Setenv("SIM_DEFAULT_WEEKS", "52")
		t.Setenv("SIM_DEFAULT_PARTICIPANTS", "100")
		t.Setenv("PROJECTIONS_DIR", "/srv/projections")
		t.Setenv("REPORT_CACHE_SIZE", "16")
		t.Setenv("REPORT_CACHE_TTL", "1h")
		t.Setenv("API_KEY", "secret")
		t.Setenv("TRUSTED_PROXIES", "10.0.0.1, ,10.0.0.2")
		t.Setenv("REQUEST_TIMEOUT", "30s")
		t.Setenv("RATE_LIMIT", "10")
		t.Setenv("CATALOG_RELOAD_INTERVAL", "0s")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, 3000, cfg.Port)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, "json", cfg.LogFormat)
		assert.Equal(t, "prod", cfg.Environment)
		assert.Equal(t, int64(7), cfg.DefaultSeed)
		assert.Equal(t, 52, cfg.DefaultWeeks)
		assert.Equal(t, 100, cfg.DefaultParticipants)
		assert.Equal(t, "/srv/projections", cfg.ProjectionsDir)
		assert.Equal(t, 16, cfg.ReportCacheSize)
		assert.Equal(t, time.Hour, cfg.ReportCacheTTL)
		assert.Equal(t, "secret", cfg.APIKey)
		assert.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, cfg.TrustedProxies)
		assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
		assert.Equal(t, 10, cfg.RateLimit)
		assert.Zero(t, cfg.CatalogReload)
	})

	t.Run("returns error for invalid PORT", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("PORT", "not-a-number")

		cfg, err := Load()

		assert.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "invalid PORT")
	})

	t.Run("handles PORT edge cases", func(t *testing.T) {
		testCases := []struct {
			name        string
			portValue   string
			shouldError bool
		}{
			{"zero port", "0", false},
			{"max valid port", "65535", false},
			{"above max port", "65536", true},
			{"negative port", "-1", true},
			{"float port", "8080.5", true},
			{"empty string", "", true},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				clearEnvVars(t)
				t.Setenv("PORT", tc.portValue)

				_, err := Load()

				if tc.shouldError {
					assert.Error(t, err)
				} else {
					assert.NoError(t, err)
				}
			})
		}
	})

	t.Run("rejects non-positive simulation defaults", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("SIM_DEFAULT_WEEKS", "0")
		t.Setenv("REPORT_CACHE_SIZE", "-5")

		_, err := Load()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "SIM_DEFAULT_WEEKS")
		assert.Contains(t, err.Error(), "REPORT_CACHE_SIZE")
	})

	t.Run("rejects negative reload interval", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("CATALOG_RELOAD_INTERVAL", "-1m")

		_, err := Load()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "CATALOG_RELOAD_INTERVAL")
	})

	t.Run("falls back to defaults for unparsable values", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("SIM_DEFAULT_SEED", "lucky")
		t.Setenv("REPORT_CACHE_TTL", "forever")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, int64(DefaultSeed), cfg.DefaultSeed)
		assert.Equal(t, DefaultReportCacheTTL, cfg.ReportCacheTTL)
	})
}

// clearEnvVars unsets every variable Load reads, restoring them after the test
func clearEnvVars(t *testing.T) {
	t.Helper()

	envVars := []string{
		EnvPort, EnvLogLevel, EnvLogFormat, EnvEnvironment, EnvSchemaVersion,
		EnvDefaultSeed, EnvDefaultWeeks, EnvDefaultParticipants,
		EnvProjectionsDir, EnvReportCacheSize, EnvReportCacheTTL,
		EnvAPIKey, EnvTrustedProxies, EnvRequestTimeout, EnvRateLimit,
		EnvCatalogReload,
	}

	for _, key := range envVars {
		if value, ok := os.LookupEnv(key); ok {
			t.Cleanup(func() { os.Setenv(key, value) })
		}
		os.Unsetenv(key)
	}
}
