package config

import "time"

// Environment variable names
const (
	EnvPort                = "PORT"
	EnvLogLevel            = "LOG_LEVEL"
	EnvLogFormat           = "LOG_FORMAT"
	EnvEnvironment         = "ENVIRONMENT"
	EnvSchemaVersion       = "ENV_SCHEMA_VERSION"
	EnvDefaultSeed         = "SIM_DEFAULT_SEED"
	EnvDefaultWeeks        = "SIM_DEFAULT_WEEKS"
	EnvDefaultParticipants = "SIM_DEFAULT_PARTICIPANTS"
	EnvProjectionsDir      = "PROJECTIONS_DIR"
	EnvReportCacheSize     = "REPORT_CACHE_SIZE"
	EnvReportCacheTTL      = "REPORT_CACHE_TTL"
	EnvAPIKey              = "API_KEY"
	EnvTrustedProxies      = "TRUSTED_PROXIES"
	EnvRequestTimeout      = "REQUEST_TIMEOUT"
	EnvRateLimit           = "RATE_LIMIT"
	EnvCatalogReload       = "CATALOG_RELOAD_INTERVAL"
)

// Defaults
const (
	DefaultPort            = "8080"
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "text"
	DefaultEnvironment     = "dev"
	DefaultSeed            = 42
	DefaultWeeks           = 156
	DefaultParticipants    = 50
	DefaultReportCacheSize = 128
	DefaultReportCacheTTL  = 30 * time.Minute
	DefaultRequestTimeout  = 2 * time.Minute
	DefaultRateLimit       = 300
	DefaultCatalogReload   = 5 * time.Minute
)

// Environment names
const (
	EnvironmentDev        = "dev"
	EnvironmentStaging    = "staging"
	EnvironmentProduction = "prod"
)

// ConfigPathProjections is the default projection scenario directory
const ConfigPathProjections = "configs/projections"
