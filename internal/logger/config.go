package logger

import (
	"log/slog"
	"strings"
)

// Config represents logger configuration
type Config struct {
	Level       string // "debug", "info", "warn", "error"
	Format      string // "json", "text"
	ServiceName string
	Version     string
	Environment string // "dev", "staging", "prod"
	// Component tells the HTTP service and the CLI apart in shared log sinks
	Component string
	AddSource bool
}

// ServiceConfig returns the HTTP service defaults for environment. Production
// and staging log JSON at info; anything else logs text at debug with source
// locations, which includes the per-week run lines.
func ServiceConfig(environment string) Config {
	cfg := Config{
		Level:       LogLevelInfo,
		Format:      LogFormatJSON,
		ServiceName: DefaultServiceName,
		Version:     DefaultVersion,
		Environment: environment,
		Component:   ComponentAPI,
	}
	switch environment {
	case EnvironmentProduction, EnvironmentStaging:
	default:
		cfg.Level = LogLevelDebug
		cfg.Format = LogFormatText
		cfg.AddSource = true
	}
	return cfg
}

// CLIConfig returns defaults for simctl: text at warn, so a week-by-week run
// does not bury the JSON the command prints
func CLIConfig() Config {
	return Config{
		Level:       LogLevelWarn,
		Format:      LogFormatText,
		ServiceName: DefaultServiceName,
		Version:     DefaultVersion,
		Environment: EnvironmentDev,
		Component:   ComponentCLI,
	}
}

// LogLevel converts string level to slog.Level
func (c Config) LogLevel() slog.Level {
	switch strings.ToLower(c.Level) {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelInfo:
		return slog.LevelInfo
	case LogLevelWarn, LogLevelWarning:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// IsJSON returns true if format is JSON
func (c Config) IsJSON() bool {
	return strings.ToLower(c.Format) == LogFormatJSON
}

// BaseAttributes returns common attributes to add to all logs
func (c Config) BaseAttributes() []slog.Attr {
	attrs := []slog.Attr{
		slog.String(AttrKeyService, c.ServiceName),
		slog.String(AttrKeyVersion, c.Version),
		slog.String(AttrKeyEnvironment, c.Environment),
	}
	if c.Component != "" {
		attrs = append(attrs, slog.String(AttrKeyComponent, c.Component))
	}
	return attrs
}
