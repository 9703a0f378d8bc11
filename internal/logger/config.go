package logger

import (
	"log/slog"
	"strings"
)

// Config describes the process-wide logger
type Config struct {
	Level       string
	Format      string
	ServiceName string
	Version     string
	Environment string
	AddSource   bool
}

// NewConfig creates a config from explicit values
func NewConfig(level, format, serviceName, version, environment string, addSource bool) Config {
	return Config{
		Level:       level,
		Format:      format,
		ServiceName: serviceName,
		Version:     version,
		Environment: environment,
		AddSource:   addSource,
	}
}

// ForEnvironment returns the preset for env. Production logs JSON at info;
// dev logs text at debug with source locations; anything else gets the
// defaults.
func ForEnvironment(env string) Config {
	cfg := DefaultConfig()
	cfg.Environment = env

	switch env {
	case EnvironmentProduction:
		cfg.Format = LogFormatJSON
	case EnvironmentDev:
		cfg.Level = LogLevelDebug
		cfg.AddSource = true
	}
	return cfg
}

// DefaultConfig is info-level text output
func DefaultConfig() Config {
	return Config{
		Level:       LogLevelInfo,
		Format:      LogFormatText,
		ServiceName: DefaultServiceName,
		Version:     DefaultVersion,
		Environment: EnvironmentDev,
	}
}

var levels = map[string]slog.Level{
	LogLevelDebug:   slog.LevelDebug,
	LogLevelInfo:    slog.LevelInfo,
	LogLevelWarn:    slog.LevelWarn,
	LogLevelWarning: slog.LevelWarn,
	LogLevelError:   slog.LevelError,
}

// LogLevel maps the configured level name, case-insensitively; unknown names
// fall back to info
func (c Config) LogLevel() slog.Level {
	if level, ok := levels[strings.ToLower(c.Level)]; ok {
		return level
	}
	return slog.LevelInfo
}

// IsJSON reports whether records are written as JSON
func (c Config) IsJSON() bool {
	return strings.EqualFold(c.Format, LogFormatJSON)
}

// BaseAttributes are attached to every record
func (c Config) BaseAttributes() []slog.Attr {
	return []slog.Attr{
		slog.String(AttrKeyService, c.ServiceName),
		slog.String(AttrKeyVersion, c.Version),
		slog.String(AttrKeyEnvironment, c.Environment),
	}
}
