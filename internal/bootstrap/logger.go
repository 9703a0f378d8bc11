package bootstrap

import (
	"io"

	"github.com/mmgblabel-png/bigharvestfarming/internal/config"
	"github.com/mmgblabel-png/bigharvestfarming/internal/logger"
)

// SetupLogger initializes the default logger from the application config and
// logs the startup banner plus any configuration warnings. Records go to w.
// Source locations are only attached in development.
func SetupLogger(cfg *config.Config, w io.Writer) {
	addSource := cfg.Environment == logger.EnvironmentDev || cfg.Environment == "development"

	logger.InitLoggerWithWriter(logger.NewConfig(
		cfg.LogLevel,
		cfg.LogFormat,
		logger.DefaultServiceName,
		logger.DefaultVersion,
		cfg.Environment,
		addSource,
	), w)

	logger.Info(LogMsgLoggingInitialized, "level", cfg.LogLevel, "format", cfg.LogFormat)
	logger.Info(LogMsgStarting, "environment", cfg.Environment)

	logger.Debug(LogMsgConfigurationLoaded,
		"base_url", cfg.BaseURL,
		logger.AttrKeyProfile, cfg.Profile,
		"store_driver", cfg.StoreDriver,
		"port", cfg.Port)

	for _, w := range config.Warnings(cfg) {
		logger.Warn(LogMsgConfigWarning, "warning", w)
	}
}
