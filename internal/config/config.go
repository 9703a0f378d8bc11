package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/mmgblabel-png/bigharvestfarming/internal/domain"
	"github.com/mmgblabel-png/bigharvestfarming/internal/statesync"
)

// DefaultCacheTTL is how long a cached state document stays fresh
const DefaultCacheTTL = 5 * time.Minute

// Config holds the application configuration shared by the sync host and
// the reference backend
type Config struct {
	// Sync client
	BaseURL     string        `validate:"required,url"`
	Profile     string        `validate:"required,profile"`
	HTTPTimeout time.Duration `validate:"gt=0"`
	AutoFetch   bool

	// Logging
	LogLevel    string `validate:"oneof=debug info warn warning error"`
	LogFormat   string `validate:"oneof=json text"`
	Environment string `validate:"required"`

	// Backend
	Port        int           `validate:"min=1,max=65535"`
	StoreDriver string        `validate:"oneof=file sqlite postgres"`
	SavesDir    string        `validate:"required_if=StoreDriver file"`
	SQLitePath  string        `validate:"required_if=StoreDriver sqlite"`
	DatabaseURL string        `validate:"required_if=StoreDriver postgres"`
	CacheSize   int           `validate:"min=0"`
	CacheTTL    time.Duration `validate:"min=0"`

	// HTTP hardening
	TrustedProxies []string `validate:"dive,ip"`
	RateLimit      int      `validate:"min=0"`
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		BaseURL:     getEnv(EnvStateBaseURL, domain.DefaultBaseURL),
		Profile:     getEnv(EnvStateProfile, domain.DefaultProfile),
		AutoFetch:   getEnvAsBool(EnvStateAutoFetch, true),
		HTTPTimeout: getEnvAsDuration(EnvStateHTTPTimeout, statesync.DefaultTimeout),
		LogLevel:    strings.ToLower(getEnv(EnvLogLevel, DefaultLogLevel)),
		LogFormat:   strings.ToLower(getEnv(EnvLogFormat, DefaultLogFormat)),
		Environment: getEnv(EnvEnvironment, DefaultEnvironment),
		Port:        getEnvAsInt(EnvPort, DefaultPort),
		StoreDriver: strings.ToLower(getEnv(EnvStoreDriver, DefaultStoreDriver)),
		SavesDir:    getEnv(EnvSavesDir, DefaultSavesDir),
		SQLitePath:  getEnv(EnvSQLitePath, DefaultSQLitePath),
		DatabaseURL: getEnv(EnvDatabaseURL, ""),
		CacheSize:   getEnvAsInt(EnvCacheSize, DefaultCacheSize),
		CacheTTL:    getEnvAsDuration(EnvCacheTTL, DefaultCacheTTL),

		TrustedProxies: getEnvAsList(EnvTrustedProxies),
		RateLimit:      getEnvAsInt(EnvRateLimit, DefaultRateLimit),
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SyncConfig returns the client configuration
func (c *Config) SyncConfig() statesync.Config {
	return statesync.Config{
		BaseURL:         c.BaseURL,
		Profile:         c.Profile,
		AutoFetchOnInit: c.AutoFetch,
		Timeout:         c.HTTPTimeout,
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt parses an integer variable, falling back to the default when
// unset or malformed
func getEnvAsInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsList splits a comma-separated variable, dropping empty entries
func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(getEnv(key, ""), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnvAsBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}
