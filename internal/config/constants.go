package config

// Environment variable names
const (
	EnvStateBaseURL     = "STATE_BASE_URL"
	EnvStateProfile     = "STATE_PROFILE"
	EnvStateAutoFetch   = "STATE_AUTO_FETCH"
	EnvStateHTTPTimeout = "STATE_HTTP_TIMEOUT"
	EnvLogLevel         = "LOG_LEVEL"
	EnvLogFormat        = "LOG_FORMAT"
	EnvEnvironment      = "ENVIRONMENT"
	EnvPort             = "PORT"
	EnvStoreDriver      = "STORE_DRIVER"
	EnvSavesDir         = "BHF_SAVES_DIR"
	EnvSQLitePath       = "SQLITE_PATH"
	EnvDatabaseURL      = "DATABASE_URL"
	EnvCacheSize        = "CACHE_SIZE"
	EnvCacheTTL         = "CACHE_TTL"
	EnvTrustedProxies   = "TRUSTED_PROXIES"
	EnvRateLimit        = "RATE_LIMIT"
)

// Store drivers
const (
	StoreDriverFile     = "file"
	StoreDriverSQLite   = "sqlite"
	StoreDriverPostgres = "postgres"
)

// Defaults
const (
	DefaultPort        = 5000
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "text"
	DefaultEnvironment = "dev"
	DefaultStoreDriver = StoreDriverFile
	DefaultSavesDir    = "saves"
	DefaultSQLitePath  = "saves/state.db"
	DefaultCacheSize   = 128
	DefaultRateLimit   = 1000
)
