package store

// Driver names, as reported in metrics
const (
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Operation names, as reported in metrics
const (
	OperationLoad = "load"
	OperationSave = "save"
)

// Store constants
const (
	// FileExtension is appended to the profile name by FileStore
	FileExtension = ".json"

	// DefaultMinConnections is the minimum number of pooled Postgres connections
	DefaultMinConnections = 2
	// DefaultMaxConnections caps the Postgres pool
	DefaultMaxConnections = 10

	// CacheSchemaVersion is bumped when the cached entry layout changes
	CacheSchemaVersion = "1.0"

	migrationsDir = "migrations"
)

// Error Messages
const (
	ErrMsgFailedToOpen            = "failed to open state store"
	ErrMsgFailedToMigrate         = "failed to migrate state store"
	ErrMsgFailedToParseConnString = "failed to parse connection string"
	ErrMsgFailedToCreatePool      = "failed to create connection pool"
	ErrMsgFailedToPingDatabase    = "failed to ping database"
	ErrMsgFailedToLoad            = "failed to load state"
	ErrMsgFailedToSave            = "failed to save state"
	ErrMsgUnknownDriver           = "unknown store driver"
)

// Log Messages
const (
	LogMsgStoreOpened     = "State store opened"
	LogMsgMigrationsRun   = "State store migrations applied"
	LogMsgConnectedToDB   = "Successfully connected to the database"
	LogMsgCacheInvalidate = "Invalidating cached state with stale schema version"
)
