package bootstrap

import "time"

// =============================================================================
// Logger Configuration
// =============================================================================

// Log messages for logger initialization
const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStarting            = "Starting Big Harvest state sync"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgConfigWarning       = "Configuration warning"
)

// =============================================================================
// Event System Configuration
// =============================================================================

const (
	LogMsgEventSystemInitialized     = "Event system initialized"
	LogMsgMetricsCollectorRegistered = "Metrics collector registered"
	ErrMsgFailedRegisterMetrics      = "failed to register metrics collector"
)

// Log messages for outcome logging
const (
	LogMsgStateFetched = "State fetched"
	LogMsgFetchFailed  = "Fetch failed"
	LogMsgStateSaved   = "State saved"
	LogMsgSaveFailed   = "Save failed"
	LogMsgStateReset   = "State reset"
	LogMsgResetFailed  = "Reset failed"
)

// =============================================================================
// Store Configuration
// =============================================================================

const (
	ErrMsgFailedOpenStore = "failed to open state store"
)

// =============================================================================
// Shutdown
// =============================================================================

const (
	// ShutdownTimeout bounds how long in-flight requests may take to drain
	ShutdownTimeout = 10 * time.Second

	LogMsgShuttingDownServer   = "Shutting down server..."
	LogMsgDrainingSyncClient   = "Waiting for in-flight sync requests..."
	LogMsgSyncDrainTimedOut    = "Sync requests still in flight at shutdown"
	LogMsgServerStopped        = "Server stopped"
	LogMsgServerForcedShutdown = "Server forced to shutdown"
)
