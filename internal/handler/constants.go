package handler

// Response status values
const (
	StatusOK          = "ok"
	StatusError       = "error"
	StatusUnavailable = "unavailable"
)

// HTTP headers
const (
	HeaderContentType = "Content-Type"
	ContentTypeJSON   = "application/json"
)

// User-facing error messages
const (
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgInvalidProfile     = "Invalid profile"
	ErrMsgInvalidState       = "Body must be a JSON object"
	ErrMsgBodyTooLarge       = "Request body too large"
	ErrMsgUnreadableBody     = "Could not read request body"
	ErrMsgStoreUnavailable   = "state store unavailable"
)

// Log messages
const (
	LogMsgEncodeFailed    = "Failed to encode JSON response"
	LogMsgWriteFailed     = "Failed to write response buffer"
	LogMsgStateLoaded     = "State loaded"
	LogMsgStateDefaulted  = "No saved state, serving minimal state"
	LogMsgStateSaved      = "State saved"
	LogMsgStateReset      = "State reset"
	LogMsgStateRejected   = "Rejected state document"
	LogMsgStoreFailed     = "State store operation failed"
	LogMsgReadinessFailed = "Readiness check failed"
)
