package statesync

// Operation names used in logs and metric labels
const (
	OperationFetch = "fetch"
	OperationSave  = "save"
	OperationReset = "reset"
)

// HTTP headers
const (
	HeaderContentType = "Content-Type"
	HeaderRequestID   = "X-Request-ID"
	ContentTypeJSON   = "application/json"
)

// Log messages
const (
	LogMsgRequestSucceeded  = "State request succeeded"
	LogMsgRequestFailed     = "State request failed"
	LogMsgUnexpectedStatus  = "State request returned unexpected status"
	LogMsgUnusableResponse  = "State response could not be used"
	LogMsgPublishFailed     = "Failed to publish sync outcome"
	LogMsgDroppedAfterClose = "Dropping outcome of request completed after close"
	LogMsgIgnoredAfterClose = "Ignoring request on closed client"
	LogMsgClientClosed      = "State sync client closed"
)
