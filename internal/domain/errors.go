package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Codec errors
	ErrMsgParse = "failed to parse state json"

	// Transport errors
	ErrMsgTransport        = "transport failure"
	ErrMsgUnexpectedStatus = "unexpected status"

	// Profile errors
	ErrMsgInvalidProfile  = "invalid profile"
	ErrMsgProfileNotFound = "profile not found"

	// Client lifecycle
	ErrMsgClientClosed = "client closed"

	// Configuration
	ErrMsgInvalidConfig = "invalid configuration"
)

// Outcome messages delivered on the error channels.
// The backend contract fixes these strings.
const (
	OutcomeNetworkError  = "Network error"
	OutcomeHTTPStatusFmt = "HTTP %d"
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrParse            = errors.New(ErrMsgParse)
	ErrTransport        = errors.New(ErrMsgTransport)
	ErrUnexpectedStatus = errors.New(ErrMsgUnexpectedStatus)
	ErrInvalidProfile   = errors.New(ErrMsgInvalidProfile)
	ErrProfileNotFound  = errors.New(ErrMsgProfileNotFound)
	ErrClientClosed     = errors.New(ErrMsgClientClosed)
	ErrInvalidConfig    = errors.New(ErrMsgInvalidConfig)
)
