package metrics

// ============================================================================
// Metric Names
// ============================================================================

// Namespace prefixes every metric this process exports
const Namespace = "bigharvest"

// Subsystems
const (
	SubsystemHTTP      = "http"
	SubsystemEvents    = "events"
	SubsystemStateSync = "statesync"
	SubsystemStore     = "store"
)

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "requests_total"
	MetricNameHTTPRequestDuration  = "request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "requests_in_flight"
	MetricNameHTTPRateLimited      = "rate_limited_total"
)

// Event metric names
const (
	MetricNameEventsPublished    = "published_total"
	MetricNameEventHandlerErrors = "handler_errors_total"
)

// Sync client metric names
const (
	MetricNameSyncRequestsTotal    = "requests_total"
	MetricNameSyncRequestDuration  = "request_duration_seconds"
	MetricNameSyncRequestsInFlight = "requests_in_flight"
)

// Store metric names
const (
	MetricNameStoreOperationsTotal = "operations_total"
	MetricNameStoreCacheHits       = "cache_hits_total"
	MetricNameStoreCacheMisses     = "cache_misses_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
	HelpTextHTTPRateLimited      = "Total number of HTTP requests rejected by the rate limiter"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Sync client metric help text
const (
	HelpTextSyncRequestsTotal    = "Total number of state sync requests by operation and outcome"
	HelpTextSyncRequestDuration  = "State sync request latency in seconds"
	HelpTextSyncRequestsInFlight = "Current number of state sync requests awaiting completion"
)

// Store metric help text
const (
	HelpTextStoreOperationsTotal = "Total number of state store operations"
	HelpTextStoreCacheHits       = "Total number of state cache hits"
	HelpTextStoreCacheMisses     = "Total number of state cache misses"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod    = "method"
	LabelPath      = "path"
	LabelStatus    = "status"
	LabelType      = "type"
	LabelOperation = "operation"
	LabelOutcome   = "outcome"
	LabelDriver    = "driver"
	LabelResult    = "result"
)

// PathUnmatched labels requests no route matched, keeping path cardinality
// bounded
const PathUnmatched = "unmatched"

// Label values
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"

	ResultSuccess  = "success"
	ResultNotFound = "not_found"
	ResultFailure  = "failure"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s.
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgMetricsRecorded = "Metrics recorded for event"
)
