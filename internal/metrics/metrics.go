package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func counterVec(subsystem, name, help string, labels ...string) *prometheus.CounterVec {
	return promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Subsystem: subsystem,
		Name:      name,
		Help:      help,
	}, labels)
}

func counter(subsystem, name, help string) prometheus.Counter {
	return promauto.NewCounter(prometheus.CounterOpts{
		Namespace: Namespace,
		Subsystem: subsystem,
		Name:      name,
		Help:      help,
	})
}

func gauge(subsystem, name, help string) prometheus.Gauge {
	return promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: Namespace,
		Subsystem: subsystem,
		Name:      name,
		Help:      help,
	})
}

func latency(subsystem, name, help string, labels ...string) *prometheus.HistogramVec {
	return promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Subsystem: subsystem,
		Name:      name,
		Help:      help,
		Buckets:   HTTPLatencyBuckets,
	}, labels)
}

// HTTP Metrics
var (
	HTTPRequestsTotal = counterVec(SubsystemHTTP, MetricNameHTTPRequestsTotal, HelpTextHTTPRequestsTotal,
		LabelMethod, LabelPath, LabelStatus)
	HTTPRequestDuration = latency(SubsystemHTTP, MetricNameHTTPRequestDuration, HelpTextHTTPRequestDuration,
		LabelMethod, LabelPath)
	HTTPRequestsInFlight = gauge(SubsystemHTTP, MetricNameHTTPRequestsInFlight, HelpTextHTTPRequestsInFlight)
	HTTPRateLimited      = counter(SubsystemHTTP, MetricNameHTTPRateLimited, HelpTextHTTPRateLimited)
)

// Event Metrics
var (
	EventsPublished    = counterVec(SubsystemEvents, MetricNameEventsPublished, HelpTextEventsPublished, LabelType)
	EventHandlerErrors = counterVec(SubsystemEvents, MetricNameEventHandlerErrors, HelpTextEventHandlerErrors, LabelType)
)

// Sync Client Metrics
var (
	SyncRequestsTotal = counterVec(SubsystemStateSync, MetricNameSyncRequestsTotal, HelpTextSyncRequestsTotal,
		LabelOperation, LabelOutcome)
	SyncRequestDuration = latency(SubsystemStateSync, MetricNameSyncRequestDuration, HelpTextSyncRequestDuration,
		LabelOperation)
	SyncRequestsInFlight = gauge(SubsystemStateSync, MetricNameSyncRequestsInFlight, HelpTextSyncRequestsInFlight)
)

// Store Metrics
var (
	StoreOperationsTotal = counterVec(SubsystemStore, MetricNameStoreOperationsTotal, HelpTextStoreOperationsTotal,
		LabelDriver, LabelOperation, LabelResult)
	StoreCacheHits   = counter(SubsystemStore, MetricNameStoreCacheHits, HelpTextStoreCacheHits)
	StoreCacheMisses = counter(SubsystemStore, MetricNameStoreCacheMisses, HelpTextStoreCacheMisses)
)
