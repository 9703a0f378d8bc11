package metrics

import (
	"context"

	"github.com/mmgblabel-png/bigharvestfarming/internal/event"
	"github.com/mmgblabel-png/bigharvestfarming/internal/logger"
)

// EventMetricsCollector subscribes to sync outcome events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to every outcome channel
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	for _, eventType := range event.OutcomeTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}
	return nil
}

// HandleEvent counts the published outcome
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	EventsPublished.WithLabelValues(string(evt.Type)).Inc()
	logger.FromContext(ctx).Debug(LogMsgMetricsRecorded, "type", evt.Type, logger.AttrKeyProfile, evt.Profile)
	return nil
}
