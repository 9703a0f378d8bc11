package bootstrap

import (
	"fmt"

	"github.com/mmgblabel-png/bigharvestfarming/internal/event"
	"github.com/mmgblabel-png/bigharvestfarming/internal/logger"
	"github.com/mmgblabel-png/bigharvestfarming/internal/metrics"
)

// InitializeEventSystem creates the in-memory outcome bus and registers the
// metrics collector on it
func InitializeEventSystem() (event.Bus, error) {
	bus := event.NewMemoryBus()

	collector := metrics.NewEventMetricsCollector()
	if err := collector.Register(bus); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	logger.Info(LogMsgMetricsCollectorRegistered)

	logger.Info(LogMsgEventSystemInitialized)
	return bus, nil
}
