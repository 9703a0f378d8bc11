package event

import (
	"context"
	"fmt"
	"sync"

	"github.com/mmgblabel-png/bigharvestfarming/internal/logger"
)

// Type represents the type of an event
type Type string

// Event represents a generic event in the system
type Event struct {
	Version string      `json:"version"` // Event schema version (e.g., "1.0")
	Type    Type        `json:"type"`
	Payload interface{} `json:"payload"`
	Profile string      `json:"profile,omitempty"`
	Source  string      `json:"source,omitempty"` // Id of the publishing client
}

// Sync outcome channels. Exactly one of the ok/error pair is published per
// request.
const (
	FetchOk    Type = "fetch.ok"
	FetchError Type = "fetch.error"
	SaveOk     Type = "save.ok"
	SaveError  Type = "save.error"
	ResetOk    Type = "reset.ok"
	ResetError Type = "reset.error"
)

// OutcomeTypes lists every sync outcome channel
var OutcomeTypes = []Type{FetchOk, FetchError, SaveOk, SaveError, ResetOk, ResetError}

// Typed event payloads for type safety

// StateJSONPayloadV1 carries a raw state document returned by the backend
type StateJSONPayloadV1 struct {
	JSON string `json:"json"`
}

// ErrorPayloadV1 carries the outcome message of a failed request
type ErrorPayloadV1 struct {
	Message string `json:"message"`
}

// SavedPayloadV1 is the (empty) payload of save.ok
type SavedPayloadV1 struct{}

// NewFetchOkEvent creates a fetch.ok event
func NewFetchOkEvent(profile, json string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    FetchOk,
		Payload: StateJSONPayloadV1{JSON: json},
		Profile: profile,
	}
}

// NewSaveOkEvent creates a save.ok event
func NewSaveOkEvent(profile string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    SaveOk,
		Payload: SavedPayloadV1{},
		Profile: profile,
	}
}

// NewResetOkEvent creates a reset.ok event
func NewResetOkEvent(profile, json string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    ResetOk,
		Payload: StateJSONPayloadV1{JSON: json},
		Profile: profile,
	}
}

// NewErrorEvent creates an error outcome of the given type
func NewErrorEvent(t Type, profile, message string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    t,
		Payload: ErrorPayloadV1{Message: message},
		Profile: profile,
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers.
// Handlers run synchronously on the caller's goroutine. A panicking handler
// is recovered and reported as an error so the remaining handlers still run.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := append([]Handler(nil), b.handlers[event.Type]...)
	b.mu.RUnlock()

	if len(handlers) == 0 {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := safeCall(ctx, handler, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

func safeCall(ctx context.Context, handler Handler, event Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.FromContext(ctx).Error(LogMsgHandlerPanicked, "type", event.Type, "panic", r)
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()
	return handler(ctx, event)
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
