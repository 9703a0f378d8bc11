package statesync

import (
	"context"

	"github.com/mmgblabel-png/bigharvestfarming/internal/event"
)

// Callbacks registered through the On* helpers only see outcomes published
// by this client, and stop firing once the client is closed.

// OnFetchOk registers fn for fetched state documents
func (c *Client) OnFetchOk(fn func(json string)) {
	c.subscribe(event.FetchOk, stateHandler(fn))
}

// OnFetchError registers fn for fetch failures
func (c *Client) OnFetchError(fn func(message string)) {
	c.subscribe(event.FetchError, errorHandler(fn))
}

// OnSaveOk registers fn for successful saves
func (c *Client) OnSaveOk(fn func()) {
	c.subscribe(event.SaveOk, func(_ context.Context, _ event.Event) error {
		fn()
		return nil
	})
}

// OnSaveError registers fn for save failures
func (c *Client) OnSaveError(fn func(message string)) {
	c.subscribe(event.SaveError, errorHandler(fn))
}

// OnResetOk registers fn for the state document returned by a reset
func (c *Client) OnResetOk(fn func(json string)) {
	c.subscribe(event.ResetOk, stateHandler(fn))
}

// OnResetError registers fn for reset failures
func (c *Client) OnResetError(fn func(message string)) {
	c.subscribe(event.ResetError, errorHandler(fn))
}

func (c *Client) subscribe(t event.Type, h event.Handler) {
	c.bus.Subscribe(t, func(ctx context.Context, evt event.Event) error {
		if evt.Source != c.id || c.closed.Load() {
			return nil
		}
		return h(ctx, evt)
	})
}

func stateHandler(fn func(string)) event.Handler {
	return func(_ context.Context, evt event.Event) error {
		payload, err := event.DecodePayload[event.StateJSONPayloadV1](evt.Payload)
		if err != nil {
			return err
		}
		fn(payload.JSON)
		return nil
	}
}

func errorHandler(fn func(string)) event.Handler {
	return func(_ context.Context, evt event.Event) error {
		payload, err := event.DecodePayload[event.ErrorPayloadV1](evt.Payload)
		if err != nil {
			return err
		}
		fn(payload.Message)
		return nil
	}
}
