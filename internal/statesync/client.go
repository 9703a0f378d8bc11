// Package statesync talks to the farm state backend. Fetch, Save and Reset
// are fire-and-forget: each runs on its own goroutine and reports exactly one
// outcome on the event bus. Outcomes of requests that complete after Close
// are dropped.
package statesync

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/mmgblabel-png/bigharvestfarming/internal/codec"
	"github.com/mmgblabel-png/bigharvestfarming/internal/domain"
	"github.com/mmgblabel-png/bigharvestfarming/internal/event"
	"github.com/mmgblabel-png/bigharvestfarming/internal/logger"
	"github.com/mmgblabel-png/bigharvestfarming/internal/metrics"
)

// Doer executes HTTP requests. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client issues state requests for a single profile
type Client struct {
	id   string
	cfg  Config
	doer Doer
	bus  event.Bus

	closed   atomic.Bool
	inflight sync.WaitGroup
}

// Option customizes a Client
type Option func(*Client)

// WithDoer injects the HTTP transport
func WithDoer(d Doer) Option {
	return func(c *Client) {
		c.doer = d
	}
}

// New creates a client publishing outcomes on bus
func New(cfg Config, bus event.Bus, opts ...Option) *Client {
	c := &Client{
		id:  uuid.NewString(),
		cfg: cfg,
		bus: bus,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.doer == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		c.doer = &http.Client{Timeout: timeout}
	}
	return c
}

// Config returns the client's configuration
func (c *Client) Config() Config {
	return c.cfg
}

// BuildURL joins the base URL, path and the profile query parameter
func (c *Client) BuildURL(path string) string {
	return c.cfg.trimmedBase() + path + "?" + domain.QueryParamProfile + "=" + url.QueryEscape(c.cfg.Profile)
}

// Init runs the startup hook: one automatic fetch when enabled
func (c *Client) Init(ctx context.Context) {
	if c.cfg.AutoFetchOnInit {
		c.Fetch(ctx)
	}
}

// Fetch requests the profile's state. Publishes fetch.ok or fetch.error.
func (c *Client) Fetch(ctx context.Context) {
	c.start(ctx, opFetch, http.MethodGet, domain.PathState, "")
}

// Save posts an encoded state document. Publishes save.ok or save.error.
func (c *Client) Save(ctx context.Context, payload string) {
	c.start(ctx, opSave, http.MethodPost, domain.PathState, payload)
}

// SaveState encodes state and saves it
func (c *Client) SaveState(ctx context.Context, state domain.GameState) {
	c.Save(ctx, codec.Encode(state))
}

// Reset asks the backend to replace the profile with a fresh state.
// Publishes reset.ok carrying the new state document, or reset.error.
func (c *Client) Reset(ctx context.Context) {
	c.start(ctx, opReset, http.MethodPost, domain.PathReset, "")
}

// Health checks the backend synchronously
func (c *Client) Health(ctx context.Context) error {
	if c.closed.Load() {
		return domain.ErrClientClosed
	}

	res := c.do(ctx, http.MethodGet, domain.PathHealth, "")
	if res.err != nil {
		return res.err
	}
	if res.status != http.StatusOK {
		return fmt.Errorf("%w: %d", domain.ErrUnexpectedStatus, res.status)
	}
	return nil
}

// Close disposes the client. Requests still in flight finish silently and
// later calls are ignored. Close does not cancel anything.
func (c *Client) Close() {
	if c.closed.CompareAndSwap(false, true) {
		logger.Debug(LogMsgClientClosed, logger.AttrKeyProfile, c.cfg.Profile)
	}
}

// Closed reports whether Close has been called
func (c *Client) Closed() bool {
	return c.closed.Load()
}

// Wait blocks until every outstanding request has completed
func (c *Client) Wait() {
	c.inflight.Wait()
}

func (c *Client) start(ctx context.Context, op operation, method, path, body string) {
	if c.closed.Load() {
		logger.FromContext(ctx).Debug(LogMsgIgnoredAfterClose, "operation", op.name)
		return
	}

	// The request outlives the caller's context; only its values carry over.
	ctx = context.WithoutCancel(ctx)

	c.inflight.Add(1)
	metrics.SyncRequestsInFlight.Inc()
	go func() {
		defer c.inflight.Done()
		defer metrics.SyncRequestsInFlight.Dec()

		start := time.Now()
		res := c.do(ctx, method, path, body)
		metrics.SyncRequestDuration.WithLabelValues(op.name).Observe(time.Since(start).Seconds())

		c.complete(ctx, op, res)
	}()
}

// complete maps a finished request onto exactly one outcome event
func (c *Client) complete(ctx context.Context, op operation, res result) {
	log := logger.FromContext(ctx).With("operation", op.name, logger.AttrKeyProfile, c.cfg.Profile)

	if c.closed.Load() {
		log.Debug(LogMsgDroppedAfterClose)
		return
	}

	var evt event.Event
	switch {
	case res.err != nil:
		log.Warn(LogMsgRequestFailed, "error", res.err)
		evt = event.NewErrorEvent(op.errType, c.cfg.Profile, domain.OutcomeNetworkError)
	case res.status != http.StatusOK:
		log.Warn(LogMsgUnexpectedStatus, "status", res.status)
		evt = event.NewErrorEvent(op.errType, c.cfg.Profile, fmt.Sprintf(domain.OutcomeHTTPStatusFmt, res.status))
	default:
		var err error
		evt, err = op.ok(c.cfg.Profile, res.body)
		if err != nil {
			log.Warn(LogMsgUnusableResponse, "error", err)
			evt = event.NewErrorEvent(op.errType, c.cfg.Profile, domain.OutcomeNetworkError)
		} else {
			log.Info(LogMsgRequestSucceeded, "bytes", len(res.body))
		}
	}

	evt.Source = c.id

	outcome := metrics.OutcomeOK
	if evt.Type == op.errType {
		outcome = metrics.OutcomeError
	}
	metrics.SyncRequestsTotal.WithLabelValues(op.name, outcome).Inc()

	if err := c.bus.Publish(ctx, evt); err != nil {
		metrics.EventHandlerErrors.WithLabelValues(string(evt.Type)).Inc()
		log.Error(LogMsgPublishFailed, "type", evt.Type, "error", err)
	}
}

type result struct {
	status int
	body   string
	err    error
}

// do performs one request. Any failure to obtain a complete response is
// reported as a transport error.
func (c *Client) do(ctx context.Context, method, path, body string) result {
	var reader io.Reader
	if method == http.MethodPost {
		reader = strings.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BuildURL(path), reader)
	if err != nil {
		return result{err: fmt.Errorf("%w: failed to create request: %v", domain.ErrTransport, err)}
	}
	if method == http.MethodPost {
		req.Header.Set(HeaderContentType, ContentTypeJSON)
	}
	if id := logger.GetRequestID(ctx); id != "" {
		req.Header.Set(HeaderRequestID, id)
	}

	resp, err := c.doer.Do(req)
	if err != nil {
		return result{err: fmt.Errorf("%w: %v", domain.ErrTransport, err)}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return result{err: fmt.Errorf("%w: failed to read body: %v", domain.ErrTransport, err)}
	}

	return result{status: resp.StatusCode, body: string(data)}
}

// operation binds a request kind to its outcome channels
type operation struct {
	name    string
	errType event.Type
	ok      func(profile, body string) (event.Event, error)
}

var (
	opFetch = operation{
		name:    OperationFetch,
		errType: event.FetchError,
		ok: func(profile, body string) (event.Event, error) {
			return event.NewFetchOkEvent(profile, body), nil
		},
	}
	opSave = operation{
		name:    OperationSave,
		errType: event.SaveError,
		ok: func(profile, _ string) (event.Event, error) {
			return event.NewSaveOkEvent(profile), nil
		},
	}
	opReset = operation{
		name:    OperationReset,
		errType: event.ResetError,
		ok: func(profile, body string) (event.Event, error) {
			state, err := resetState(body)
			if err != nil {
				return event.Event{}, err
			}
			return event.NewResetOkEvent(profile, state), nil
		},
	}
)

// resetState extracts the state document from a reset response
func resetState(body string) (string, error) {
	var resp struct {
		State json.RawMessage `json:"state"`
	}
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrParse, err)
	}
	if len(resp.State) == 0 {
		return "", fmt.Errorf("%w: reset response has no state", domain.ErrParse)
	}
	return string(resp.State), nil
}
