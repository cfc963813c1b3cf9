// Package restapi is the HTTP client for the admin backend API. It owns
// the abort registry (request id -> cancel), enforces the per-call timeout,
// and is the single place transport failures and response statuses are
// classified into typed errors
package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"time"

	perr "backoffice/internal/platform/errors"
	"backoffice/internal/platform/logger"
)

const (
	defaultTimeout   = 5 * time.Second
	defaultUA        = "backoffice-admin"
	defaultMaxRetry  = 3
	defaultRetryBase = 250 * time.Millisecond
	maxBodyBytes     = 1 << 20
)

// Options configures the Client
type Options struct {
	BaseURL   string
	UserAgent string

	// Timeout is the fixed per-call ceiling; expiry classifies as network
	Timeout time.Duration

	// Retry config for transient server statuses on read calls
	MaxRetries int
	RetryBase  time.Duration
}

// Client is the shared HTTP transport for every resource collection.
// Cancellation is cooperative: each call registers its request id with a
// cancel function carrying the canceled sentinel as cause, so an aborted
// call resolves distinguishably from a failure
type Client struct {
	http  *http.Client
	opts  Options
	log   logger.Logger
	sleep func(time.Duration) // seam

	mu       sync.Mutex
	inflight map[string]context.CancelCauseFunc
}

// New creates a Client with sane defaults. BaseURL is required
func New(o Options) *Client {
	if o.BaseURL == "" {
		panic("restapi: BaseURL is required")
	}
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.MaxRetries <= 0 {
		o.MaxRetries = defaultMaxRetry
	}
	if o.RetryBase <= 0 {
		o.RetryBase = defaultRetryBase
	}
	return &Client{
		http:     &http.Client{},
		opts:     o,
		log:      *logger.Named("restapi"),
		sleep:    time.Sleep,
		inflight: make(map[string]context.CancelCauseFunc),
	}
}

// Cancel aborts the in-flight call registered under requestID, if any.
// Idempotent; the aborted call resolves as the canceled sentinel
func (c *Client) Cancel(requestID string) {
	c.mu.Lock()
	cancel, ok := c.inflight[requestID]
	delete(c.inflight, requestID)
	c.mu.Unlock()
	if ok {
		cancel(perr.ErrCanceled)
	}
}

// CancelAll aborts every in-flight call (teardown)
func (c *Client) CancelAll() {
	c.mu.Lock()
	cancels := make([]context.CancelCauseFunc, 0, len(c.inflight))
	for _, cancel := range c.inflight {
		cancels = append(cancels, cancel)
	}
	c.inflight = make(map[string]context.CancelCauseFunc)
	c.mu.Unlock()
	for _, cancel := range cancels {
		cancel(perr.ErrCanceled)
	}
}

// register binds requestID to a cancelable child of ctx
func (c *Client) register(ctx context.Context, requestID string) (context.Context, func()) {
	ctx, cancel := context.WithCancelCause(ctx)
	c.mu.Lock()
	c.inflight[requestID] = cancel
	c.mu.Unlock()
	return ctx, func() {
		c.mu.Lock()
		delete(c.inflight, requestID)
		c.mu.Unlock()
		cancel(nil)
	}
}

// do issues one call and returns the status with the (bounded) body.
// Transport-level failures come back already classified; non-2xx statuses
// are left to the caller, which knows whether the operation was by-id.
// retriable enables bounded backoff on transient server statuses
func (c *Client) do(ctx context.Context, method, path, requestID string, in any, retriable bool) (int, []byte, error) {
	ctx, done := c.register(ctx, requestID)
	defer done()

	var payload []byte
	if in != nil {
		var err error
		payload, err = json.Marshal(in)
		if err != nil {
			return 0, nil, perr.Wrap(err, perr.KindUnknown, "encode request body")
		}
	}

	url := c.opts.BaseURL + path
	attempts := 0
	for {
		callCtx, cancel := context.WithTimeout(ctx, c.opts.Timeout)
		status, body, err := c.once(callCtx, method, url, requestID, payload)
		cancel()

		if err != nil {
			// a canceled parent wins over the per-attempt deadline
			if cause := context.Cause(ctx); cause != nil && perr.IsCanceled(cause) {
				return 0, nil, perr.ErrCanceled
			}
			return 0, nil, perr.FromTransport(err)
		}

		if retriable && transient(status) && attempts < c.opts.MaxRetries {
			back := c.backoff(attempts)
			c.log.Warn().
				Str("method", method).
				Str("path", path).
				Int("status", status).
				Dur("retry_in", back).
				Msg("transient status, retrying")
			c.sleep(back)
			attempts++
			continue
		}
		return status, body, nil
	}
}

// once performs a single HTTP round trip
func (c *Client) once(ctx context.Context, method, url, requestID string, payload []byte) (int, []byte, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.log.Error().Err(cerr).Str("url", url).Msg("close body failed")
		}
	}()

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return 0, nil, err
	}

	// logger.C picks up the request id and resource from the operation ctx
	logger.C(ctx).Debug().
		Str("method", method).
		Str("url", url).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("api response")
	return resp.StatusCode, b, nil
}

func (c *Client) backoff(attempt int) time.Duration {
	d := c.opts.RetryBase << uint(attempt)
	if limit := 5 * time.Second; d > limit {
		d = limit
	}
	return d
}

func transient(status int) bool {
	switch status {
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}

func ok(status int) bool { return status >= 200 && status < 300 }
