// Package register posts registration records to the remote users API.
package register

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/trace"

	"github.com/jask/regform/internal/form"
)

const (
	// RequestIDHeader carries a fresh id per submission so server logs can be matched.
	RequestIDHeader = "X-Request-ID"

	maxResponseBytes = 1 << 20
)

// ErrDecode is returned when the reply body is not the expected JSON object.
var ErrDecode = errors.New("decode response")

// Alert is the server's reply as shown to the user. Success and failure
// statuses produce the same shape.
type Alert struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      int    `json:"-"`
	RequestID   string `json:"-"`
}

// OK reports whether the reply carried a 2xx status.
func (a Alert) OK() bool {
	return a.Status >= 200 && a.Status < 300
}

// Client submits records to a fixed endpoint.
type Client struct {
	endpoint string
	http     *http.Client
	timeout  time.Duration
	tracer   trace.TracerProvider
}

// Option configures a Client. Options may be given in any order.
type Option func(*Client)

// WithHTTPClient sends through a shallow copy of hc. Its transport is used as-is.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithTimeout bounds a whole submission, including reading the reply.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithTracerProvider records client spans on tp instead of the global provider.
// Ignored when WithHTTPClient supplies the transport.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Client) {
		c.tracer = tp
	}
}

// New returns a client posting to endpoint.
func New(endpoint string, opts ...Option) *Client {
	c := &Client{endpoint: endpoint}
	for _, opt := range opts {
		opt(c)
	}

	var hc http.Client
	if c.http != nil {
		hc = *c.http
	} else {
		var topts []otelhttp.Option
		if c.tracer != nil {
			topts = append(topts, otelhttp.WithTracerProvider(c.tracer))
		}
		hc.Transport = otelhttp.NewTransport(http.DefaultTransport, topts...)
	}
	if c.timeout > 0 {
		hc.Timeout = c.timeout
	}
	c.http = &hc
	return c
}

func (c *Client) Endpoint() string { return c.endpoint }

// Submit sends rec as a JSON POST and decodes the title/description reply.
// Non-2xx statuses are not errors; the returned error covers transport and
// decoding failures only.
func (c *Client) Submit(ctx context.Context, rec form.Record) (Alert, error) {
	body, err := json.Marshal(rec)
	if err != nil {
		return Alert{}, fmt.Errorf("register: encode record: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return Alert{}, fmt.Errorf("register: build request: %w", err)
	}
	id := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, id)

	resp, err := c.http.Do(req)
	if err != nil {
		return Alert{}, fmt.Errorf("register: post %s: %w", c.endpoint, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return Alert{}, fmt.Errorf("register: read response (status %d): %w", resp.StatusCode, err)
	}

	var alert Alert
	if err := json.Unmarshal(data, &alert); err != nil {
		return Alert{}, fmt.Errorf("register: %w (status %d): %v", ErrDecode, resp.StatusCode, err)
	}
	alert.Status = resp.StatusCode
	alert.RequestID = id
	return alert, nil
}
