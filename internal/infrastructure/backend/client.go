// Package backend is the HTTP client for the clinic REST API.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/clinicdesk/clinic-web/internal/core/domain"
	"github.com/clinicdesk/clinic-web/internal/pkg/metrics"
)

// ErrMalformedResponse marks a 2xx answer whose body is not valid JSON.
var ErrMalformedResponse = errors.New("malformed response")

// Outcome tags the three ways a backend call can end.
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeFailure
	OutcomeTransport
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeFailure:
		return "failure"
	}
	return "transport"
}

// ErrorBody is the JSON error envelope. The backend uses either field.
type ErrorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// Text returns whichever message the backend sent.
func (b *ErrorBody) Text() string {
	if b == nil {
		return ""
	}
	if b.Message != "" {
		return b.Message
	}
	return b.Error
}

// Result is the outcome of one call. Body is set on success, Status and
// ErrorBody on failure and Err on transport errors. ErrorBody is nil when
// the failure body was absent or not JSON.
type Result struct {
	Outcome   Outcome
	Status    int
	Body      []byte
	ErrorBody *ErrorBody
	Err       error
}

// AsError converts a non-success result into the domain error taxonomy.
func (r Result) AsError(op string) error {
	switch r.Outcome {
	case OutcomeSuccess:
		return nil
	case OutcomeFailure:
		return &domain.RejectedError{Status: r.Status, Message: r.ErrorBody.Text()}
	}
	return &domain.TransportError{Op: op, Err: r.Err}
}

// Decode unmarshals a success body into v. An empty body leaves v untouched.
func (r Result) Decode(v any) error {
	if len(bytes.TrimSpace(r.Body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}

// Client calls the backend below baseURL. It performs no retries and sets no
// timeout of its own; deadlines come from the caller's context.
type Client struct {
	baseURL string
	http    *http.Client
	loc     *time.Location
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the traced default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLocation sets the zone used for timestamps sent without one.
func WithLocation(loc *time.Location) Option {
	return func(c *Client) { c.loc = loc }
}

// New returns a Client for baseURL, e.g. "http://backend:3000".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
		loc:     time.Local,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Do sends one request. body, when non-nil, is encoded as JSON; token, when
// non-empty, is sent as a bearer credential.
func (c *Client) Do(ctx context.Context, operation, method, path, token string, body any) Result {
	start := time.Now()
	res := c.do(ctx, method, path, token, body)
	metrics.BackendRequestDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	metrics.BackendRequestsTotal.WithLabelValues(operation, res.Outcome.String()).Inc()
	return res
}

func (c *Client) do(ctx context.Context, method, path, token string, body any) Result {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return Result{Outcome: OutcomeTransport, Err: fmt.Errorf("encode body: %w", err)}
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return Result{Outcome: OutcomeTransport, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Result{Outcome: OutcomeTransport, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{Outcome: OutcomeTransport, Err: fmt.Errorf("read body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		res := Result{Outcome: OutcomeFailure, Status: resp.StatusCode}
		var eb ErrorBody
		if json.Unmarshal(raw, &eb) == nil {
			res.ErrorBody = &eb
		}
		return res
	}

	if trimmed := bytes.TrimSpace(raw); len(trimmed) > 0 && !json.Valid(trimmed) {
		return Result{Outcome: OutcomeTransport, Status: resp.StatusCode, Err: ErrMalformedResponse}
	}
	return Result{Outcome: OutcomeSuccess, Status: resp.StatusCode, Body: raw}
}
