package httpclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

type (
	// Middleware wraps the transport, outermost first. Mirrors the usual
	// handler-stack pattern on the client side (auth headers, retries, tracing).
	Middleware func(http.RoundTripper) http.RoundTripper

	// Result carries the parsed body together with the upstream status.
	// Non-2xx responses are not errors here; callers branch on Status.
	Result struct {
		Status int
		Data   any
	}

	// Client is a thin outbound HTTP wrapper with a base URL, default
	// headers and a pluggable response parser.
	Client struct {
		baseURL    string
		httpClient *http.Client
		parser     Parser
		headers    http.Header
		logger     zerolog.Logger
	}

	// Option configures a Client at construction time.
	Option func(*Client)

	roundTripperFunc func(*http.Request) (*http.Response, error)
)

func (f roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

// WithHTTPClient swaps the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-request timeout on the underlying client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithParser selects the response parser. Defaults to JSONParser.
func WithParser(p Parser) Option {
	return func(c *Client) { c.parser = p }
}

// WithHeader adds a default header sent on every request.
func WithHeader(key, value string) Option {
	return func(c *Client) { c.headers.Add(key, value) }
}

// WithMiddleware pushes transport middleware onto the client's stack.
func WithMiddleware(mws ...Middleware) Option {
	return func(c *Client) {
		transport := c.httpClient.Transport
		if transport == nil {
			transport = http.DefaultTransport
		}
		for i := len(mws) - 1; i >= 0; i-- {
			transport = mws[i](transport)
		}
		c.httpClient.Transport = transport
	}
}

// New creates a client rooted at baseURL.
func New(baseURL string, logger zerolog.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		parser:     JSONParser{},
		headers:    http.Header{},
		logger:     logger.With().Str("component", "httpclient").Logger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Request performs an HTTP call against the base URL and parses the response
// body with the configured parser. Transport failures return an error;
// upstream error statuses come back in Result.Status with their parsed body.
func (c *Client) Request(ctx context.Context, method, endpoint string, body io.Reader) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.url(endpoint), body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	for key, values := range c.headers {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Str("method", method).Str("endpoint", endpoint).Msg("Request failed")
		return nil, fmt.Errorf("%s %s: %w", method, endpoint, err)
	}
	defer resp.Body.Close()

	data, err := c.parser.Parse(resp)
	if err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	c.logger.Debug().
		Str("method", method).
		Str("endpoint", endpoint).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(started)).
		Msg("Request completed")

	return &Result{Status: resp.StatusCode, Data: data}, nil
}

// Get is a convenience wrapper around Request.
func (c *Client) Get(ctx context.Context, endpoint string) (*Result, error) {
	return c.Request(ctx, http.MethodGet, endpoint, nil)
}

// Post is a convenience wrapper around Request.
func (c *Client) Post(ctx context.Context, endpoint string, body io.Reader) (*Result, error) {
	return c.Request(ctx, http.MethodPost, endpoint, body)
}

func (c *Client) url(endpoint string) string {
	if endpoint == "" {
		return c.baseURL
	}
	return c.baseURL + "/" + strings.TrimLeft(endpoint, "/")
}
