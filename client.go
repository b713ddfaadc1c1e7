package polly

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/kouma-root/polly-go/internal/rest"
)

// Version is the SDK version, reported in the default User-Agent.
const Version = "0.1.0"

const (
	// DefaultBaseURL is the API's local development address, used when
	// [WithBaseURL] is not given.
	DefaultBaseURL = "http://localhost:8000"

	// DefaultTimeout is the per-request timeout used when [WithTimeout]
	// is not given.
	DefaultTimeout = 10 * time.Second

	// DefaultPageSize is the page size substituted when a non-positive
	// limit or batch size is passed to [Client.Polls] or
	// [Client.AllPolls]. It matches the API's own default.
	DefaultPageSize = 10
)

const defaultUserAgent = "polly-go/" + Version

// Client is a synchronous client for the Polly API.
//
// Client is immutable after creation via [New]: all configuration is fixed
// at construction, which makes the client safe for concurrent use. Each
// operation performs exactly one blocking HTTP round trip (except
// [Client.AllPolls], which performs a bounded sequence of them) and maps
// the response into a typed value or an error.
//
// The typical lifecycle is:
//
//	client, err := polly.New(polly.WithBaseURL("http://localhost:8000"))
//	if err != nil {
//	    slog.Error("failed to create client", "error", err)
//	    os.Exit(1)
//	}
//	defer client.Close()
//
//	user, err := client.Register(ctx, "alice", "s3cret")
//
// For the error-suppressing variants of each operation, see [Client.Quiet].
type Client struct {
	baseURL   string
	timeout   time.Duration
	userAgent string
	logger    *slog.Logger
	rest      *rest.Client
	observers []func(CallInfo)
}

// New creates a new [Client] with the given options.
//
// All options have sensible defaults:
//   - Base URL: http://localhost:8000
//   - Timeout: 10 seconds
//   - Logger: slog.Default()
//
// Returns an error if any option is invalid.
//
// Example:
//
//	client, err := polly.New(
//	    polly.WithBaseURL("https://polls.example.com"),
//	    polly.WithTimeout(5 * time.Second),
//	)
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		baseURL: DefaultBaseURL,
		timeout: DefaultTimeout,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	// default to slog.Default() if no logger provided
	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	userAgent := cfg.userAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	return &Client{
		baseURL:   cfg.baseURL,
		timeout:   cfg.timeout,
		userAgent: userAgent,
		logger:    logger,
		rest:      rest.NewClient(cfg.httpClient, userAgent),
		observers: cfg.observers,
	}, nil
}

// BaseURL returns the configured API root address, without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Timeout returns the configured per-request timeout.
func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// Close releases idle connections held by the client.
//
// Call Close when the client is no longer needed. Safe to call multiple
// times; the client remains usable afterwards, establishing new
// connections as needed.
func (c *Client) Close() {
	if c == nil {
		return
	}
	c.rest.Close()
}

// CallInfo describes one completed API round trip for observers registered
// via [WithObserver].
type CallInfo struct {
	// Operation is the SDK operation name: "register", "login", "polls",
	// "vote", or "results".
	Operation string

	// Method is the HTTP method used.
	Method string

	// Path is the request path relative to the base URL, without query
	// parameters.
	Path string

	// StatusCode is the HTTP status code. Zero if the request failed
	// before a response was received.
	StatusCode int

	// Latency is the total time taken for the round trip.
	Latency time.Duration

	// RequestID is the correlation ID sent as the X-Request-ID header.
	RequestID string

	// Err is the call's failure, if any. Non-2xx responses carry a
	// [*APIError] in the chain.
	Err error
}

// callRequest describes a single API call for [Client.call].
type callRequest struct {
	method      string
	path        string
	query       url.Values
	body        []byte
	contentType string
	headers     map[string]string
}

// call executes one request against the API and decodes a 2xx JSON body
// into out. Non-2xx responses become [*APIError] values; every error is
// wrapped with the operation name. out may be nil to discard the body.
// Observers see the call regardless of outcome.
func (c *Client) call(ctx context.Context, op string, cr callRequest, out any) error {
	method := cr.method
	if method == "" {
		method = http.MethodGet
	}

	reqURL := c.baseURL + cr.path
	if len(cr.query) > 0 {
		reqURL += "?" + cr.query.Encode()
	}

	resp, err := c.rest.Do(ctx, rest.Request{
		Method:      method,
		URL:         reqURL,
		Headers:     cr.headers,
		Body:        cr.body,
		ContentType: cr.contentType,
		Timeout:     c.timeout,
	})

	info := CallInfo{
		Operation:  op,
		Method:     method,
		Path:       cr.path,
		StatusCode: resp.StatusCode,
		Latency:    resp.Latency,
		RequestID:  resp.RequestID,
	}

	if err == nil && (resp.StatusCode < 200 || resp.StatusCode > 299) {
		err = newAPIError(resp.StatusCode, resp.Body)
	}
	if err != nil {
		wrapped := fmt.Errorf("polly: %s: %w", op, err)
		info.Err = wrapped
		c.notifyObservers(info)
		return wrapped
	}

	c.notifyObservers(info)

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Body, out); err != nil {
		return fmt.Errorf("polly: %s: failed to decode response: %w", op, err)
	}
	return nil
}

// notifyObservers invokes every registered observer in registration order.
func (c *Client) notifyObservers(info CallInfo) {
	for _, ob := range c.observers {
		invokeObserverSafe(ob, info, c.logger)
	}
}

// invokeObserverSafe calls an observer with panic recovery.
// Panics are logged but do not propagate.
func invokeObserverSafe(ob func(CallInfo), info CallInfo, logger *slog.Logger) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("call observer panicked",
				"panic", r,
				"operation", info.Operation,
			)
		}
	}()
	ob(info)
}
