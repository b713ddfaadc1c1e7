package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
)

const maxResponseBodySize = 1 << 20 // 1MB

// connection pooling limits to prevent resource exhaustion under repeated calls
const (
	defaultMaxIdleConns        = 100
	defaultMaxIdleConnsPerHost = 10
	defaultMaxConnsPerHost     = 10
	defaultIdleConnTimeout     = 60 * time.Second // conservative: matches common ALB defaults
)

// Request describes a single HTTP call for [Client.Do].
type Request struct {
	// Method is the HTTP method. Defaults to GET when empty.
	Method string

	// URL is the fully resolved request URL, query string included.
	URL string

	// Headers are additional headers set on the request. They override
	// the client's standard headers on key collision.
	Headers map[string]string

	// Body is the request payload. nil sends no body.
	Body []byte

	// ContentType is sent as Content-Type when Body is non-nil.
	ContentType string

	// Timeout bounds the request via context cancellation. Zero means
	// no additional deadline beyond the caller's context.
	Timeout time.Duration
}

// Response holds the result of an HTTP request made by [Client].
//
// Response captures the body (limited to 1MB), status code, headers,
// latency, and the correlation ID that was sent with the request.
type Response struct {
	// Body contains the HTTP response body, limited to 1MB.
	Body []byte

	// StatusCode is the HTTP status code (e.g., 200, 404, 500).
	// Zero if the request failed before receiving a response.
	StatusCode int

	// Header holds the response headers.
	Header http.Header

	// Latency is the total time taken for the request.
	Latency time.Duration

	// RequestID is the correlation ID sent as the X-Request-ID header,
	// for matching client logs against server logs.
	RequestID string
}

// Client is an HTTP client wrapper optimized for repeated API calls.
//
// Client uses per-request timeouts via context rather than a global
// timeout, and limits response bodies to 1MB to prevent memory issues.
// Every request carries a fresh X-Request-ID so calls can be correlated
// across client and server logs.
type Client struct {
	httpClient *http.Client
	userAgent  string
}

// NewClient creates a new [Client].
//
// When httpClient is nil, a client with tuned connection pooling is built:
//   - MaxIdleConns: 100 total idle connections
//   - MaxIdleConnsPerHost: 10 idle connections per host
//   - MaxConnsPerHost: 10 concurrent connections per host
//   - IdleConnTimeout: 60 seconds before closing idle connections
//
// A non-nil httpClient is used as given, letting callers route requests
// through proxies or test doubles. userAgent is sent with every request.
func NewClient(httpClient *http.Client, userAgent string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{
			// no default timeout - we use per-request timeouts via context
			Transport: &http.Transport{
				MaxIdleConns:        defaultMaxIdleConns,
				MaxIdleConnsPerHost: defaultMaxIdleConnsPerHost,
				MaxConnsPerHost:     defaultMaxConnsPerHost,
				IdleConnTimeout:     defaultIdleConnTimeout,
				DisableKeepAlives:   false, // explicitly enable connection reuse
			},
		}
	}
	return &Client{
		httpClient: httpClient,
		userAgent:  userAgent,
	}
}

// Do performs an HTTP request and returns a structured [Response].
//
// The request timeout is applied via context cancellation. Standard
// headers (Accept, User-Agent, X-Request-ID, and Content-Type when a body
// is present) are set before any per-request headers, so the latter win
// on collision. Response bodies are limited to 1MB.
//
// Transport failures are returned as errors; the Response still carries
// the latency and request ID observed up to the failure. Non-2xx status
// codes are not errors at this layer.
func (c *Client) Do(ctx context.Context, r Request) (Response, error) {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	start := time.Now()
	requestID := uuid.NewString()

	// default to GET if method is empty
	method := r.Method
	if method == "" {
		method = http.MethodGet
	}

	var bodyReader io.Reader
	if r.Body != nil {
		bodyReader = bytes.NewReader(r.Body)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.URL, bodyReader)
	if err != nil {
		return Response{
			Latency:   time.Since(start),
			RequestID: requestID,
		}, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if r.Body != nil && r.ContentType != "" {
		req.Header.Set("Content-Type", r.ContentType)
	}
	for key, value := range r.Headers {
		req.Header.Set(key, value)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Response{
			Latency:   time.Since(start),
			RequestID: requestID,
		}, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	// read body with size limit
	limitedReader := io.LimitReader(resp.Body, maxResponseBodySize)
	body, err := io.ReadAll(limitedReader)
	if err != nil {
		return Response{
			StatusCode: resp.StatusCode,
			Latency:    time.Since(start),
			RequestID:  requestID,
		}, fmt.Errorf("failed to read response body: %w", err)
	}

	return Response{
		Body:       body,
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Latency:    time.Since(start),
		RequestID:  requestID,
	}, nil
}

// Close closes all idle connections in the client's connection pool.
//
// This should be called when the client is no longer needed to release
// resources immediately rather than waiting for the idle connection
// timeout. Safe to call multiple times. After Close, the client remains
// usable but new connections will be established as needed.
func (c *Client) Close() {
	if c == nil || c.httpClient == nil {
		return
	}
	if transport, ok := c.httpClient.Transport.(*http.Transport); ok {
		transport.CloseIdleConnections()
	}
}

// JSONBody marshals v into a JSON payload and returns it with its content
// type.
func JSONBody(v any) (body []byte, contentType string, err error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, "", fmt.Errorf("failed to encode request body: %w", err)
	}
	return data, "application/json", nil
}

// FormBody encodes values as a URL-encoded form payload and returns it
// with its content type.
func FormBody(values url.Values) (body []byte, contentType string) {
	return []byte(values.Encode()), "application/x-www-form-urlencoded"
}
