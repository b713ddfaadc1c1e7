package polly

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// clientConfig holds mutable state during Client construction.
type clientConfig struct {
	baseURL    string
	timeout    time.Duration
	userAgent  string
	httpClient *http.Client
	logger     *slog.Logger
	observers  []func(CallInfo)
}

// Option is a function that configures a [Client] during construction.
//
// Option implements the functional options pattern, allowing optional
// configuration to be passed to [New] in a type-safe, extensible way.
// Options return an error if validation fails.
//
// Built-in options: [WithBaseURL], [WithTimeout], [WithHTTPClient],
// [WithLogger], [WithUserAgent], [WithObserver].
type Option func(*clientConfig) error

// WithBaseURL sets the root address of the API.
//
// All endpoint paths are resolved relative to it. A trailing slash is
// trimmed. Defaults to "http://localhost:8000", the API's local
// development address.
//
// Example:
//
//	client, err := polly.New(
//	    polly.WithBaseURL("https://polls.example.com"),
//	)
//
// Returns an error if the URL cannot be parsed, lacks an http or https
// scheme, or lacks a host.
func WithBaseURL(rawURL string) Option {
	return func(cfg *clientConfig) error {
		parsed, err := url.Parse(rawURL)
		if err != nil {
			return fmt.Errorf("invalid base URL: %w", err)
		}
		if parsed.Scheme == "" {
			return errors.New("base URL must have a scheme (http:// or https://)")
		}
		if parsed.Scheme != "http" && parsed.Scheme != "https" {
			return fmt.Errorf("base URL scheme must be http or https, got %q", parsed.Scheme)
		}
		if parsed.Host == "" {
			return errors.New("base URL must include a host")
		}
		cfg.baseURL = strings.TrimRight(rawURL, "/")
		return nil
	}
}

// WithTimeout sets the per-request timeout.
//
// The timeout bounds each HTTP round trip via context cancellation; it is
// not a deadline on multi-request helpers like [Client.AllPolls], where it
// applies to every page fetch individually. Defaults to 10 seconds.
//
// Example:
//
//	client, err := polly.New(
//	    polly.WithTimeout(5 * time.Second),
//	)
//
// Returns an error if the duration is zero or negative.
func WithTimeout(d time.Duration) Option {
	return func(cfg *clientConfig) error {
		if d <= 0 {
			return errors.New("timeout must be positive")
		}
		cfg.timeout = d
		return nil
	}
}

// WithHTTPClient supplies a custom [http.Client] for requests.
//
// Use this to route requests through a proxy, attach custom transports, or
// inject a test double. When not set, the client builds its own transport
// with connection pooling tuned for repeated API calls.
//
// Returns an error if the client is nil.
func WithHTTPClient(hc *http.Client) Option {
	return func(cfg *clientConfig) error {
		if hc == nil {
			return errors.New("http client cannot be nil")
		}
		cfg.httpClient = hc
		return nil
	}
}

// WithLogger sets a custom [slog.Logger] for the client.
//
// The logger receives the suppressed failures reported by [QuietClient]
// methods and observer panic reports. If not specified, [slog.Default] is
// used.
//
// Example:
//
//	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
//	client, err := polly.New(
//	    polly.WithLogger(logger),
//	)
//
// Returns an error if the logger is nil.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *clientConfig) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		cfg.logger = logger
		return nil
	}
}

// WithUserAgent overrides the User-Agent header sent with every request.
//
// Defaults to "polly-go/<version>".
//
// Returns an error if the value is empty.
func WithUserAgent(ua string) Option {
	return func(cfg *clientConfig) error {
		if ua == "" {
			return errors.New("user agent cannot be empty")
		}
		cfg.userAgent = ua
		return nil
	}
}

// WithObserver registers a function invoked after every HTTP round trip.
//
// The observer receives a [CallInfo] describing the call, including failed
// ones. Multiple observers may be registered by calling WithObserver
// multiple times; they execute in registration order on the calling
// goroutine.
//
// Observers must be non-blocking. Long-running work should be dispatched
// to a separate goroutine, since a slow observer delays the operation's
// return. Panics within observers are recovered and logged; they do not
// fail the operation.
//
// Example:
//
//	rec := metrics.NewRecorder(prometheus.DefaultRegisterer)
//	client, err := polly.New(
//	    polly.WithObserver(rec.Observe),
//	)
//
// Nil observers are silently ignored.
func WithObserver(fn func(CallInfo)) Option {
	return func(cfg *clientConfig) error {
		if fn == nil {
			return nil // no-op for nil observer (safe to call)
		}
		cfg.observers = append(cfg.observers, fn)
		return nil
	}
}
